package dto

// TrainResult is what both training entry points report back. A run with zero
// indexed chunks is a soft "nothing to index" outcome, not an error.
type TrainResult struct {
	ChunksIndexed  int      `json:"chunks_indexed"`
	SkippedSources []string `json:"skipped_sources,omitempty"`
	Message        string   `json:"message"`
}

// TrainedEvent is published on the in-process bus when a training run has
// written chunks; the consumer flips the chatbot's trained flag.
type TrainedEvent struct {
	ChatbotId     string `json:"chatbot_id"`
	TenantKey     string `json:"tenant_key"`
	ChunksIndexed int    `json:"chunks_indexed"`
}
