package constant

const (
	ChatRoleUser = "user"
	ChatRoleBot  = "bot"

	// Soft training outcome: every source was skipped or empty, nothing was
	// written to the vector store.
	TrainNoContentMessage = "No valid text found in the provided sources, nothing was indexed."

	// Topic for training lifecycle events on the in-process event bus.
	ChatbotTrainedTopic = "CHATBOT_TRAINED"

	// How many recent turns are loaded as conversational context per query.
	ChatHistoryWindow = 6
)

// Training pipeline states, logged per step so a stuck run is diagnosable.
const (
	TrainStateReceived   = "RECEIVED"
	TrainStateExtracting = "EXTRACTING"
	TrainStateChunking   = "CHUNKING"
	TrainStateEmbedding  = "EMBEDDING"
	TrainStateUpserting  = "UPSERTING"
	TrainStateDone       = "DONE"
	TrainStateError      = "ERROR"
)
