package dto

// QueryRequest is the company-side test query: one question, no session.
type QueryRequest struct {
	Question string `json:"question" validate:"required"`
}
