package dto

// EvaluateCodeRequest asks for advisory feedback on a piece of code.
// This surface is not part of official grading.
type EvaluateCodeRequest struct {
	Code     string `json:"code" binding:"required"`
	Question string `json:"question" binding:"required"`
}

// EvaluateCodeResponse carries the judge's free-text feedback
type EvaluateCodeResponse struct {
	Feedback string `json:"feedback"`
}
