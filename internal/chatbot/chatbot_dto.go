package chatbot

type CreateLogRequest struct {
	UserID    int64  `json:"user_id"`
	Query     string `json:"query" binding:"required"`
	Response  string `json:"response" binding:"required"`
	ModelUsed string `json:"model_used"`
}

type LogResponse struct {
	ID        int64  `json:"chat_id"`
	UserID    int64  `json:"user_id"`
	FullName  string `json:"full_name,omitempty"`
	Role      string `json:"role,omitempty"`
	Query     string `json:"query"`
	Response  string `json:"response"`
	ModelUsed string `json:"model_used"`
	Timestamp string `json:"timestamp"`
}
