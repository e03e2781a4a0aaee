package dto

// LoginRequest payload for the portal login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ChatRequest carries a record-scoped question to the chat assistant.
type ChatRequest struct {
	RecordID string `json:"record_id"`
	Message  string `json:"message"`
}

// PredictionRequest carries selected symptoms to the prediction view.
type PredictionRequest struct {
	Symptoms []string `json:"symptoms"`
}

// UserResponse is the identity shape the portal returns to the browser.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role"`
}
