package dto

// Response is the envelope of every API response. Only the fields relevant
// to an endpoint are set.
type Response struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Token   string        `json:"token,omitempty"`
	User    *UserResponse `json:"user,omitempty"`
	Data    any           `json:"data,omitempty"`
}
