package dto

import "time"

// AuthenticationRequest payload for login and registration.
type AuthenticationRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StatusResponse is the envelope shared by every authentication endpoint.
type StatusResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// LoginResponse extends StatusResponse with the authenticated identity.
type LoginResponse struct {
	Status   bool   `json:"status"`
	Message  string `json:"message"`
	Username string `json:"username,omitempty"`
	UserID   int64  `json:"userid,omitempty"`
}

// SessionResponse describes the caller's validated session.
type SessionResponse struct {
	Status    bool      `json:"status"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
