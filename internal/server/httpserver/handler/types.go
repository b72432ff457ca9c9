package handler

import "github.com/cloudward/console-gate/internal/core/domain"

// SessionBundle is the response body for the login and session
// actions.
type SessionBundle struct {
	GlobalSession domain.GlobalInfo    `json:"global_session"`
	UserSession   domain.PublicSession `json:"user_session"`
}

// ResultResponse is the response body for the logout and busy
// actions.
type ResultResponse struct {
	Result string `json:"result"`
}

// InitResponse is the response body for the init action.
type InitResponse struct {
	Language   string `json:"language"`
	SupportURL string `json:"support_url"`
	IPAddr     string `json:"ipaddr"`
	Hostname   string `json:"hostname"`
}

// ErrorResponse is the uniform wire shape for failures.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
