package api

// ExecuteRequest is the body of POST /api/commands/execute.
type ExecuteRequest struct {
	Command   string `json:"command"`
	Confirmed bool   `json:"confirmed"`
}

// ExecuteResponse is the reply of the execute endpoint. Fields other than
// Success are optional.
type ExecuteResponse struct {
	Success              bool   `json:"success"`
	Response             string `json:"response,omitempty"`
	Error                string `json:"error,omitempty"`
	RequiresConfirmation bool   `json:"requiresConfirmation,omitempty"`
	Message              string `json:"message,omitempty"`
}

// Session is the reply of GET /api/session.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	Role          string `json:"role,omitempty"`
}

type csrfTokenResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// Endpoint paths relative to the server URL.
const (
	PathExecute   = "/api/commands/execute"
	PathCSRFToken = "/api/csrf-token"
	PathSession   = "/api/session"
	PathLogout    = "/api/logout"
	PathLogin     = "/console/login.html"

	HeaderCSRFToken = "x-csrf-token"
)
