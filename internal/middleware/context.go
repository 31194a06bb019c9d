package middleware

// Context keys used to store request metadata.
const (
	ContextKeyClientID  = "client_id"
	ContextKeyScope     = "scope"
	ContextKeyRequestID = "request_id"
)
