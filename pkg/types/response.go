package types

// SuccessEnvelope wraps every 2xx body under a top-level data key so
// clients can decode all endpoints the same way.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the wire form of a coded error: a stable machine code, a
// human message, and optional structured details.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps APIError under a top-level error key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
