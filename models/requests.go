package models

import "encoding/json"

// PasskeyLoginBeginRequest starts a passkey authentication ceremony for the
// named account. No bearer token is required at this point.
type PasskeyLoginBeginRequest struct {
	Login string `json:"login"`
}

// PasskeyLoginFinishRequest completes a passkey authentication ceremony.
// Response carries the authenticator assertion exactly as produced by the
// browser's WebAuthn API; it is passed through to the verifier unparsed.
type PasskeyLoginFinishRequest struct {
	Login    string          `json:"login"`
	Response json.RawMessage `json:"response"`
}
