// internal/pkg/token/failure.go
package token

// FailureReason classifies why verification rejected a token. Consumers must
// treat every reason uniformly as "not authenticated"; the reason exists for
// operator logs only and must never branch authorization logic.
type FailureReason string

const (
	ReasonMalformed        FailureReason = "malformed"
	ReasonSignatureInvalid FailureReason = "signature-invalid"
	ReasonExpired          FailureReason = "expired"
)

// VerificationFailure is the normalized outcome of a failed verification.
// It is returned as a value, never raised across the session-check boundary.
type VerificationFailure struct {
	Reason FailureReason
}

func (f *VerificationFailure) Error() string {
	return "token verification failed: " + string(f.Reason)
}
