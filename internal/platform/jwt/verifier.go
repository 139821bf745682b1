package jwtmw

// Verifier checks raw token strings outside the middleware path, for
// endpoints that report token validity rather than gate a resource.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier with the provided secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// VerifySubject verifies the token and returns the account ID it carries.
func (v *Verifier) VerifySubject(tokenStr string) (uint, error) {
	return parseSubject(tokenStr, v.secret)
}
