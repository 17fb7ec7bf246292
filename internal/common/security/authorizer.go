package security

import (
	"crypto/subtle"
)

// Authorizer is the capability check behind admin actions. The shipped
// implementation is a shared PIN, but the interface keeps the workflow
// code decoupled from that choice so a real identity provider can slot
// in later.
type Authorizer interface {
	Authorize(credential string) bool
}

type PINAuthorizer struct {
	pin string
}

func NewPINAuthorizer(pin string) *PINAuthorizer {
	return &PINAuthorizer{pin: pin}
}

func (a *PINAuthorizer) Authorize(credential string) bool {
	if a.pin == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(credential), []byte(a.pin)) == 1
}
