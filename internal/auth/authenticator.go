package auth

import (
	"context"

	"github.com/roamly/roamly/internal/models"
)

// Authenticator verifies account credentials. Password login is the only
// implementation today; the seam exists so passkeys or OAuth can slot in
// without touching the service layer.
type Authenticator interface {
	// Register creates an account. The credential format is up to the
	// implementation; for passwords it is the plaintext password, hashed
	// before storage.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate checks the credential and returns the account on
	// success.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential reports whether a credential meets the
	// implementation's minimum requirements, without touching storage.
	ValidateCredential(credential string) error
}
