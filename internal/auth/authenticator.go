package auth

import (
	"context"

	"github.com/mmynk/fintrack/internal/models"
)

// Authenticator verifies user credentials. Goals are owned by the user it
// returns; other collections are shared.
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
