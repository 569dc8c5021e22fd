package customer

import (
	"context"
)

// Identity is an account record held by the external identity
// provider. The provider owns credentials and session issuance; this
// system only creates, deletes, and looks up identities.
type Identity struct {
	ID           string
	Email        string
	DisplayName  string
	IsAdmin      bool
	IsTechnician bool
}

// IdentityProvider is the contract for the external identity service.
// Create and Delete are the remote halves of the provisioning saga;
// lookup backs email search and the activation flow.
type IdentityProvider interface {
	// CreateIdentity registers a new account with a temporary
	// credential and returns the issued identity
	CreateIdentity(ctx context.Context, email, credential, displayName string) (*Identity, error)

	// DeleteIdentity removes an account, used by saga compensation
	DeleteIdentity(ctx context.Context, id string) error

	// FindIdentityByEmail looks up the account for an exact email.
	// Returns shared.ErrNotFound when no account exists.
	FindIdentityByEmail(ctx context.Context, email string) (*Identity, error)

	// FindIdentitiesByEmailSubstring returns accounts whose email
	// contains the given fragment, case-insensitively
	FindIdentitiesByEmailSubstring(ctx context.Context, fragment string) ([]Identity, error)

	// VerifyToken validates a provider-issued session token and
	// returns the identity it belongs to
	VerifyToken(ctx context.Context, token string) (*Identity, error)

	// IssueRecoveryLink generates a credential-reset link for the
	// account, pointing back at the given redirect target
	IssueRecoveryLink(ctx context.Context, email, redirectTarget string) (string, error)
}

// CredentialGenerator produces temporary credentials for
// freshly provisioned identities
type CredentialGenerator interface {
	// Generate returns a new temporary credential
	Generate() (string, error)
}
