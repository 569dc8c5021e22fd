package idp

import (
	"context"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/fieldserve/backend/internal/domain/customer"
	"github.com/fieldserve/backend/internal/domain/shared"
	"github.com/fieldserve/backend/internal/infrastructure/config"
)

// FirebaseProvider implements customer.IdentityProvider on top of the
// Firebase Admin SDK. The provider owns email, password and recovery
// links; everything else about a customer lives in the profile store.
type FirebaseProvider struct {
	client *fbauth.Client
}

// NewFirebaseProvider initializes the Firebase Admin SDK auth client
// from the configured service-account file. With no credentials file
// configured, application-default credentials are used.
func NewFirebaseProvider(ctx context.Context, cfg config.FirebaseConfig) (*FirebaseProvider, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	var fbCfg *firebase.Config
	if cfg.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseProvider{client: client}, nil
}

// NewFirebaseProviderWithClient wraps an existing auth client
func NewFirebaseProviderWithClient(client *fbauth.Client) *FirebaseProvider {
	return &FirebaseProvider{client: client}
}

// CreateIdentity registers a new login with the generated credential
func (p *FirebaseProvider) CreateIdentity(ctx context.Context, email, credential, displayName string) (*customer.Identity, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(credential).
		DisplayName(displayName)

	record, err := p.client.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return nil, shared.ErrAlreadyExists
		}
		return nil, err
	}

	return toIdentity(record), nil
}

// DeleteIdentity removes a login. Used by provisioning compensation.
func (p *FirebaseProvider) DeleteIdentity(ctx context.Context, id string) error {
	if err := p.client.DeleteUser(ctx, id); err != nil {
		if fbauth.IsUserNotFound(err) {
			return nil
		}
		return err
	}
	return nil
}

// FindIdentityByEmail looks up a login by exact email
func (p *FirebaseProvider) FindIdentityByEmail(ctx context.Context, email string) (*customer.Identity, error) {
	record, err := p.client.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return toIdentity(record), nil
}

// FindIdentitiesByEmailSubstring lists logins whose email contains the
// fragment. The admin SDK has no substring query, so this walks the
// user list; acceptable at this tenant's account volume.
func (p *FirebaseProvider) FindIdentitiesByEmailSubstring(ctx context.Context, fragment string) ([]customer.Identity, error) {
	needle := strings.ToLower(strings.TrimSpace(fragment))
	matches := make([]customer.Identity, 0)

	iter := p.client.Users(ctx, "")
	for {
		record, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		if strings.Contains(strings.ToLower(record.Email), needle) {
			matches = append(matches, *toIdentity(record.UserRecord))
		}
	}

	return matches, nil
}

// VerifyToken validates a provider session token and returns the identity
func (p *FirebaseProvider) VerifyToken(ctx context.Context, token string) (*customer.Identity, error) {
	decoded, err := p.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	identity := &customer.Identity{ID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := decoded.Claims["name"].(string); ok {
		identity.DisplayName = name
	}
	return identity, nil
}

// IssueRecoveryLink creates a password-reset link that doubles as the
// account activation link for staff-provisioned customers
func (p *FirebaseProvider) IssueRecoveryLink(ctx context.Context, email, redirectTarget string) (string, error) {
	settings := &fbauth.ActionCodeSettings{
		URL: redirectTarget,
	}
	link, err := p.client.PasswordResetLinkWithSettings(ctx, email, settings)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return link, nil
}

func toIdentity(record *fbauth.UserRecord) *customer.Identity {
	return &customer.Identity{
		ID:          record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
	}
}

var _ customer.IdentityProvider = (*FirebaseProvider)(nil)
