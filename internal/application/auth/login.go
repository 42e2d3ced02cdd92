package auth

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
)

// LoginInput carries the credentials.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult returns the user and an access token.
type LoginResult struct {
	User        *domain.User
	AccessToken string
}

// Login verifies credentials and issues a token.
type Login struct {
	users        ports.UserRepository
	hasher       ports.PasswordHasher
	issuer       ports.TokenIssuer
	accessExpiry int64
}

// NewLogin builds the use case.
func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, accessExpiry int64) *Login {
	return &Login{users: users, hasher: hasher, issuer: issuer, accessExpiry: accessExpiry}
}

// Execute checks the password and issues a token. Unknown emails and wrong
// passwords are indistinguishable.
func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	token, err := uc.issuer.IssueAccessToken(user.ID.String(), uc.accessExpiry)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, AccessToken: token}, nil
}
