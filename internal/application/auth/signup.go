package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SignupInput carries the registration fields.
type SignupInput struct {
	Email       string
	DisplayName string
	Password    string
}

// SignupResult returns the created user and a ready-to-use access token.
type SignupResult struct {
	User        *domain.User
	AccessToken string
}

// Signup registers a user and signs them in.
type Signup struct {
	users        ports.UserRepository
	hasher       ports.PasswordHasher
	issuer       ports.TokenIssuer
	accessExpiry int64
}

// NewSignup builds the use case.
func NewSignup(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, accessExpiry int64) *Signup {
	return &Signup{users: users, hasher: hasher, issuer: issuer, accessExpiry: accessExpiry}
}

// Execute validates, creates the account and issues a token.
func (uc *Signup) Execute(ctx context.Context, input SignupInput) (*SignupResult, error) {
	if !emailRegex.MatchString(input.Email) || input.Password == "" {
		return nil, domerrors.ErrValidation
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrUserExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        input.Email,
		DisplayName:  input.DisplayName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	token, err := uc.issuer.IssueAccessToken(user.ID.String(), uc.accessExpiry)
	if err != nil {
		return nil, err
	}
	return &SignupResult{User: user, AccessToken: token}, nil
}
