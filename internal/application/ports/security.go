package ports

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and validates bearer tokens (RS256).
type TokenIssuer interface {
	IssueAccessToken(userID string, expiresInSeconds int64) (string, error)
	// ValidateAccessToken returns the authenticated user id.
	ValidateAccessToken(tokenString string) (userID string, err error)
}
