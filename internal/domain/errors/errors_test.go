package errors

import "testing"

func TestSentinelErrorsDistinct(t *testing.T) {
	all := []error{
		ErrUnauthorized,
		ErrNotFound,
		ErrForbidden,
		ErrDuplicateContributor,
		ErrValidation,
		ErrUserExists,
		ErrInvalidCredentials,
	}
	for i, a := range all {
		if a == nil {
			t.Fatalf("sentinel %d is nil", i)
		}
		for j, b := range all {
			if i != j && a == b {
				t.Errorf("sentinels %d and %d are the same error", i, j)
			}
		}
	}
}
