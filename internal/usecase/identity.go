package usecase

import (
	"context"

	"staffd/internal/domain"
)

// IdentityLookup resolves an identity string to an authenticatable
// principal. Inactive and soft-deleted users are treated as not found so
// they can never authenticate.
type IdentityLookup struct {
	Users UserRepository
}

func (l *IdentityLookup) LookupPrincipal(ctx context.Context, email string) (domain.Principal, error) {
	user, err := l.Users.FindActiveByEmail(ctx, email)
	if err != nil {
		return domain.Principal{}, err
	}
	return user.Principal(), nil
}
