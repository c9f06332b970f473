package user

import "context"

// Identity is the authenticated caller attached to a request.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// CanAccess reports whether the caller owns the resource or is an admin.
func (i Identity) CanAccess(ownerID string) bool {
	return i.IsAdmin() || (i.ID != "" && i.ID == ownerID)
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
