package auth

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// RoleSet is the static set of roles allowed to call an operation.
type RoleSet struct {
	any   bool
	roles map[string]struct{}
}

// AllowRoles builds a RoleSet admitting exactly the listed roles.
func AllowRoles(roles ...string) RoleSet {
	set := RoleSet{roles: make(map[string]struct{}, len(roles))}
	for _, r := range roles {
		set.roles[r] = struct{}{}
	}
	return set
}

// AnyRole admits every authenticated caller.
func AnyRole() RoleSet {
	return RoleSet{any: true}
}

// Allows reports whether role is in the set.
func (s RoleSet) Allows(role string) bool {
	if s.any {
		return true
	}
	_, ok := s.roles[role]
	return ok
}

// Roles lists the admitted roles in sorted order; nil for AnyRole.
func (s RoleSet) Roles() []string {
	if s.any {
		return nil
	}
	out := make([]string, 0, len(s.roles))
	for r := range s.roles {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

func (s RoleSet) String() string {
	if s.any {
		return "any authenticated"
	}
	return strings.Join(s.Roles(), ",")
}

// TokenVerifier decodes a bearer token into an identity.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

// Authorizer turns a bearer token into an identity and enforces a RoleSet.
type Authorizer struct {
	tokens TokenVerifier
}

// NewAuthorizer creates an Authorizer on top of a token verifier.
func NewAuthorizer(tokens TokenVerifier) *Authorizer {
	return &Authorizer{tokens: tokens}
}

// Authorize returns the caller's identity. Any token failure is wrapped in
// ErrUnauthenticated; a valid token whose role is outside allowed yields
// ErrForbidden.
func (a *Authorizer) Authorize(token string, allowed RoleSet) (Identity, error) {
	id, err := a.tokens.Verify(token)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if !allowed.Allows(id.Role) {
		return id, fmt.Errorf("%w: role %q not in [%s]", ErrForbidden, id.Role, allowed)
	}
	return id, nil
}

type ctxKey struct{}

// ContextWithIdentity stores the authorized identity for downstream handlers.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the identity stored by ContextWithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
