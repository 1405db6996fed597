package auth

import (
	"sort"
	"strings"
)

// RoleTag labels a route-access requirement. Tags are matched
// case-insensitively; the registry stores them upper-cased.
type RoleTag string

const (
	// RoleAnyone marks an open endpoint: no authentication required.
	RoleAnyone RoleTag = "ANYONE"
	RoleUser   RoleTag = "USER"
	RoleAdmin  RoleTag = "ADMIN"
)

// RoleSet is a set of required role tags for a route.
type RoleSet map[RoleTag]struct{}

// Open reports whether the set allows unauthenticated access. An empty
// required-role set is equivalent to the ANYONE wildcard.
func (s RoleSet) Open() bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[RoleAnyone]
	return ok
}

// Tags returns the set's members sorted, for diagnostics.
func (s RoleSet) Tags() []string {
	tags := make([]string, 0, len(s))
	for tag := range s {
		tags = append(tags, string(tag))
	}
	sort.Strings(tags)
	return tags
}

// PolicyRegistry maps declared routes to their required-role sets. It is
// populated during route registration and read-only afterwards. Routes
// that were never declared resolve to the most restrictive policy:
// authentication is required and no role satisfies authorization, so new
// endpoints stay closed until someone opens them deliberately.
type PolicyRegistry struct {
	policies map[string]RoleSet
}

// NewPolicyRegistry creates an empty registry.
func NewPolicyRegistry() *PolicyRegistry {
	return &PolicyRegistry{policies: make(map[string]RoleSet)}
}

// Declare records the required roles for a route. Declaring a route with
// an empty role list opens it, the same as declaring RoleAnyone.
func (r *PolicyRegistry) Declare(routeID string, roles ...RoleTag) {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		set[RoleTag(strings.ToUpper(string(role)))] = struct{}{}
	}
	r.policies[routeID] = set
}

// RequiredRoles resolves the policy for a route. The second return value
// reports whether the route was ever declared.
func (r *PolicyRegistry) RequiredRoles(routeID string) (RoleSet, bool) {
	set, ok := r.policies[routeID]
	return set, ok
}
