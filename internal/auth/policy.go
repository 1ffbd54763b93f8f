package auth

import "strings"

// PolicyAction tells the gate and the route guards what a path requires.
type PolicyAction int

const (
	// ActionSkipAuth marks a path as public; the gate does not attempt
	// authentication and the request proceeds with no identity attached.
	ActionSkipAuth PolicyAction = iota
	// ActionRequireAuth requires any authenticated principal.
	ActionRequireAuth
	// ActionRequireAuthority requires a specific authority string.
	ActionRequireAuthority
)

// RoutePolicy binds a path pattern to an access requirement.
type RoutePolicy struct {
	Pattern   string
	Action    PolicyAction
	Authority string
}

// PolicyTable is an ordered list of route policies. Matching walks the table
// top to bottom and the first matching pattern wins, so more specific entries
// must be listed before broader ones.
type PolicyTable struct {
	entries []RoutePolicy
}

// NewPolicyTable builds a table from ordered entries.
func NewPolicyTable(entries ...RoutePolicy) *PolicyTable {
	return &PolicyTable{entries: entries}
}

// Match returns the first policy whose pattern matches the path.
func (t *PolicyTable) Match(path string) (RoutePolicy, bool) {
	for _, entry := range t.entries {
		if MatchPath(entry.Pattern, path) {
			return entry, true
		}
	}
	return RoutePolicy{}, false
}

// ShouldSkip reports whether the path is exempt from authentication.
func (t *PolicyTable) ShouldSkip(path string) bool {
	policy, ok := t.Match(path)
	return ok && policy.Action == ActionSkipAuth
}

// MatchPath matches a request path against a pattern. A pattern is either a
// literal path or a prefix followed by the trailing wildcard segment "/**",
// which matches the prefix itself and anything below it.
func MatchPath(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return pattern == path
}

// DefaultSkipPolicies lists the paths reachable without a token: login,
// registration, the dev-only reset prefix, health probes, API docs and
// static assets, and the occupancy socket handshake.
func DefaultSkipPolicies() []RoutePolicy {
	patterns := []string{
		"/auth/login",
		"/auth/register",
		"/auth/dev/**",
		"/health/**",
		"/swagger-ui/**",
		"/swagger-ui.html",
		"/v3/api-docs/**",
		"/favicon.ico",
		"/error",
		"/ws/**",
	}

	policies := make([]RoutePolicy, 0, len(patterns))
	for _, pattern := range patterns {
		policies = append(policies, RoutePolicy{Pattern: pattern, Action: ActionSkipAuth})
	}
	return policies
}
