package auth

import "strings"

// Requirement states what a route demands from the request's auth state.
type Requirement int

const (
	// Public routes proceed regardless of identity.
	Public Requirement = iota
	// RequireAuth routes proceed only with an authenticated identity.
	RequireAuth
)

// Rule binds a path pattern to a requirement. Patterns are either exact
// paths or a prefix followed by "/*".
type Rule struct {
	Pattern     string
	Requirement Requirement
}

// AccessPolicy is an ordered list of rules evaluated first-match-wins.
type AccessPolicy struct {
	rules      []Rule
	defaultReq Requirement
}

// NewAccessPolicy builds a policy. Unmatched paths get the default
// requirement.
func NewAccessPolicy(defaultReq Requirement, rules ...Rule) *AccessPolicy {
	return &AccessPolicy{rules: rules, defaultReq: defaultReq}
}

// RequirementFor returns the requirement of the first rule matching path.
// Matching is case-insensitive so that a router serving /Images/view from
// the /images handlers cannot slip past a protected rule.
func (p *AccessPolicy) RequirementFor(path string) Requirement {
	folded := strings.ToLower(path)
	for _, rule := range p.rules {
		if matchPattern(strings.ToLower(rule.Pattern), folded) {
			return rule.Requirement
		}
	}
	return p.defaultReq
}

func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == pattern
}
