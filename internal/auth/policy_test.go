package auth

import "testing"

func TestAccessPolicy_FirstMatchWins(t *testing.T) {
	t.Parallel()

	policy := NewAccessPolicy(Public,
		Rule{Pattern: "/images/public", Requirement: Public},
		Rule{Pattern: "/images/*", Requirement: RequireAuth},
	)

	cases := []struct {
		path string
		want Requirement
	}{
		{"/images/public", Public},
		{"/images/upload", RequireAuth},
		{"/images", RequireAuth},
		{"/images/view/sub", RequireAuth},
		{"/users/login", Public},
		{"/imagesfoo", Public},
		{"/Images/upload", RequireAuth},
		{"/IMAGES/VIEW", RequireAuth},
	}
	for _, tc := range cases {
		if got := policy.RequirementFor(tc.path); got != tc.want {
			t.Errorf("RequirementFor(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestAccessPolicy_DefaultRequirement(t *testing.T) {
	t.Parallel()

	policy := NewAccessPolicy(RequireAuth,
		Rule{Pattern: "/users/login", Requirement: Public},
	)

	if got := policy.RequirementFor("/anything"); got != RequireAuth {
		t.Fatalf("default requirement not applied: got %v", got)
	}
	if got := policy.RequirementFor("/users/login"); got != Public {
		t.Fatalf("allow-list entry ignored: got %v", got)
	}
}
