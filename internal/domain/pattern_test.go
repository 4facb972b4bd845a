package domain_test

import (
	"testing"

	"github.com/doeshing/relay-go/internal/domain"
)

// TestPattern_Matches tests wildcard and exact identifier matching
func TestPattern_Matches(t *testing.T) {
	tests := []struct {
		name    string
		pattern domain.Pattern
		id      domain.ActionID
		want    bool
	}{
		{
			name:    "exact match",
			pattern: "admin/delete",
			id:      "admin/delete",
			want:    true,
		},
		{
			name:    "exact mismatch",
			pattern: "admin/delete",
			id:      "admin/deletes",
			want:    false,
		},
		{
			name:    "wildcard matches prefix",
			pattern: "admin/*",
			id:      "admin/delete",
			want:    true,
		},
		{
			name:    "wildcard crosses segment boundaries",
			pattern: "admin/*",
			id:      "admin/users/delete",
			want:    true,
		},
		{
			name:    "wildcard does not match other prefix",
			pattern: "admin/*",
			id:      "health/check",
			want:    false,
		},
		{
			name:    "bare wildcard matches everything",
			pattern: "*",
			id:      "anything/at/all",
			want:    true,
		},
		{
			name:    "matching is case sensitive",
			pattern: "Admin/*",
			id:      "admin/delete",
			want:    false,
		},
		{
			name:    "empty pattern matches only empty id",
			pattern: "",
			id:      "",
			want:    true,
		},
		{
			name:    "empty pattern rejects non-empty id",
			pattern: "",
			id:      "admin",
			want:    false,
		},
		{
			name:    "prefix without wildcard is not a prefix match",
			pattern: "admin",
			id:      "admin/delete",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pattern.Matches(tt.id); got != tt.want {
				t.Errorf("Pattern(%q).Matches(%q) = %v, want %v", tt.pattern, tt.id, got, tt.want)
			}
		})
	}
}

func TestPatterns_AnyOrderIndependent(t *testing.T) {
	a := domain.Patterns{"health/*", "admin/delete"}
	b := domain.Patterns{"admin/delete", "health/*"}

	for _, id := range []domain.ActionID{"admin/delete", "health/check", "other"} {
		if a.Any(id) != b.Any(id) {
			t.Errorf("pattern list order changed match outcome for %q", id)
		}
	}
}
