package dispatch_test

import (
	"testing"

	"github.com/doeshing/relay-go/internal/application/dispatch"
	"github.com/doeshing/relay-go/internal/domain"
)

func TestRelative(t *testing.T) {
	tests := []struct {
		name  string
		id    domain.ActionID
		scope string
		want  domain.ActionID
	}{
		{
			name:  "empty scope returns id unchanged",
			id:    "admin/delete",
			scope: "",
			want:  "admin/delete",
		},
		{
			name:  "scope prefix is stripped",
			id:    "ops/db/backup",
			scope: "ops",
			want:  "db/backup",
		},
		{
			name:  "prefix stripped exactly once, never recursively",
			id:    "ops/ops/db/backup",
			scope: "ops",
			want:  "ops/db/backup",
		},
		{
			name:  "id outside scope returns unchanged",
			id:    "admin/delete",
			scope: "ops",
			want:  "admin/delete",
		},
		{
			name:  "scope must match on a segment boundary",
			id:    "opsworks/restart",
			scope: "ops",
			want:  "opsworks/restart",
		},
		{
			name:  "id equal to scope has no trailing separator to strip",
			id:    "ops",
			scope: "ops",
			want:  "ops",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dispatch.Relative(tt.id, tt.scope); got != tt.want {
				t.Errorf("Relative(%q, %q) = %q, want %q", tt.id, tt.scope, got, tt.want)
			}
		})
	}
}
