package domain_test

import (
	"testing"

	"github.com/doeshing/relay-go/internal/domain"
)

// TestFilterSpec_Applies tests only/except applicability
func TestFilterSpec_Applies(t *testing.T) {
	tests := []struct {
		name string
		spec domain.FilterSpec
		id   domain.ActionID
		want bool
	}{
		{
			name: "empty only matches all",
			spec: domain.FilterSpec{Name: "log"},
			id:   "anything",
			want: true,
		},
		{
			name: "only restricts to listed patterns",
			spec: domain.FilterSpec{
				Name: "auth",
				Only: domain.Patterns{"admin/*"},
			},
			id:   "admin/delete",
			want: true,
		},
		{
			name: "only rejects unlisted actions",
			spec: domain.FilterSpec{
				Name: "auth",
				Only: domain.Patterns{"admin/*"},
			},
			id:   "health/check",
			want: false,
		},
		{
			name: "except excludes with empty only",
			spec: domain.FilterSpec{
				Name:   "log",
				Except: domain.Patterns{"health/check"},
			},
			id:   "health/check",
			want: false,
		},
		{
			name: "except wins over matching only",
			spec: domain.FilterSpec{
				Name:   "auth",
				Only:   domain.Patterns{"admin/*"},
				Except: domain.Patterns{"admin/ping"},
			},
			id:   "admin/ping",
			want: false,
		},
		{
			name: "except wildcard wins over more specific only",
			spec: domain.FilterSpec{
				Name:   "auth",
				Only:   domain.Patterns{"admin/users/delete"},
				Except: domain.Patterns{"admin/*"},
			},
			id:   "admin/users/delete",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Applies(tt.id); got != tt.want {
				t.Errorf("Applies(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestActionContext_VetoFirstWins(t *testing.T) {
	actx := domain.NewActionContext("admin/delete")
	if !actx.Valid {
		t.Fatal("new context should start valid")
	}

	actx.Veto("auth")
	actx.Veto("cache")

	if actx.Valid {
		t.Error("context should be invalid after veto")
	}
	if actx.VetoedBy != "auth" {
		t.Errorf("VetoedBy = %q, want first veto attribution %q", actx.VetoedBy, "auth")
	}
}
