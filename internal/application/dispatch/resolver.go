package dispatch

import (
	"strings"

	"github.com/doeshing/relay-go/internal/domain"
)

// Relative resolves a fully qualified action identifier against a host
// scope. When the identifier lives under the scope, the scope prefix (plus
// separator) is stripped exactly once, never recursively; otherwise the
// identifier is returned unchanged. The result is what only/except
// patterns match against, independent of how deeply the host is nested.
func Relative(id domain.ActionID, scope string) domain.ActionID {
	if scope == "" {
		return id
	}
	prefix := scope + domain.Separator
	if strings.HasPrefix(string(id), prefix) {
		return domain.ActionID(strings.TrimPrefix(string(id), prefix))
	}
	return id
}
