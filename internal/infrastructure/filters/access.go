package filters

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/relay-go/internal/application/dispatch"
	"github.com/doeshing/relay-go/internal/domain"
	"github.com/doeshing/relay-go/internal/pkg/filesystem"
	"github.com/doeshing/relay-go/internal/ports"
)

// AccessRule describes one access decision over action identifiers.
type AccessRule struct {
	Pattern string `yaml:"pattern"`
	Allow   bool   `yaml:"allow"`
	Message string `yaml:"message"`
}

// RulesFile is the YAML schema root for access rules.
type RulesFile struct {
	Rules struct {
		Access []AccessRule `yaml:"access"`
	} `yaml:"rules"`
}

// AccessFilter vetoes invocations of denied actions. Deny rules always win;
// when at least one allow rule exists, actions matching no allow rule are
// vetoed too (allowlist mode). Rules match against the scope-relative
// identifier with the same wildcard semantics as only/except patterns.
type AccessFilter struct {
	dispatch.Lifecycle
	rules  []AccessRule
	logger ports.Logger
}

// NewAccessFilter loads access rules from disk (or defaults when missing).
// The lifecycle must register on the before-action channel or the veto
// never fires; the factory enforces that.
func NewAccessFilter(lc dispatch.Lifecycle, path string, logger ports.Logger) (*AccessFilter, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}
	return &AccessFilter{
		Lifecycle: lc,
		rules:     rules,
		logger:    logger,
	}, nil
}

// BeforeAction implements the access decision.
func (f *AccessFilter) BeforeAction(actx *domain.ActionContext) bool {
	allowed, message := f.decide(actx.ID)
	if allowed {
		return true
	}
	if f.logger != nil {
		f.logger.Info("access denied", map[string]interface{}{
			"action": string(actx.ID),
			"filter": f.Name(),
			"reason": message,
		})
	}
	return false
}

func (f *AccessFilter) decide(id domain.ActionID) (bool, string) {
	hasAllow := false
	allowMatched := false
	for _, rule := range f.rules {
		matched := domain.Pattern(rule.Pattern).Matches(id)
		if !rule.Allow {
			if matched {
				return false, rule.Message
			}
			continue
		}
		hasAllow = true
		if matched {
			allowMatched = true
		}
	}
	if hasAllow && !allowMatched {
		return false, "no allow rule matches"
	}
	return true, ""
}

// Rules exposes the loaded rule set for diagnostics.
func (f *AccessFilter) Rules() []AccessRule {
	return f.rules
}

func loadRules(path string) ([]AccessRule, error) {
	path = rulesPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		// fall back to defaults
		return defaultRules(), nil
	}
	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Rules.Access) == 0 {
		return defaultRules(), nil
	}
	return file.Rules.Access, nil
}

func rulesPath(path string) string {
	if path == "" {
		path = "~/.relay/access.yaml"
	}
	return filesystem.ExpandPath(path)
}

func defaultRules() []AccessRule {
	return []AccessRule{
		{Pattern: "debug/*", Allow: false, Message: "debug actions are disabled"},
		{Pattern: "admin/drop-*", Allow: false, Message: "destructive admin actions are disabled"},
	}
}

var _ ports.Filter = (*AccessFilter)(nil)
