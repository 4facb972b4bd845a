package filters

import (
	"fmt"

	"github.com/doeshing/relay-go/internal/application/dispatch"
	"github.com/doeshing/relay-go/internal/domain"
	"github.com/doeshing/relay-go/internal/ports"
)

// Factory builds the built-in filter types from pipeline configuration.
type Factory struct {
	Cache  ports.ResultCache
	Logger ports.Logger
}

// NewFactory creates a factory with the shared adapters filters need.
func NewFactory(cache ports.ResultCache, logger ports.Logger) *Factory {
	return &Factory{Cache: cache, Logger: logger}
}

// Build implements ports.FilterFactory. The configured channel picks which
// hook list the filter registers on; each type has a natural default
// (everything before-action except audit), and types depending on the
// before-hook reject an after-action override.
func (f *Factory) Build(def domain.FilterDefinition) (ports.AttachableFilter, error) {
	spec := def.Spec()
	switch def.Type {
	case "access":
		if domain.Channel(def.Channel) == domain.ChannelAfterAction {
			return nil, fmt.Errorf("access filter %s cannot run on the after_action channel", def.Name)
		}
		return NewAccessFilter(lifecycleFor(def, spec, domain.ChannelBeforeAction), stringOption(def, "rules_file"), f.Logger)
	case "cache":
		if f.Cache == nil {
			return nil, fmt.Errorf("no result cache configured")
		}
		if domain.Channel(def.Channel) == domain.ChannelAfterAction {
			return nil, fmt.Errorf("cache filter %s cannot run on the after_action channel", def.Name)
		}
		return NewCacheFilter(lifecycleFor(def, spec, domain.ChannelBeforeAction), f.Cache, f.Logger), nil
	case "timing":
		return NewTimingFilter(lifecycleFor(def, spec, domain.ChannelBeforeAction), f.Logger), nil
	case "audit":
		return NewAuditFilter(lifecycleFor(def, spec, domain.ChannelAfterAction), f.Logger), nil
	default:
		return nil, fmt.Errorf("unknown filter type %q", def.Type)
	}
}

// lifecycleFor resolves the registration channel: an explicit config value
// wins, otherwise the type's default applies.
func lifecycleFor(def domain.FilterDefinition, spec domain.FilterSpec, fallback domain.Channel) dispatch.Lifecycle {
	ch := fallback
	if def.Channel != "" {
		ch = domain.Channel(def.Channel)
	}
	return dispatch.NewLifecycleOn(spec, ch)
}

func stringOption(def domain.FilterDefinition, key string) string {
	if def.Options == nil {
		return ""
	}
	if value, ok := def.Options[key].(string); ok {
		return value
	}
	return ""
}

var _ ports.FilterFactory = (*Factory)(nil)
