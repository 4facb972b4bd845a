package domain

// PipelineConfig mirrors ~/.relay/pipeline.yaml.
type PipelineConfig struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	Scope               string             `yaml:"scope"`
	Actions             []ActionDefinition `yaml:"actions"`
	Filters             []FilterDefinition `yaml:"filters"`
	History             HistorySettings    `yaml:"history"`
	Cache               CacheSettings      `yaml:"cache"`
	Execution           ExecutionSettings  `yaml:"execution"`
}

// ActionDefinition binds a fully qualified action identifier to a shell
// command acting as the action body.
type ActionDefinition struct {
	ID      string `yaml:"id"`
	Command string `yaml:"command"`
}

// FilterDefinition configures one filter instance on the pipeline.
// Type selects the implementation; Only/Except are wildcard patterns over
// scope-relative action identifiers. Recognized types: access, cache,
// timing, audit.
type FilterDefinition struct {
	Name    string         `yaml:"name"`
	Type    string         `yaml:"type"`
	Only    []string       `yaml:"only"`
	Except  []string       `yaml:"except"`
	Channel string         `yaml:"channel"`
	Options map[string]any `yaml:"options"`
}

// HistorySettings controls the invocation store.
type HistorySettings struct {
	Enabled       bool `yaml:"enabled"`
	RetentionDays int  `yaml:"retention_days"`
}

// CacheSettings controls the result cache used by cache filters.
type CacheSettings struct {
	MaxEntries int `yaml:"max_entries"`
	TTLSeconds int `yaml:"ttl"`
}

// ExecutionSettings controls how command actions run.
type ExecutionSettings struct {
	Shell          string `yaml:"shell"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// Spec converts a filter definition into its applicability spec.
func (d FilterDefinition) Spec() FilterSpec {
	return FilterSpec{
		Name:   d.Name,
		Only:   ParsePatterns(d.Only),
		Except: ParsePatterns(d.Except),
	}
}
