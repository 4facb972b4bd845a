package domain

import "fmt"

// FindAction looks up an action definition by its fully qualified id.
func (c *PipelineConfig) FindAction(id string) (ActionDefinition, bool) {
	for _, action := range c.Actions {
		if action.ID == id {
			return action, true
		}
	}
	return ActionDefinition{}, false
}

// HasAction checks whether an action with the given id is configured.
func (c *PipelineConfig) HasAction(id string) bool {
	_, exists := c.FindAction(id)
	return exists
}

// FindFilter looks up a filter definition by name.
func (c *PipelineConfig) FindFilter(name string) (FilterDefinition, bool) {
	for _, filter := range c.Filters {
		if filter.Name == name {
			return filter, true
		}
	}
	return FilterDefinition{}, false
}

// GetExecutionShell returns the configured action shell, defaulting to sh.
func (c *PipelineConfig) GetExecutionShell() string {
	const defaultShell = "sh"

	if c.Execution.Shell == "" {
		return defaultShell
	}
	return c.Execution.Shell
}

// GetTimeoutSeconds returns the command execution timeout in seconds.
func (c *PipelineConfig) GetTimeoutSeconds() int {
	const defaultTimeoutSeconds = 30

	if c.Execution.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds
	}
	return c.Execution.TimeoutSeconds
}

// GetCacheMaxEntries returns the maximum number of cached results.
func (c *PipelineConfig) GetCacheMaxEntries() int {
	const defaultMaxEntries = 100

	if c.Cache.MaxEntries <= 0 {
		return defaultMaxEntries
	}
	return c.Cache.MaxEntries
}

// GetCacheTTLSeconds returns the cache entry lifetime in seconds.
func (c *PipelineConfig) GetCacheTTLSeconds() int {
	const defaultTTLSeconds = 3600

	if c.Cache.TTLSeconds <= 0 {
		return defaultTTLSeconds
	}
	return c.Cache.TTLSeconds
}

// GetHistoryRetentionDays returns how long invocation records are retained.
func (c *PipelineConfig) GetHistoryRetentionDays() int {
	const defaultRetentionDays = 30

	if c.History.RetentionDays <= 0 {
		return defaultRetentionDays
	}
	return c.History.RetentionDays
}

// ValidateConsistency checks internal consistency of the pipeline config:
// unique names, known filter types, and that scoped action ids actually
// live under the declared scope.
func (c *PipelineConfig) ValidateConsistency() error {
	seenActions := make(map[string]bool)
	for _, action := range c.Actions {
		if action.ID == "" {
			return fmt.Errorf("action with empty id")
		}
		if seenActions[action.ID] {
			return fmt.Errorf("duplicate action id %s", action.ID)
		}
		seenActions[action.ID] = true
		if action.Command == "" {
			return fmt.Errorf("action %s has no command", action.ID)
		}
	}

	seenFilters := make(map[string]bool)
	for _, filter := range c.Filters {
		if filter.Name == "" {
			return fmt.Errorf("filter with empty name")
		}
		if seenFilters[filter.Name] {
			return fmt.Errorf("duplicate filter name %s", filter.Name)
		}
		seenFilters[filter.Name] = true
		switch filter.Type {
		case "access", "cache", "timing", "audit":
		default:
			return fmt.Errorf("filter %s has unknown type %q", filter.Name, filter.Type)
		}
		switch filter.Channel {
		case "", string(ChannelBeforeAction), string(ChannelAfterAction):
		default:
			return fmt.Errorf("filter %s has unknown channel %q", filter.Name, filter.Channel)
		}
		if filter.Channel == string(ChannelAfterAction) {
			switch filter.Type {
			case "access", "cache":
				return fmt.Errorf("filter %s of type %s requires the %s channel", filter.Name, filter.Type, ChannelBeforeAction)
			}
		}
	}

	return nil
}
