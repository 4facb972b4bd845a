package check

import (
	"context"
	"fmt"

	"github.com/doeshing/relay-go/internal/domain"
	"github.com/doeshing/relay-go/internal/ports"
)

// Service runs pipeline configuration diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	FilterFactory  ports.FilterFactory
	Store          ports.InvocationStore
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Pipeline config", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Pipeline config", fmt.Sprintf("loaded, format %s", cfg.ConfigFormatVersion)))

	if err := cfg.ValidateConsistency(); err != nil {
		checks = append(checks, fail("Consistency", err.Error()))
	} else {
		checks = append(checks, ok("Consistency", fmt.Sprintf("%d actions, %d filters", len(cfg.Actions), len(cfg.Filters))))
	}

	checks = append(checks, s.filterCheck(cfg))

	if len(cfg.Actions) == 0 {
		checks = append(checks, warn("Actions", "no actions configured"))
	}

	if s.Store != nil {
		if _, err := s.Store.Records(1, ""); err != nil {
			checks = append(checks, warn("Invocation store", err.Error()))
		} else {
			checks = append(checks, ok("Invocation store", "reachable"))
		}
	} else {
		checks = append(checks, warn("Invocation store", "not initialized"))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) filterCheck(cfg domain.PipelineConfig) domain.HealthCheck {
	if s.FilterFactory == nil {
		return warn("Filters", "filter factory not initialized")
	}
	for _, def := range cfg.Filters {
		if _, err := s.FilterFactory.Build(def); err != nil {
			return fail("Filters", fmt.Sprintf("%s: %v", def.Name, err))
		}
	}
	return ok("Filters", "all configured filters constructible")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
