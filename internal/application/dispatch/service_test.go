package dispatch_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/doeshing/relay-go/internal/application/dispatch"
	"github.com/doeshing/relay-go/internal/domain"
	"github.com/doeshing/relay-go/internal/pkg/logger"
	"github.com/doeshing/relay-go/internal/ports"
)

func testConfig() domain.PipelineConfig {
	return domain.PipelineConfig{
		ConfigFormatVersion: "1",
		Actions: []domain.ActionDefinition{
			{ID: "admin/backup", Command: "tar czf /tmp/backup.tgz /srv"},
			{ID: "health/check", Command: "true"},
		},
		Filters: []domain.FilterDefinition{
			{Name: "auth", Type: "access", Only: []string{"admin/*"}},
		},
		History: domain.HistorySettings{Enabled: true},
	}
}

func TestServiceRunDispatchesConfiguredAction(t *testing.T) {
	runner := &stubRunner{result: domain.CommandResult{Ran: true, Stdout: "ok"}}
	store := &stubStore{}

	svc := &dispatch.Service{
		ConfigProvider: stubConfigProvider{cfg: testConfig()},
		FilterFactory:  stubFactory{},
		Runner:         runner,
		Store:          store,
		Logger:         logger.NewStd(false),
	}

	resp, err := svc.Run(dispatch.Request{
		Context:  context.Background(),
		ActionID: "admin/backup",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !resp.Valid {
		t.Fatalf("expected valid invocation, vetoed by %q", resp.VetoedBy)
	}
	if !runner.called {
		t.Fatal("runner was not called")
	}
	if runner.command != "tar czf /tmp/backup.tgz /srv" {
		t.Errorf("runner command = %q", runner.command)
	}
	if resp.Result == nil || resp.Result.Stdout != "ok" {
		t.Errorf("result not propagated: %+v", resp.Result)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one invocation record, got %d", len(store.saved))
	}
	rec := store.saved[0]
	if rec.ActionID != "admin/backup" || !rec.Executed || rec.ID == "" {
		t.Errorf("record = %+v", rec)
	}
}

func TestServiceRunSurfacesVetoAsOutcomeNotError(t *testing.T) {
	runner := &stubRunner{result: domain.CommandResult{Ran: true}}
	store := &stubStore{}

	svc := &dispatch.Service{
		ConfigProvider: stubConfigProvider{cfg: testConfig()},
		FilterFactory:  stubFactory{veto: "auth"},
		Runner:         runner,
		Store:          store,
		Logger:         logger.NewStd(false),
	}

	resp, err := svc.Run(dispatch.Request{
		Context:  context.Background(),
		ActionID: "admin/backup",
	})
	if err != nil {
		t.Fatalf("veto must not be an error, got %v", err)
	}
	if resp.Valid {
		t.Fatal("expected vetoed invocation")
	}
	if resp.VetoedBy != "auth" {
		t.Errorf("VetoedBy = %q, want auth", resp.VetoedBy)
	}
	if runner.called {
		t.Error("action body ran despite veto")
	}
	if len(store.saved) != 1 || store.saved[0].Executed {
		t.Errorf("vetoed invocation should be recorded as not executed: %+v", store.saved)
	}
}

func TestServiceRunRejectsUnknownAction(t *testing.T) {
	svc := &dispatch.Service{
		ConfigProvider: stubConfigProvider{cfg: testConfig()},
		FilterFactory:  stubFactory{},
		Runner:         &stubRunner{},
		Logger:         logger.NewStd(false),
	}

	if _, err := svc.Run(dispatch.Request{ActionID: "nope/nothing"}); err == nil {
		t.Fatal("expected error for unconfigured action")
	}
}

func TestServiceRunNoCacheSkipsCacheFilters(t *testing.T) {
	cfg := testConfig()
	cfg.Filters = []domain.FilterDefinition{
		{Name: "results", Type: "cache"},
	}
	factory := &countingFactory{}

	svc := &dispatch.Service{
		ConfigProvider: stubConfigProvider{cfg: cfg},
		FilterFactory:  factory,
		Runner:         &stubRunner{result: domain.CommandResult{Ran: true}},
		Logger:         logger.NewStd(false),
	}

	if _, err := svc.Run(dispatch.Request{ActionID: "health/check", NoCache: true}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if factory.built != 0 {
		t.Errorf("cache filter built despite --no-cache (built=%d)", factory.built)
	}
}

type stubConfigProvider struct {
	cfg domain.PipelineConfig
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.PipelineConfig, error) {
	return s.cfg, s.err
}

// stubFactory builds pass-through filters; the one named veto rejects
// every applicable invocation.
type stubFactory struct {
	veto string
}

func (s stubFactory) Build(def domain.FilterDefinition) (ports.AttachableFilter, error) {
	f := &stubFilter{Lifecycle: dispatch.NewLifecycle(def.Spec())}
	f.approve = def.Name != s.veto
	return f, nil
}

type stubFilter struct {
	dispatch.Lifecycle
	approve bool
}

func (f *stubFilter) BeforeAction(*domain.ActionContext) bool {
	return f.approve
}

type countingFactory struct {
	built int
}

func (c *countingFactory) Build(def domain.FilterDefinition) (ports.AttachableFilter, error) {
	c.built++
	return nil, fmt.Errorf("unexpected build of %s", def.Name)
}

type stubRunner struct {
	result  domain.CommandResult
	called  bool
	command string
}

func (s *stubRunner) Run(_ context.Context, command string) domain.CommandResult {
	s.called = true
	s.command = command
	return s.result
}

type stubStore struct {
	saved []domain.InvocationRecord
	err   error
}

func (s *stubStore) Save(record domain.InvocationRecord) error {
	s.saved = append(s.saved, record)
	return s.err
}

func (s *stubStore) Records(int, string) ([]domain.InvocationRecord, error) { return s.saved, nil }
func (s *stubStore) Clear() error                                           { s.saved = nil; return nil }
func (s *stubStore) ExportJSON(string) error                                { return nil }
