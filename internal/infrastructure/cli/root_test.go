package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/doeshing/relay-go/internal/app"
	"github.com/doeshing/relay-go/internal/application/dispatch"
	"github.com/doeshing/relay-go/internal/domain"
	"github.com/doeshing/relay-go/internal/pkg/logger"
	"github.com/doeshing/relay-go/internal/ports"
)

type fixedConfig struct {
	cfg domain.PipelineConfig
}

func (f fixedConfig) Load(context.Context) (domain.PipelineConfig, error) {
	return f.cfg, nil
}

// passFilter approves or vetoes every applicable invocation; with serve
// set it places a cached result on the context before vetoing.
type passFilter struct {
	dispatch.Lifecycle
	approve bool
	serve   bool
}

func (f *passFilter) BeforeAction(actx *domain.ActionContext) bool {
	if f.serve {
		actx.Result = domain.CommandResult{Stdout: "cached\n", FromCache: true}
		return false
	}
	return f.approve
}

type stubFilterFactory struct {
	veto  string
	serve bool
}

func (s stubFilterFactory) Build(def domain.FilterDefinition) (ports.AttachableFilter, error) {
	f := &passFilter{Lifecycle: dispatch.NewLifecycle(def.Spec())}
	f.approve = def.Name != s.veto
	f.serve = !f.approve && s.serve
	return f, nil
}

type plainRunner struct{}

func (plainRunner) Run(context.Context, string) domain.CommandResult {
	return domain.CommandResult{Ran: true, Stdout: "done\n"}
}

func testContainer(factory ports.FilterFactory) *app.Container {
	cfg := domain.PipelineConfig{
		Actions: []domain.ActionDefinition{{ID: "admin/backup", Command: "true"}},
		Filters: []domain.FilterDefinition{{Name: "guard", Type: "access", Only: []string{"admin/*"}}},
	}
	return &app.Container{
		DispatchService: &dispatch.Service{
			ConfigProvider: fixedConfig{cfg: cfg},
			FilterFactory:  factory,
			Runner:         plainRunner{},
			Logger:         logger.NewStd(false),
		},
	}
}

func TestRunDispatchSuccessReturnsNil(t *testing.T) {
	var out bytes.Buffer
	container := testContainer(stubFilterFactory{})

	if err := runDispatch(context.Background(), &out, container, "admin/backup", dispatchFlags{}); err != nil {
		t.Fatalf("runDispatch() error = %v", err)
	}
	if !strings.Contains(out.String(), "ok") {
		t.Errorf("success not rendered: %q", out.String())
	}
}

func TestRunDispatchVetoReturnsSentinel(t *testing.T) {
	var out bytes.Buffer
	container := testContainer(stubFilterFactory{veto: "guard"})

	err := runDispatch(context.Background(), &out, container, "admin/backup", dispatchFlags{})
	if !errors.Is(err, ErrVetoed) {
		t.Fatalf("runDispatch() error = %v, want ErrVetoed", err)
	}
	if !strings.Contains(out.String(), "blocked") || !strings.Contains(out.String(), "guard") {
		t.Errorf("veto not rendered: %q", out.String())
	}
}

func TestRunDispatchCacheHitVetoIsSuccess(t *testing.T) {
	var out bytes.Buffer
	container := testContainer(stubFilterFactory{veto: "guard", serve: true})

	if err := runDispatch(context.Background(), &out, container, "admin/backup", dispatchFlags{}); err != nil {
		t.Fatalf("served cache hit must not signal a veto, got %v", err)
	}
	if !strings.Contains(out.String(), "(cached)") {
		t.Errorf("cached origin not rendered: %q", out.String())
	}
}

func TestRunDispatchVetoSignaledInJSONMode(t *testing.T) {
	var out bytes.Buffer
	container := testContainer(stubFilterFactory{veto: "guard"})

	err := runDispatch(context.Background(), &out, container, "admin/backup", dispatchFlags{asJSON: true})
	if !errors.Is(err, ErrVetoed) {
		t.Fatalf("runDispatch() error = %v, want ErrVetoed", err)
	}
	if !strings.Contains(out.String(), `"valid":false`) {
		t.Errorf("json payload = %q", out.String())
	}
}
