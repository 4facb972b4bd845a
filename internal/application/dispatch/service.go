package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/relay-go/internal/domain"
	"github.com/doeshing/relay-go/internal/ports"
)

// Request captures a dispatch intent originating from the CLI or an
// embedding program.
type Request struct {
	Context  context.Context
	ActionID string
	NoCache  bool
	Timeout  time.Duration
	Debug    bool
}

// Response is the canonical outcome propagated back to the caller.
type Response struct {
	ActionID   string
	RelativeID string
	Valid      bool
	VetoedBy   string
	Result     *domain.CommandResult
	Record     domain.InvocationRecord
}

// Service exposes the dispatch use case: assemble the configured pipeline,
// run one action through it, and persist an invocation record.
type Service struct {
	ConfigProvider ports.ConfigProvider
	FilterFactory  ports.FilterFactory
	Runner         ports.CommandRunner
	Store          ports.InvocationStore
	Logger         ports.Logger
}

// Run dispatches the requested action through the configured filter chain.
// A veto is not an error: the response carries Valid=false and the vetoing
// filter's name, mirroring the context outcome.
func (s *Service) Run(req Request) (Response, error) {
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load pipeline config: %w", err)
	}

	def, ok := cfg.FindAction(req.ActionID)
	if !ok {
		return Response{}, fmt.Errorf("action %s not configured", req.ActionID)
	}

	dispatcher, filters, err := s.assemble(cfg, req)
	if err != nil {
		return Response{}, err
	}
	if req.Debug && s.Logger != nil {
		names := make([]string, 0, len(filters))
		for _, f := range filters {
			names = append(names, f.Name())
		}
		s.Logger.Debug("pipeline assembled", map[string]interface{}{
			"action":  req.ActionID,
			"scope":   cfg.Scope,
			"filters": names,
		})
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = time.Duration(cfg.GetTimeoutSeconds()) * time.Second
	}

	action := domain.Action{
		ID: domain.ActionID(def.ID),
		Handler: func(ctx context.Context, _ *domain.ActionContext) any {
			runCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return s.Runner.Run(runCtx, def.Command)
		},
	}

	actx := dispatcher.Dispatch(ctx, action)
	for _, f := range filters {
		f.Detach(f)
	}

	resp := Response{
		ActionID:   req.ActionID,
		RelativeID: string(actx.ID),
		Valid:      actx.Valid,
		VetoedBy:   actx.VetoedBy,
	}
	if result, ok := actx.Result.(domain.CommandResult); ok {
		resp.Result = &result
	}

	resp.Record = s.record(cfg, resp)
	return resp, nil
}

// assemble builds the dispatcher and attaches configured filters in
// declaration order. Declaration order is the attachment order, which in
// turn fixes hook ordering.
func (s *Service) assemble(cfg domain.PipelineConfig, req Request) (*Dispatcher, []ports.AttachableFilter, error) {
	dispatcher := NewDispatcher(cfg.Scope, s.Logger)

	var attached []ports.AttachableFilter
	for _, def := range cfg.Filters {
		if req.NoCache && def.Type == "cache" {
			continue
		}
		f, err := s.FilterFactory.Build(def)
		if err != nil {
			return nil, nil, fmt.Errorf("build filter %s: %w", def.Name, err)
		}
		f.Attach(dispatcher, f)
		attached = append(attached, f)
	}
	return dispatcher, attached, nil
}

// record persists the invocation outcome (best-effort; failures are logged
// and never surface to the caller).
func (s *Service) record(cfg domain.PipelineConfig, resp Response) domain.InvocationRecord {
	rec := domain.InvocationRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		ActionID:  resp.ActionID,
		Executed:  resp.Valid,
		VetoedBy:  resp.VetoedBy,
	}
	if resp.Result != nil {
		rec.ExitCode = resp.Result.ExitCode
		rec.DurationMS = resp.Result.DurationMS
		rec.FromCache = resp.Result.FromCache
	}

	if !cfg.History.Enabled || s.Store == nil {
		return rec
	}
	if err := s.Store.Save(rec); err != nil && s.Logger != nil {
		s.Logger.Warn("save invocation record failed", map[string]interface{}{
			"action": resp.ActionID,
			"error":  err.Error(),
		})
	}
	return rec
}
