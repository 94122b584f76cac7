package pipe

import (
	"context"
	"sync"
	"time"

	"github.com/lyteflow/lyteflow/errors"
	"github.com/lyteflow/lyteflow/logger"
)

// Options configures a System.
type Options struct {
	// Name identifies the system in logs and reports.
	Name string
	// Verbose enables per-element debug logging of each flow pass.
	Verbose bool
	// Logger receives flow-pass logging; defaults to a no-op logger.
	Logger *logger.Logger
	// MaxParallel bounds concurrent element execution per pass. Values
	// below 2 select the reference sequential engine.
	MaxParallel int
}

// System drives flow passes over a built graph. The graph is immutable and
// every pass keeps its own transient state, so Flow may be called
// repeatedly and from concurrent goroutines.
type System struct {
	graph       *Graph
	name        string
	verbose     bool
	log         *logger.Logger
	maxParallel int
}

// NewSystem creates a System over a built graph.
func NewSystem(g *Graph, opts Options) (*System, error) {
	if g == nil || g.order == nil {
		return nil, errors.Structure("system requires a built graph")
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	name := opts.Name
	if name == "" {
		name = "pipesystem"
	}
	return &System{
		graph:       g,
		name:        name,
		verbose:     opts.Verbose,
		log:         log.WithComponent("flow"),
		maxParallel: opts.MaxParallel,
	}, nil
}

// Name returns the system's identifier.
func (s *System) Name() string { return s.name }

// Graph returns the system's immutable graph for inspection.
func (s *System) Graph() *Graph { return s.graph }

// Flow executes one pass: raw inputs are bound to the inlets in declaration
// order, every reachable element runs exactly once, and one result per
// outlet is returned in outlet-declaration order. A failing element aborts
// the pass; no partial results are returned.
func (s *System) Flow(ctx context.Context, raw ...any) ([]any, error) {
	out, _, err := s.FlowReport(ctx, raw...)
	return out, err
}

// FlowReport is Flow plus a per-element report of the pass.
func (s *System) FlowReport(ctx context.Context, raw ...any) ([]any, *Report, error) {
	start := time.Now()

	if len(raw) != len(s.graph.inlets) {
		return nil, nil, errors.InputArity(len(s.graph.inlets), len(raw))
	}

	p := newPass(s.graph, raw)

	var err error
	if s.maxParallel > 1 {
		err = s.flowParallel(ctx, p)
	} else {
		err = s.flowSequential(ctx, p)
	}

	report := p.report(s.name, time.Since(start))
	if err != nil {
		s.log.Error("flow pass aborted", logger.ErrorFields(s.name, err))
		return nil, report, err
	}

	out := make([]any, len(s.graph.outlets))
	for i, h := range s.graph.outlets {
		out[i] = p.values[h]
	}

	if s.verbose {
		s.log.Info("flow pass complete", logger.Fields(
			"outlets", len(out),
			logger.FieldDuration, report.Duration.Milliseconds(),
		))
	}
	return out, report, nil
}

func (s *System) flowSequential(ctx context.Context, p *pass) error {
	for _, h := range s.graph.order {
		if err := ctx.Err(); err != nil {
			return errors.Transform(s.graph.nodes[h].name, err)
		}
		if err := s.runElement(ctx, p, h); err != nil {
			return err
		}
	}
	return nil
}

// flowParallel executes mutually independent elements concurrently through a
// dependency-counted ready queue. An element starts only once all its
// predecessors and requirement sources are done; the first failure cancels
// elements that have not yet started.
func (s *System) flowParallel(ctx context.Context, p *pass) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	remaining := make([]int, len(s.graph.nodes))
	dependents := make([][]Handle, len(s.graph.nodes))
	var roots []Handle

	for _, h := range s.graph.order {
		remaining[h] = len(s.graph.nodes[h].preds)
		dependents[h] = append(dependents[h], s.graph.nodes[h].succs...)
	}
	for _, r := range s.graph.reqs {
		remaining[r.Target]++
		dependents[r.Source] = append(dependents[r.Source], r.Target)
	}
	for _, h := range s.graph.order {
		if remaining[h] == 0 {
			roots = append(roots, h)
		}
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	sem := make(chan struct{}, s.maxParallel)

	var execute func(h Handle)
	execute = func(h Handle) {
		defer wg.Done()
		sem <- struct{}{}
		defer func() { <-sem }()

		if ctx.Err() != nil {
			return
		}
		if err := s.runElement(ctx, p, h); err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			cancel()
			return
		}
		// Result publication above happens-before dependent starts: the
		// dependent goroutine is spawned only after runElement returned.
		mu.Lock()
		for _, d := range dependents[h] {
			remaining[d]--
			if remaining[d] == 0 {
				wg.Add(1)
				go execute(d)
			}
		}
		mu.Unlock()
	}

	for _, h := range roots {
		wg.Add(1)
		go execute(h)
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	if err := ctx.Err(); err != nil {
		return errors.Transform(s.name, err)
	}
	return nil
}

// runElement gathers the element's inputs, resolves its requirements,
// invokes its transform and publishes the result into the pass.
func (s *System) runElement(ctx context.Context, p *pass, h Handle) error {
	n := s.graph.nodes[h]
	start := time.Now()
	p.setStatus(h, StatusRunning)

	in := &Input{}
	if n.inlet {
		in.Data = []any{p.raw[h]}
	} else {
		in.Data = make([]any, len(n.preds))
		for i, pred := range n.preds {
			in.Data[i] = p.values[pred]
		}
	}

	args, err := s.resolveRequirements(p, h)
	if err != nil {
		p.fail(h, err, time.Since(start))
		return err
	}
	in.Args = args

	out, err := n.elem.Transform(ctx, in)
	if err != nil {
		werr := errors.Transform(n.name, err)
		p.fail(h, werr, time.Since(start))
		return werr
	}

	p.done(h, out, time.Since(start))

	if s.verbose {
		s.log.Debug("element done", logger.Fields(
			logger.FieldElement, n.name,
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
	}
	return nil
}

// resolveRequirements reads each requirement's attribute off its executed
// source. A source that has not executed is a scheduler-invariant violation;
// a missing attribute is a misconfigured requirement. Both surface as
// RESOLUTION errors.
func (s *System) resolveRequirements(p *pass, h Handle) (map[string]any, error) {
	var args map[string]any
	for _, r := range s.graph.reqs {
		if r.Target != h {
			continue
		}
		src := s.graph.nodes[r.Source]
		if p.status(r.Source) != StatusDone {
			return nil, errors.Resolution(src.name, r.Attribute).
				WithDetail("reason", "source has not executed")
		}
		attrs := p.attrs[r.Source]
		val, found := attrs[r.Attribute]
		if !found {
			return nil, errors.Resolution(src.name, r.Attribute)
		}
		if args == nil {
			args = make(map[string]any)
		}
		args[r.Argument] = val
	}
	return args, nil
}

// pass is the per-flow transient state: element status, cached results and
// exported attributes, all indexed by handle. A fresh pass is created for
// every Flow call so passes never share state.
type pass struct {
	graph     *Graph
	raw       map[Handle]any
	mu        sync.Mutex
	statuses  []Status
	values    []any
	attrs     []map[string]any
	durations []time.Duration
	errs      []error
}

func newPass(g *Graph, raw []any) *pass {
	p := &pass{
		graph:     g,
		raw:       make(map[Handle]any, len(raw)),
		statuses:  make([]Status, len(g.nodes)),
		values:    make([]any, len(g.nodes)),
		attrs:     make([]map[string]any, len(g.nodes)),
		durations: make([]time.Duration, len(g.nodes)),
		errs:      make([]error, len(g.nodes)),
	}
	for i := range p.statuses {
		p.statuses[i] = StatusPending
	}
	for i, h := range g.inlets {
		p.raw[h] = raw[i]
	}
	return p
}

func (p *pass) setStatus(h Handle, st Status) {
	p.mu.Lock()
	p.statuses[h] = st
	p.mu.Unlock()
}

func (p *pass) status(h Handle) Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statuses[h]
}

func (p *pass) done(h Handle, out *Output, d time.Duration) {
	p.values[h] = out.Value
	p.attrs[h] = out.Attrs
	p.mu.Lock()
	p.statuses[h] = StatusDone
	p.durations[h] = d
	p.mu.Unlock()
}

func (p *pass) fail(h Handle, err error, d time.Duration) {
	p.mu.Lock()
	p.statuses[h] = StatusFailed
	p.durations[h] = d
	p.errs[h] = err
	p.mu.Unlock()
}

func (p *pass) report(system string, total time.Duration) *Report {
	p.mu.Lock()
	defer p.mu.Unlock()
	elems := make(map[string]ElementResult, len(p.graph.order))
	for _, h := range p.graph.order {
		n := p.graph.nodes[h]
		elems[n.name] = ElementResult{
			Name:     n.name,
			Status:   p.statuses[h],
			Duration: p.durations[h],
			Err:      p.errs[h],
		}
	}
	return &Report{System: system, Duration: total, Elements: elems}
}
