package health

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ruaan-deysel/unraid-management-agent/daemon/logger"
)

// suspensionFactor is the threshold by which elapsed wall-clock time must
// exceed the expected tick interval before the engine treats the gap as
// a host suspend/resume rather than ordinary scheduling jitter (§4.11).
const suspensionFactor = 2

// Engine is C9: the main evaluation loop. It owns a set of hosts and,
// once per MinRunEvery, walks each host through the value pass, the
// status pass, the repeating-alarm pass, and log processing, honoring
// the per-host RW-lock discipline of §5 (never holding the event log's
// lock across a notifier spawn, never holding a host's lock across
// another host's work).
type Engine struct {
	cfg        Config
	store      MetricStore
	dispatcher *Dispatcher
	metrics    *Metrics

	mu       sync.RWMutex
	hosts    []*Host
	lastTick time.Time
}

// NewEngine creates the health monitoring engine.
func NewEngine(cfg Config, store MetricStore, reg prometheus.Registerer) *Engine {
	metrics := NewMetrics(reg)
	return &Engine{
		cfg:        cfg,
		store:      store,
		dispatcher: NewDispatcher(metrics),
		metrics:    metrics,
	}
}

// AddHost registers a host with the engine. Safe to call before Start or
// concurrently while it's running.
func (e *Engine) AddHost(h *Host) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hosts = append(e.hosts, h)
}

// Hosts returns the engine's currently registered hosts.
func (e *Engine) Hosts() []*Host {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*Host, len(e.hosts))
	copy(out, e.hosts)
	return out
}

// Start runs the main loop until ctx is cancelled (§4.10). Each iteration
// is wrapped in a panic-recover guard so one host's misbehaving
// expression or collector can't take the whole engine down, mirroring
// the teacher's ticker+recover pattern.
func (e *Engine) Start(ctx context.Context) {
	interval := e.cfg.MinRunEveryDuration()
	logger.Info("Health: engine started (run every %s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.runIteration(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Health: engine stopped")
			return
		case <-ticker.C:
			e.runIteration(ctx)
		}
	}
}

func (e *Engine) runIteration(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Health: PANIC during evaluation: %v", r)
		}
	}()

	now := time.Now()
	e.detectSuspension(now)

	timer := prometheus.NewTimer(e.metrics.EvalDuration)
	defer timer.ObserveDuration()

	for _, h := range e.Hosts() {
		if ctx.Err() != nil {
			return
		}
		e.runHost(ctx, h, now)
	}
}

// detectSuspension implements §4.11: if more wall-clock time elapsed
// since the previous tick than suspensionFactor times the configured
// interval, the process was very likely suspended (e.g. a laptop closing
// its lid); every host's evaluation is postponed by HibernationDelay so
// stale rule state isn't immediately treated as a fresh transition.
func (e *Engine) detectSuspension(now time.Time) {
	interval := e.cfg.MinRunEveryDuration()
	// Round(0) drops the monotonic reading, so the gap is measured on the
	// wall clock, which keeps running while the host is suspended.
	gap := now.Round(0).Sub(e.lastTick.Round(0))
	if !e.lastTick.IsZero() && gap > interval*suspensionFactor {
		resumeAt := now.Add(e.cfg.HibernationDelayDuration())
		logger.Warning("Health: clock gap of %s detected, postponing evaluation until %s", gap, resumeAt)
		for _, h := range e.Hosts() {
			h.Lock()
			h.DelayUpTo = resumeAt
			h.Unlock()
		}
	}
	e.lastTick = now
}

// runHost runs one host through the value pass, status pass, repeat
// pass, and log processing (§4.10). The host write lock is held across
// the value+status passes (rule fields are mutated in place) and
// released before the repeat pass and log processing, which invoke the
// dispatcher and must never run with the host or event-log lock held
// across a notifier spawn (§5).
func (e *Engine) runHost(ctx context.Context, h *Host, now time.Time) {
	h.Lock()
	if !h.HealthEnabled || now.Before(h.DelayUpTo) {
		h.Unlock()
		return
	}

	for _, r := range h.Rules() {
		nextRun := r.NextUpdate
		if !IsRunnable(r, e.store.ChartInfo(r.Chart), now, &nextRun) {
			r.setFlag(RuleRunnable, false)
			continue
		}
		evaluateValue(r, e.store)
		r.LastUpdated = now
		r.NextUpdate = now.Add(time.Duration(r.UpdateEvery) * time.Second)
	}

	var runnable int
	var newEvents []*Event
	for _, r := range h.Rules() {
		if !r.Flags.has(RuleRunnable) {
			continue
		}
		runnable++
		result := Evaluate(r, now)
		if result.Transitioned && !r.IsRepeating() {
			newEvents = append(newEvents, MakeTransitionEvent(r, result.NewStatus, result.Delay, now))
		}
	}
	e.metrics.RulesRunnable.Set(float64(runnable))

	for _, ev := range newEvents {
		h.Log.Append(ev)
		e.metrics.EventsTotal.Inc()
	}
	h.Unlock()

	if ctx.Err() != nil {
		return
	}

	h.RLock()
	EmitRepeats(ctx, h, e.store, e.dispatcher, now)
	h.RUnlock()

	e.dispatcher.LogProcess(ctx, h, e.store, now)
}

// evaluateValue implements the value pass of §4.1: runs the DB lookup (if
// any), the calculation expression, and the warning/critical expressions
// against the resulting value, recording DbError/DbNan/CalcError/
// WarnError/CritError flags exactly as the spec's edge cases require.
// r.Warning/r.Critical's cached Result() is what the later status pass
// (Evaluate in statemachine.go) reads.
func evaluateValue(r *Rule, store MetricStore) {
	r.setFlag(RuleDbError, false)
	r.setFlag(RuleDbNan, false)
	r.setFlag(RuleCalcError, false)
	r.setFlag(RuleWarnError, false)
	r.setFlag(RuleCritError, false)
	r.setFlag(RuleRunnable, true)

	env := make(map[string]any)

	if r.HasDBLookup {
		value, _, _, status := store.Query(r.Chart, r.DB.Dims, 0, r.DB.After, r.DB.Before, r.DB.Grouping, r.DB.Options)
		if status != QuerySuccess {
			r.setFlag(RuleDbError, true)
		}
		if math.IsNaN(value) {
			r.setFlag(RuleDbNan, true)
		}
		env["value"] = value
		env["this"] = value
	}

	r.OldValue = r.Value
	if r.Calculation != nil {
		ok, err := r.Calculation.Evaluate(env)
		if err != nil || !ok {
			r.setFlag(RuleCalcError, true)
		} else {
			r.Value = r.Calculation.Result()
		}
	} else if v, ok := env["value"].(float64); ok {
		r.Value = v
	}
	env["this"] = r.Value

	if r.Warning != nil {
		if _, err := r.Warning.Evaluate(env); err != nil {
			r.setFlag(RuleWarnError, true)
		}
	}
	if r.Critical != nil {
		if _, err := r.Critical.Evaluate(env); err != nil {
			r.setFlag(RuleCritError, true)
		}
	}
}
