package health

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ruaan-deysel/unraid-management-agent/daemon/logger"
)

// NotifierTimeout bounds how long the dispatcher waits on a spawned
// notifier process before giving up on draining its stdout.
const NotifierTimeout = 60 * time.Second

// Metrics groups the engine's own Prometheus instrumentation
// (SPEC_FULL.md §2 domain stack), registered once at construction.
type Metrics struct {
	EventsTotal        prometheus.Counter
	NotificationsTotal *prometheus.CounterVec
	EvalDuration       prometheus.Histogram
	RulesRunnable      prometheus.Gauge
}

// NewMetrics creates and registers the engine's Prometheus collectors
// against reg. Passing a nil reg is allowed for tests that don't care
// about metrics; the collectors are simply never registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "health_events_total",
			Help: "Total alarm events appended to host event logs.",
		}),
		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "health_notifications_total",
			Help: "Total notifier invocations, labeled by outcome.",
		}, []string{"outcome"}),
		EvalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "health_eval_duration_seconds",
			Help: "Duration of one main-loop evaluation iteration.",
		}),
		RulesRunnable: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "health_rules_runnable",
			Help: "Number of rules runnable in the most recent iteration.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.EventsTotal, m.NotificationsTotal, m.EvalDuration, m.RulesRunnable)
	}
	return m
}

// Dispatcher implements C7: scans unprocessed events, dedups against
// the prior event of the same alarm, spawns the notifier (or sends via
// shoutrrr when Exec is a URL), and records the outcome.
type Dispatcher struct {
	metrics *Metrics
}

// NewDispatcher creates a notification dispatcher.
func NewDispatcher(metrics *Metrics) *Dispatcher {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Dispatcher{metrics: metrics}
}

// RuleCounts summarizes how many of a host's rules are currently in
// warning/critical, for the notifier argv (§4.8).
type RuleCounts struct {
	Warnings  int
	Criticals int
}

// CountRules implements §4.8's counts computation: iterate the host's
// rules, counting those whose chart has been collected (approximated
// here as "chart is known to the store and has at least one sample")
// and whose status is Warning or Critical. The caller must hold at
// least the host read lock.
func CountRules(h *Host, store MetricStore) RuleCounts {
	var rc RuleCounts
	for _, r := range h.Rules() {
		ci := store.ChartInfo(r.Chart)
		if ci == nil || ci.SampleCount == 0 {
			continue
		}
		switch r.Status {
		case StatusWarning:
			rc.Warnings++
		case StatusCritical:
			rc.Criticals++
		}
	}
	return rc
}

// LogProcess implements spec §4.8 log_process(): drains unprocessed
// events from the host's log, executing (notifying) those whose delay
// has elapsed, advancing the watermark, and trimming if the log has
// overflowed. The caller must NOT hold the host lock: LogProcess takes it
// itself around the watermark, and Execute takes it for the rule counts.
// The notifier spawn/wait can be lengthy (§5 lock discipline: never hold
// the event-log lock while invoking the notifier), so the scan only
// collects the due events under the log's read lock, and Execute runs for
// each of them after ScanUnprocessed has returned.
func (d *Dispatcher) LogProcess(ctx context.Context, h *Host, store MetricStore, now time.Time) {
	firstWaiting := h.Log.Head()
	h.RLock()
	lastProcessed := h.HealthLastProcessedID()
	h.RUnlock()

	var toExecute []*Event
	h.Log.ScanUnprocessed(lastProcessed, func(ev *Event, _ func() *Event) {
		if ev.AlarmEventID == repeatingEventMarker {
			return // repeats are dispatched inline, never logged (§4.8 step 2)
		}
		if ev.Flags.Has(EventProcessed) || ev.Flags.Has(EventUpdated) {
			return
		}
		if ev.UniqueID < firstWaiting {
			firstWaiting = ev.UniqueID
		}
		if !now.Before(ev.DelayUpToTimestamp()) {
			toExecute = append(toExecute, ev)
		}
	})

	for _, ev := range toExecute {
		d.Execute(ctx, h, store, ev, now)
	}

	h.Lock()
	h.SetHealthLastProcessedID(firstWaiting)
	h.Unlock()

	if h.Log.Count() > 0 {
		h.Log.Trim()
	}
}

// repeatingEventMarker is never a real AlarmEventID value assigned by
// the registry (those start at 0 and increment); repeat events are
// stamped with it so LogProcess recognizes and skips them if a caller
// mistakenly appended one (defense in depth — the repeat emitter never
// appends to the log at all per §4.6/I4/I5, so this path is normally
// unreachable).
const repeatingEventMarker = ^uint64(0)

// Execute implements spec §4.8 execute(): applies the dedup/suppression
// rules, builds argv, spawns the notifier (or sends via shoutrrr), and
// records the outcome. It must be called with the host lock NOT held,
// and the event log's own locks are only taken internally by the
// (read-only) dedup scan — never across the notifier spawn/wait,
// honoring §5's "never hold the event-log lock while invoking the
// notifier."
func (d *Dispatcher) Execute(ctx context.Context, h *Host, store MetricStore, ev *Event, now time.Time) {
	ev.setFlag(EventProcessed, true)

	if ev.NewStatus.Internal() {
		return
	}
	if ev.NewStatus <= StatusClear && ev.Flags.Has(EventNoClearNotification) {
		return
	}

	if !ev.Flags.Has(EventNoClearNotification) {
		prior := h.Log.FindLatestExecRun(ev)
		if prior != nil {
			if prior.NewStatus == ev.NewStatus {
				return
			}
		} else if ev.NewStatus == StatusClear {
			return
		}
	}

	if ev.Flags.Has(EventSilenced) {
		return
	}

	h.RLock()
	counts := CountRules(h, store)
	h.RUnlock()

	argv := d.buildArgv(h, ev, counts)

	exec := ev.Exec
	if exec == "" {
		exec = h.DefaultExec
	}

	if isShoutrrrURL(exec) {
		d.sendShoutrrr(exec, ev)
		ev.setFlag(EventExecRun, true)
		ev.ExecRunAt = now
		d.metrics.NotificationsTotal.WithLabelValues("shoutrrr").Inc()
		return
	}

	d.spawnNotifier(ctx, exec, argv, ev, now)
}

// DelayUpToTimestamp returns the event's delay_up_to_timestamp (§4.4),
// recomputed from When+Delay since Event itself is immutable once
// appended and doesn't carry a separate mutable field for it.
func (e *Event) DelayUpToTimestamp() time.Time {
	return e.When.Add(e.Delay)
}

// spawnNotifier runs the external notifier executable, draining its
// stdout to completion and recording the exit code (§4.8, §6, §7).
func (d *Dispatcher) spawnNotifier(ctx context.Context, exec string, argv []string, ev *Event, now time.Time) {
	cctx, cancel := context.WithTimeout(ctx, NotifierTimeout)
	defer cancel()

	cmd := execCommand(cctx, exec, argv...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		logger.Error("Health: failed to create notifier stdout pipe: %v", err)
		return
	}

	if err := cmd.Start(); err != nil {
		// §7: spawn failure — ExecRun still set, ExecFailed not set.
		logger.Error("Health: failed to spawn notifier %s: %v", exec, err)
		ev.setFlag(EventExecRun, true)
		ev.ExecRunAt = now
		d.metrics.NotificationsTotal.WithLabelValues("spawn_error").Inc()
		return
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		// stdout is drained and discarded (§6).
	}

	err = cmd.Wait()
	ev.setFlag(EventExecRun, true)
	ev.ExecRunAt = now

	if err != nil {
		ev.setFlag(EventExecFailed, true)
		if exitErr, ok := err.(*exec.ExitError); ok {
			ev.ExecCode = exitErr.ExitCode()
		} else {
			ev.ExecCode = -1
		}
		d.metrics.NotificationsTotal.WithLabelValues("exec_failed").Inc()
		logger.Warning("Health: notifier %s exited with error: %v", exec, err)
		return
	}

	ev.ExecCode = 0
	d.metrics.NotificationsTotal.WithLabelValues("success").Inc()
}

// execCommand is a seam for tests to stub process spawning.
var execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}

// isShoutrrrURL reports whether exec names a shoutrrr notification
// service URL rather than an executable path (SPEC_FULL.md §2).
func isShoutrrrURL(exec string) bool {
	for _, scheme := range []string{"slack://", "discord://", "ntfy://", "gotify://", "telegram://", "smtp://", "generic+"} {
		if strings.HasPrefix(exec, scheme) {
			return true
		}
	}
	return false
}

func (d *Dispatcher) sendShoutrrr(url string, ev *Event) {
	msg := fmt.Sprintf("[%s] %s: %s -> %s", ev.Chart, ev.Name, ev.OldStatus, ev.NewStatus)
	if err := shoutrrr.Send(url, msg); err != nil {
		logger.Error("Health: shoutrrr send failed for %s: %v", ev.Name, err)
	}
}

// buildArgv builds the notifier's fixed positional argv, per §4.8:
// exec, recipient, registry_hostname, unique_id, alarm_id, alarm_event_id,
// when, name, chart, family, new_status, old_status, new_value, old_value,
// source, duration, non_clear_duration, units, info, new_value_string,
// old_value_string, expression source, expression error, warn_count,
// crit_count.
func (d *Dispatcher) buildArgv(h *Host, ev *Event, counts RuleCounts) []string {
	recipient := ev.Recipient
	if recipient == "" {
		recipient = h.DefaultRecipient
	}

	exec := ev.Exec
	if exec == "" {
		exec = h.DefaultExec
	}

	return []string{
		exec,
		recipient,
		h.RegistryHostname,
		strconv.FormatUint(ev.UniqueID, 10),
		ev.AlarmID,
		strconv.FormatUint(ev.AlarmEventID, 10),
		strconv.FormatInt(ev.When.Unix(), 10),
		ev.Name,
		ev.Chart,
		ev.Family,
		ev.NewStatus.String(),
		ev.OldStatus.String(),
		strconv.FormatFloat(ev.NewValue, 'f', -1, 64),
		strconv.FormatFloat(ev.OldValue, 'f', -1, 64),
		ev.Source,
		strconv.FormatFloat(ev.Duration.Seconds(), 'f', 0, 64),
		strconv.FormatFloat(ev.NonClearDur.Seconds(), 'f', 0, 64),
		ev.Units,
		ev.Info,
		formatValue(ev.NewValue, ev.Units),
		formatValue(ev.OldValue, ev.Units),
		ev.ExprSource,
		ev.ExprError,
		strconv.Itoa(counts.Warnings),
		strconv.Itoa(counts.Criticals),
	}
}

func formatValue(v float64, units string) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + units
}
