package health

import (
	"context"
	"time"
)

// EmitRepeats implements spec §4.6: after per-host evaluation, walks
// rules and, for any repeating rule currently in Warning or Critical
// whose repeat cadence has elapsed, synthesizes an event, dispatches it
// directly, and discards it — it is never appended to the event log
// (invariants I4/I5, Design Note §9). The caller must hold at least the
// host read lock for the duration of this call (it only reads/mutates
// rule fields, same as the status pass).
func EmitRepeats(ctx context.Context, h *Host, store MetricStore, d *Dispatcher, now time.Time) {
	for _, r := range h.Rules() {
		if !r.IsRepeating() {
			continue
		}
		if r.Status != StatusWarning && r.Status != StatusCritical {
			continue
		}

		cadence := r.WarnRepeatEvery
		if r.Status == StatusCritical {
			cadence = r.CritRepeatEvery
		}
		if cadence <= 0 {
			continue
		}

		if r.LastRepeat.Add(cadence).After(now) {
			continue
		}
		r.LastRepeat = now

		var exprSource, exprError string
		if expr := drivingExpression(r, r.Status); expr != nil {
			exprSource = expr.Source()
			exprError = expr.ErrorMsg()
		}

		var nonClearDur time.Duration
		if !r.NonClearSince.IsZero() {
			nonClearDur = now.Sub(r.NonClearSince)
		}

		ev := &Event{
			AlarmID:      r.AlarmID,
			AlarmEventID: repeatingEventMarker,
			When:         now,
			Name:         r.Name,
			Chart:        r.Chart,
			Family:       r.Family,
			Exec:         r.Exec,
			Recipient:    r.Recipient,
			Duration:     now.Sub(r.LastStatusChange),
			NonClearDur:  nonClearDur,
			OldValue:     r.OldValue,
			NewValue:     r.Value,
			OldStatus:    r.OldStatus,
			NewStatus:    r.Status,
			Source:       r.Source,
			Units:        r.Units,
			Info:         r.Info,
			ExprSource:   exprSource,
			ExprError:    exprError,
			Delay:        0,
			LastRepeat:   r.LastRepeat,
		}
		ev.setFlag(EventNoClearNotification, r.Flags.has(RuleNoClearNotification))
		ev.setFlag(EventSilenced, r.Flags.has(RuleSilenced))

		d.Execute(ctx, h, store, ev, now)
		// ev is discarded here — never appended, matching §4.6 "free the
		// event (repeats are not stored in the log)".
	}
}
