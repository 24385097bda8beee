package health

import "time"

// deriveStatus implements spec §4.3 step 2-4: new status derivation from
// (warn_status, crit_status), each one of {Undefined, Clear, Raised}.
func deriveStatus(warn, crit valueResult) Status {
	status := StatusUndefined

	switch warn {
	case valClear:
		status = StatusClear
	case valRaised:
		status = StatusWarning
	}

	if crit == valClear && status == StatusUndefined {
		status = StatusClear
	}
	if crit == valRaised {
		status = StatusCritical
	}

	return status
}

// applyHysteresis implements spec §4.4. Called only when newStatus !=
// rule.Status. Mutates the rule's delay working state and returns the
// delay to apply before this transition may be notified.
func applyHysteresis(r *Rule, newStatus Status, now time.Time) time.Duration {
	if now.After(r.DelayUpToTimestamp) {
		r.DelayUpCurrent = r.DelayUpDuration
		r.DelayDownCurrent = r.DelayDownDuration
		r.DelayLast = 0
		r.DelayUpToTimestamp = time.Time{}
	} else {
		r.DelayUpCurrent = scaleDelay(r.DelayUpCurrent, r.DelayMultiplier, r.DelayMaxDuration)
		r.DelayDownCurrent = scaleDelay(r.DelayDownCurrent, r.DelayMultiplier, r.DelayMaxDuration)
	}

	var delay time.Duration
	if newStatus > r.Status {
		delay = r.DelayUpCurrent
	} else {
		delay = r.DelayDownCurrent
	}

	r.DelayLast = delay
	r.DelayUpToTimestamp = now.Add(delay)
	return delay
}

// scaleDelay multiplies current by multiplier (truncated to an integer
// number of seconds, matching the spec's "truncated to int" on the
// underlying seconds-based duration) and clamps to max.
func scaleDelay(current time.Duration, multiplier float64, max time.Duration) time.Duration {
	scaled := time.Duration(current.Seconds()*multiplier) * time.Second
	if max > 0 && scaled > max {
		scaled = max
	}
	return scaled
}

// TransitionResult carries the outcome of evaluating one rule for the
// status-pass (§4.11 pass B) so the caller can decide whether to append
// an event and whether the repeating emitter should fire separately.
type TransitionResult struct {
	Transitioned bool
	NewStatus    Status
	Delay        time.Duration
}

// Evaluate runs the status pass for a single rule: derives the new
// status from its warning/critical expression results (already
// evaluated into r.Warning/r.Critical by the caller), applies
// hysteresis on transition, and updates rule bookkeeping fields.
// It does NOT append to the event log — callers apply §4.5's event
// creation policy (transition + not repeating) separately, since
// repeating rules must never append (invariant I4/I5, Design Note §9).
func Evaluate(r *Rule, now time.Time) TransitionResult {
	warn, crit := valUndefined, valUndefined

	if r.Warning != nil {
		if r.Flags.has(RuleWarnError) {
			warn = valUndefined
		} else {
			warn = valueToStatus(r.Warning.Result())
		}
	}
	if r.Critical != nil {
		if r.Flags.has(RuleCritError) {
			crit = valUndefined
		} else {
			crit = valueToStatus(r.Critical.Result())
		}
	}

	newStatus := deriveStatus(warn, crit)
	if r.Flags.has(RuleDbError) || r.Flags.has(RuleDbNan) || r.Flags.has(RuleCalcError) {
		newStatus = StatusUndefined
	}

	result := TransitionResult{NewStatus: newStatus}

	if newStatus != r.Status {
		result.Transitioned = true
		result.Delay = applyHysteresis(r, newStatus, now)
	}

	return result
}

// drivingExpression returns the expression that produced status (Critical's
// for StatusCritical, Warning's for StatusWarning, nil otherwise), for the
// notifier argv's "expression source"/"expression error" fields (§4.8).
func drivingExpression(r *Rule, status Status) Expression {
	switch status {
	case StatusCritical:
		return r.Critical
	case StatusWarning:
		return r.Warning
	default:
		return nil
	}
}

// MakeTransitionEvent implements spec §4.5: builds the Event for a
// non-repeating rule's status transition and updates rule bookkeeping.
// Callers must only invoke this when !rule.IsRepeating() — repeating
// rules never append to the log (invariant I4).
func MakeTransitionEvent(r *Rule, newStatus Status, delay time.Duration, now time.Time) *Event {
	nonClearDur := nonClearDuration(r, newStatus, now)

	var exprSource, exprError string
	if expr := drivingExpression(r, newStatus); expr != nil {
		exprSource = expr.Source()
		exprError = expr.ErrorMsg()
	}

	ev := &Event{
		AlarmID:      r.AlarmID,
		AlarmEventID: r.NextEventID,
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
		OldStatus:    r.Status,
		NewStatus:    newStatus,
		Source:       r.Source,
		Units:        r.Units,
		Info:         r.Info,
		ExprSource:   exprSource,
		ExprError:    exprError,
		Delay:        delay,
	}
	ev.setFlag(EventNoClearNotification, r.Flags.has(RuleNoClearNotification))
	ev.setFlag(EventSilenced, r.Flags.has(RuleSilenced))

	r.NextEventID++
	r.LastStatusChange = now
	r.OldStatus = r.Status
	r.Status = newStatus

	return ev
}

// nonClearDuration implements spec §3's non_clear_duration: the time the
// rule has continuously been away from Clear, carried across
// Warning<->Critical transitions and reset whenever it re-enters Clear.
// Must be called before r.Status/r.NonClearSince are advanced.
func nonClearDuration(r *Rule, newStatus Status, now time.Time) time.Duration {
	wasClear := r.Status <= StatusClear
	goingClear := newStatus <= StatusClear

	switch {
	case wasClear && !goingClear:
		// Entering a non-clear state: start the clock now.
		r.NonClearSince = now
		return 0
	case !wasClear && goingClear:
		// Leaving non-clear: report how long it lasted, then reset.
		dur := now.Sub(r.NonClearSince)
		r.NonClearSince = time.Time{}
		return dur
	case !wasClear && !goingClear:
		// Warning<->Critical: clock keeps running.
		return now.Sub(r.NonClearSince)
	default:
		return 0
	}
}
