package health

import (
	"testing"
	"time"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		warn, crit valueResult
		want       Status
	}{
		{valUndefined, valUndefined, StatusUndefined},
		{valClear, valUndefined, StatusClear},
		{valRaised, valUndefined, StatusWarning},
		{valUndefined, valClear, StatusClear},
		{valClear, valClear, StatusClear},
		{valRaised, valClear, StatusWarning}, // crit=Clear only overrides an Undefined status, not Warning
		{valUndefined, valRaised, StatusCritical},
		{valRaised, valRaised, StatusCritical},
	}
	for _, c := range cases {
		if got := deriveStatus(c.warn, c.crit); got != c.want {
			t.Errorf("deriveStatus(%v, %v) = %v, want %v", c.warn, c.crit, got, c.want)
		}
	}
}

func newTestRule() *Rule {
	return &Rule{
		AlarmID:           "alarm-1",
		Name:              "test.rule",
		Status:            StatusClear,
		OldStatus:         StatusClear,
		DelayUpDuration:   10 * time.Second,
		DelayDownDuration: 5 * time.Second,
		DelayMultiplier:   2,
		DelayMaxDuration:  40 * time.Second,
	}
}

func TestEvaluateNoTransitionWhenStatusUnchanged(t *testing.T) {
	r := newTestRule()
	r.Status = StatusUndefined
	r.OldStatus = StatusUndefined
	now := time.Now()
	result := Evaluate(r, now)
	if result.Transitioned {
		t.Fatalf("expected no transition: a rule with no warn/crit expressions derives Undefined, matching its initial Undefined status")
	}
}

func TestEvaluateTransitionsToWarningAndApplyDelay(t *testing.T) {
	r := newTestRule()
	warnExpr, _ := CompileExpression("this")
	r.Warning = warnExpr
	_, _ = r.Warning.Evaluate(map[string]any{"this": 1.0})

	now := time.Now()
	result := Evaluate(r, now)
	if !result.Transitioned {
		t.Fatalf("expected a transition from Clear to Warning")
	}
	if result.NewStatus != StatusWarning {
		t.Errorf("expected StatusWarning, got %v", result.NewStatus)
	}
	if result.Delay != r.DelayUpDuration {
		t.Errorf("expected first transition to use the base up-delay %v, got %v", r.DelayUpDuration, result.Delay)
	}
}

func TestApplyHysteresisBackoffOnRepeatedEscalation(t *testing.T) {
	r := newTestRule()
	now := time.Now()

	d1 := applyHysteresis(r, StatusWarning, now)
	if d1 != r.DelayUpDuration {
		t.Fatalf("first escalation delay = %v, want base %v", d1, r.DelayUpDuration)
	}

	// Escalate again before the first delay window has elapsed: the
	// multiplier should scale the current delay up (capped at DelayMaxDuration).
	d2 := applyHysteresis(r, StatusCritical, now.Add(time.Second))
	want := r.DelayUpDuration * 2
	if d2 != want {
		t.Errorf("second escalation delay = %v, want %v", d2, want)
	}

	d3 := applyHysteresis(r, StatusWarning, now.Add(2*time.Second))
	if d3 > r.DelayMaxDuration {
		t.Errorf("delay %v exceeded configured max %v", d3, r.DelayMaxDuration)
	}
}

func TestApplyHysteresisResetsAfterWindowExpires(t *testing.T) {
	r := newTestRule()
	now := time.Now()
	applyHysteresis(r, StatusWarning, now)

	// Well past DelayUpToTimestamp: backoff state should reset to base.
	later := now.Add(time.Hour)
	d := applyHysteresis(r, StatusWarning, later)
	if d != r.DelayUpDuration {
		t.Errorf("expected reset to base delay %v after window expiry, got %v", r.DelayUpDuration, d)
	}
}

func TestMakeTransitionEventAdvancesRuleBookkeeping(t *testing.T) {
	r := newTestRule()
	r.NextEventID = 5
	now := time.Now()

	ev := MakeTransitionEvent(r, StatusWarning, 10*time.Second, now)

	if ev.AlarmEventID != 5 {
		t.Errorf("expected event to carry the pre-increment event id 5, got %d", ev.AlarmEventID)
	}
	if ev.OldStatus != StatusClear || ev.NewStatus != StatusWarning {
		t.Errorf("unexpected old/new status on event: %v -> %v", ev.OldStatus, ev.NewStatus)
	}
	if r.NextEventID != 6 {
		t.Errorf("expected NextEventID incremented to 6, got %d", r.NextEventID)
	}
	if r.Status != StatusWarning || r.OldStatus != StatusClear {
		t.Errorf("expected rule status advanced to Warning with OldStatus Clear, got status=%v oldStatus=%v", r.Status, r.OldStatus)
	}
	if r.LastStatusChange != now {
		t.Errorf("expected LastStatusChange updated to now")
	}
	if ev.NonClearDur != 0 {
		t.Errorf("expected non_clear_duration 0 on a fresh Clear->Warning transition, got %v", ev.NonClearDur)
	}
	if r.NonClearSince != now {
		t.Errorf("expected NonClearSince stamped to now on entering a non-clear state, got %v", r.NonClearSince)
	}
}

func TestMakeTransitionEventCarriesDrivingExpression(t *testing.T) {
	r := newTestRule()
	warnExpr, _ := CompileExpression("this > 80")
	r.Warning = warnExpr
	_, _ = r.Warning.Evaluate(map[string]any{"this": 95.0})

	ev := MakeTransitionEvent(r, StatusWarning, 0, time.Now())
	if ev.ExprSource != "this > 80" {
		t.Errorf("expected ExprSource from the warning expression, got %q", ev.ExprSource)
	}
	if ev.ExprError != "" {
		t.Errorf("expected no ExprError, got %q", ev.ExprError)
	}
}

func TestNonClearDurationAcrossWarningCriticalAndBackToClear(t *testing.T) {
	r := newTestRule()
	t0 := time.Now()

	// Clear -> Warning: starts the non-clear clock at t0.
	ev1 := MakeTransitionEvent(r, StatusWarning, 0, t0)
	if ev1.NonClearDur != 0 {
		t.Fatalf("expected 0 entering non-clear, got %v", ev1.NonClearDur)
	}

	// Warning -> Critical, 5s later: clock keeps running from t0.
	t1 := t0.Add(5 * time.Second)
	ev2 := MakeTransitionEvent(r, StatusCritical, 0, t1)
	if ev2.NonClearDur != 5*time.Second {
		t.Errorf("expected non_clear_duration carried across Warning->Critical (5s), got %v", ev2.NonClearDur)
	}

	// Critical -> Clear, 10s after t0: reports the full non-clear span, then resets.
	t2 := t0.Add(10 * time.Second)
	ev3 := MakeTransitionEvent(r, StatusClear, 0, t2)
	if ev3.NonClearDur != 10*time.Second {
		t.Errorf("expected non_clear_duration of 10s on clearing, got %v", ev3.NonClearDur)
	}
	if !r.NonClearSince.IsZero() {
		t.Errorf("expected NonClearSince reset to zero after re-entering Clear, got %v", r.NonClearSince)
	}
}
