package health

import (
	"context"
	"testing"
	"time"
)

func TestEmitRepeatsSkipsNonRepeatingRules(t *testing.T) {
	h := NewHost("tower", 100)
	h.AddRule(&Rule{Name: "no-repeat", Status: StatusWarning})

	d := NewDispatcher(nil)
	spawned := false
	restore := stubExecCommand(&spawned)
	defer restore()

	EmitRepeats(context.Background(), h, fakeMetricStore{chart: &Chart{SampleCount: 1}}, d, time.Now())
	if spawned {
		t.Error("expected no dispatch for a rule with no repeat cadence configured")
	}
	if h.Log.Count() != 0 {
		t.Error("expected EmitRepeats to never append to the event log")
	}
}

func TestEmitRepeatsSkipsClearStatus(t *testing.T) {
	h := NewHost("tower", 100)
	h.AddRule(&Rule{Name: "r", Status: StatusClear, WarnRepeatEvery: time.Second})

	d := NewDispatcher(nil)
	spawned := false
	restore := stubExecCommand(&spawned)
	defer restore()

	EmitRepeats(context.Background(), h, fakeMetricStore{chart: &Chart{SampleCount: 1}}, d, time.Now())
	if spawned {
		t.Error("expected no repeat dispatch for a Clear rule")
	}
}

func TestEmitRepeatsFiresWhenCadenceElapsed(t *testing.T) {
	h := NewHost("tower", 100)
	now := time.Now()
	r := &Rule{
		Name: "r", AlarmID: "a", Status: StatusWarning,
		WarnRepeatEvery: 10 * time.Second,
		LastRepeat:      now.Add(-20 * time.Second),
	}
	h.AddRule(r)

	d := NewDispatcher(nil)
	count := 0
	restore := stubExecCommandCounting(&count)
	defer restore()

	EmitRepeats(context.Background(), h, fakeMetricStore{chart: &Chart{SampleCount: 1}}, d, now)

	if count != 1 {
		t.Fatalf("expected exactly one repeat dispatch, got %d", count)
	}
	if !r.LastRepeat.Equal(now) {
		t.Errorf("expected LastRepeat advanced to now, got %v", r.LastRepeat)
	}
	if h.Log.Count() != 0 {
		t.Error("expected the repeat event to never be appended to the log")
	}
}

func TestEmitRepeatsWaitsForCadence(t *testing.T) {
	h := NewHost("tower", 100)
	now := time.Now()
	r := &Rule{
		Name: "r", AlarmID: "a", Status: StatusWarning,
		WarnRepeatEvery: time.Minute,
		LastRepeat:      now.Add(-5 * time.Second),
	}
	h.AddRule(r)

	d := NewDispatcher(nil)
	spawned := false
	restore := stubExecCommand(&spawned)
	defer restore()

	EmitRepeats(context.Background(), h, fakeMetricStore{chart: &Chart{SampleCount: 1}}, d, now)
	if spawned {
		t.Error("expected no dispatch before the repeat cadence elapses")
	}
}

func TestEmitRepeatsUsesCriticalCadence(t *testing.T) {
	h := NewHost("tower", 100)
	now := time.Now()
	r := &Rule{
		Name: "r", AlarmID: "a", Status: StatusCritical,
		WarnRepeatEvery: time.Hour,        // should NOT be used
		CritRepeatEvery: 10 * time.Second, // should be used
		LastRepeat:      now.Add(-20 * time.Second),
	}
	h.AddRule(r)

	d := NewDispatcher(nil)
	count := 0
	restore := stubExecCommandCounting(&count)
	defer restore()

	EmitRepeats(context.Background(), h, fakeMetricStore{chart: &Chart{SampleCount: 1}}, d, now)
	if count != 1 {
		t.Errorf("expected the critical repeat cadence to govern dispatch, got %d dispatches", count)
	}
}
