package health

import (
	"testing"
	"time"
)

func TestIsRunnableNilChart(t *testing.T) {
	r := &Rule{UpdateEvery: 10}
	now := time.Now()
	next := now.Add(time.Hour)
	if IsRunnable(r, nil, now, &next) {
		t.Error("expected false for a nil (unknown) chart")
	}
}

func TestIsRunnableNotYetDue(t *testing.T) {
	now := time.Now()
	r := &Rule{UpdateEvery: 10, NextUpdate: now.Add(5 * time.Second)}
	chart := &Chart{SampleCount: 5}
	next := now.Add(time.Hour)

	if IsRunnable(r, chart, now, &next) {
		t.Error("expected false before NextUpdate")
	}
	if !next.Equal(r.NextUpdate) {
		t.Errorf("expected nextRun advanced to rule's NextUpdate %v, got %v", r.NextUpdate, next)
	}
}

func TestIsRunnableZeroUpdateEvery(t *testing.T) {
	now := time.Now()
	r := &Rule{UpdateEvery: 0}
	chart := &Chart{SampleCount: 5}
	next := now.Add(time.Hour)
	if IsRunnable(r, chart, now, &next) {
		t.Error("expected false when UpdateEvery is unset")
	}
}

func TestIsRunnableObsoleteOrDisabledChart(t *testing.T) {
	now := time.Now()
	r := &Rule{UpdateEvery: 10}
	next := now.Add(time.Hour)

	if IsRunnable(r, &Chart{Obsolete: true, SampleCount: 5}, now, &next) {
		t.Error("expected false for an obsolete chart")
	}
	if IsRunnable(r, &Chart{Disabled: true, SampleCount: 5}, now, &next) {
		t.Error("expected false for a disabled chart")
	}
}

func TestIsRunnableInsufficientSamples(t *testing.T) {
	now := time.Now()
	r := &Rule{UpdateEvery: 10}
	next := now.Add(time.Hour)
	if IsRunnable(r, &Chart{SampleCount: 1}, now, &next) {
		t.Error("expected false with fewer than 2 samples")
	}
}

func TestIsRunnableTrueForSimpleRule(t *testing.T) {
	now := time.Now()
	r := &Rule{UpdateEvery: 10}
	chart := &Chart{SampleCount: 5, FirstSampleAt: now.Add(-time.Hour), LastSampleAt: now}
	next := now.Add(time.Hour)
	if !IsRunnable(r, chart, now, &next) {
		t.Error("expected true for a due, non-DB-lookup rule with a live chart")
	}
}

func TestIsRunnableDBLookupOutsideChartWindow(t *testing.T) {
	now := time.Now()
	r := &Rule{
		UpdateEvery: 10,
		HasDBLookup: true,
		DB:          DBLookup{After: -3600, Before: -1800},
	}
	// Chart only has samples from the last minute: far short of the
	// requested 30-60 minutes-ago window.
	chart := &Chart{
		SampleCount:   5,
		FirstSampleAt: now.Add(-time.Minute),
		LastSampleAt:  now,
	}
	next := now.Add(time.Hour)
	if IsRunnable(r, chart, now, &next) {
		t.Error("expected false when the DB lookup window predates the chart's first sample")
	}
}
