package health

import "time"

// IsRunnable implements the runnability gate (spec §4.1). It mutates
// *nextRun to the minimum of its current value and the rule's next
// update instant whenever the rule is not yet due, so the caller can
// track the earliest instant the main loop needs to wake up again.
func IsRunnable(r *Rule, chart *Chart, now time.Time, nextRun *time.Time) bool {
	if chart == nil {
		return false
	}
	if r.NextUpdate.After(now) {
		if r.NextUpdate.Before(*nextRun) {
			*nextRun = r.NextUpdate
		}
		return false
	}
	if r.UpdateEvery == 0 {
		return false
	}
	if chart.Obsolete || chart.Disabled {
		return false
	}
	if chart.SampleCount < 2 {
		return false
	}

	if r.HasDBLookup {
		updateEvery := time.Duration(r.UpdateEvery) * time.Second
		needed := now.Add(time.Duration(r.DB.Before) * time.Second).Add(time.Duration(r.DB.After) * time.Second)

		if needed.Add(updateEvery).Before(chart.FirstSampleAt) {
			return false
		}
		if needed.Add(-updateEvery).After(chart.LastSampleAt) {
			return false
		}
		if now.Add(updateEvery).Before(chart.FirstSampleAt) {
			return false
		}
	}

	return true
}
