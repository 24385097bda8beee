package health

import (
	"path/filepath"
	"testing"
)

func TestCheckSilencedFirstMatchWins(t *testing.T) {
	rs := &SilencerRuleset{
		Type: SilenceNotifications,
		Matchers: []Silencer{
			{Chart: "disk.*"},
			{Chart: "*"},
		},
	}
	r := &Rule{Chart: "disk.sda", Family: "disks"}
	if got := CheckSilenced(r, "tower", rs); got != SilenceNotifications {
		t.Errorf("expected SilenceNotifications, got %v", got)
	}
}

func TestCheckSilencedNoMatch(t *testing.T) {
	rs := &SilencerRuleset{
		Type:     SilenceNotifications,
		Matchers: []Silencer{{Chart: "cpu.*"}},
	}
	r := &Rule{Chart: "disk.sda"}
	if got := CheckSilenced(r, "tower", rs); got != SilenceNone {
		t.Errorf("expected SilenceNone, got %v", got)
	}
}

func TestCheckSilencedNilRuleset(t *testing.T) {
	r := &Rule{Chart: "disk.sda"}
	if got := CheckSilenced(r, "tower", nil); got != SilenceNone {
		t.Errorf("expected SilenceNone for nil ruleset, got %v", got)
	}
}

func TestUpdateDisabledSilencedSetsDisabled(t *testing.T) {
	rs := &SilencerRuleset{
		Type:      SilenceDisableAlarms,
		AllAlarms: true,
	}
	r := &Rule{Chart: "disk.sda"}
	r.setFlag(RuleSilenced, true) // stale flag from a previous ruleset

	disabled := UpdateDisabledSilenced(r, "tower", rs)
	if !disabled {
		t.Error("expected rule to be reported disabled")
	}
	if !r.Flags.has(RuleDisabled) {
		t.Error("expected RuleDisabled flag set")
	}
	if r.Flags.has(RuleSilenced) {
		t.Error("expected stale RuleSilenced flag cleared")
	}
}

func TestUpdateDisabledSilencedSetsSilencedNotDisabled(t *testing.T) {
	rs := &SilencerRuleset{
		Type:      SilenceNotifications,
		AllAlarms: true,
	}
	r := &Rule{Chart: "disk.sda"}

	disabled := UpdateDisabledSilenced(r, "tower", rs)
	if disabled {
		t.Error("expected SilenceNotifications to not report disabled")
	}
	if !r.Flags.has(RuleSilenced) {
		t.Error("expected RuleSilenced flag set")
	}
}

func TestLoadSilencerFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "silencers.json")

	rs := &SilencerRuleset{
		Type:      SilenceNotifications,
		AllAlarms: false,
		Matchers:  []Silencer{{Alarm: "disk_*"}},
	}
	if err := SaveSilencerFile(path, rs); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := LoadSilencerFile(path)
	if loaded.Type != SilenceNotifications {
		t.Errorf("expected type %v, got %v", SilenceNotifications, loaded.Type)
	}
	if len(loaded.Matchers) != 1 || loaded.Matchers[0].Alarm != "disk_*" {
		t.Errorf("unexpected matchers after round trip: %+v", loaded.Matchers)
	}
}

func TestLoadSilencerFileMissingReturnsEmptyRuleset(t *testing.T) {
	rs := LoadSilencerFile("/nonexistent/path/silencers.json")
	if rs == nil {
		t.Fatal("expected a non-nil empty ruleset")
	}
	if len(rs.Matchers) != 0 || rs.Type != SilenceNone {
		t.Errorf("expected a zero-value ruleset, got %+v", rs)
	}
}
