package health

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ruaan-deysel/unraid-management-agent/daemon/logger"
)

// SilenceType is the effect a matching silencer has on a rule (§3 S).
type SilenceType int

const (
	SilenceNone SilenceType = iota
	SilenceDisableAlarms
	SilenceNotifications
)

// Silencer is one pattern matcher in the silencer ruleset. Empty pattern
// fields are wildcards (§3, §4.2).
type Silencer struct {
	Alarm   string `json:"alarm,omitempty"`
	Chart   string `json:"chart,omitempty"`
	Context string `json:"context,omitempty"`
	Host    string `json:"host,omitempty"`
	Family  string `json:"family,omitempty"`
}

// matches reports whether every non-empty pattern the matcher defines
// matches the corresponding rule attribute (§4.2).
func (s Silencer) matches(alarm, chart, context, host, family string) bool {
	check := func(pattern, value string) bool {
		if pattern == "" {
			return true
		}
		ok, err := filepath.Match(pattern, value)
		return err == nil && ok
	}
	return check(s.Alarm, alarm) &&
		check(s.Chart, chart) &&
		check(s.Context, context) &&
		check(s.Host, host) &&
		check(s.Family, family)
}

// SilencerRuleset is the full silencer configuration (§3 S): an ordered
// matcher list plus the global stype/all_alarms switches.
type SilencerRuleset struct {
	Matchers  []Silencer  `json:"matchers"`
	Type      SilenceType `json:"stype"`
	AllAlarms bool        `json:"all_alarms"`
}

// CheckSilenced implements spec §4.2 check_silenced(): walks the matcher
// list in order, first match wins, returning the ruleset's stype (even
// if None, in which case the match is inert). Returns SilenceNone if no
// matcher matches.
func CheckSilenced(r *Rule, hostname string, rs *SilencerRuleset) SilenceType {
	if rs == nil {
		return SilenceNone
	}
	for _, m := range rs.Matchers {
		if m.matches(r.AlarmID, r.Chart, r.Chart, hostname, r.Family) {
			return rs.Type
		}
	}
	return SilenceNone
}

// UpdateDisabledSilenced implements spec §4.2 update_disabled_silenced():
// clears both Disabled and Silenced on the rule, then reapplies them
// based on the ruleset, returning true iff Disabled is now set (the
// caller should then skip the rule entirely).
func UpdateDisabledSilenced(r *Rule, hostname string, rs *SilencerRuleset) bool {
	r.setFlag(RuleDisabled, false)
	r.setFlag(RuleSilenced, false)

	var effect SilenceType
	if rs != nil && rs.AllAlarms {
		effect = rs.Type
	} else {
		effect = CheckSilenced(r, hostname, rs)
	}

	switch effect {
	case SilenceDisableAlarms:
		r.setFlag(RuleDisabled, true)
	case SilenceNotifications:
		r.setFlag(RuleSilenced, true)
	}

	return r.Flags.has(RuleDisabled)
}

// MaxSilencerFileSize bounds the silencer JSON document (§6): loading
// aborts if the file is empty or larger than this.
const MaxSilencerFileSize = 1 << 20 // 1 MiB

// LoadSilencerFile parses a JSON silencer ruleset from path, matching
// §6's "Silencer file" interface. A missing or malformed file logs and
// returns an empty ruleset rather than failing the caller (§7: "engine
// continues with empty silencers").
func LoadSilencerFile(path string) *SilencerRuleset {
	empty := &SilencerRuleset{}

	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warning("Health: silencer file stat failed for %s: %v", path, err)
		}
		return empty
	}
	if info.Size() == 0 {
		logger.Warning("Health: silencer file %s is empty, using empty ruleset", path)
		return empty
	}
	if info.Size() > MaxSilencerFileSize {
		logger.Warning("Health: silencer file %s exceeds max size (%d bytes), using empty ruleset", path, MaxSilencerFileSize)
		return empty
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is an operator-configured silencer file, not user input
	if err != nil {
		logger.Warning("Health: failed to read silencer file %s: %v", path, err)
		return empty
	}

	var rs SilencerRuleset
	if err := json.Unmarshal(data, &rs); err != nil {
		logger.Warning("Health: failed to parse silencer file %s: %v", path, err)
		return empty
	}

	return &rs
}

// SaveSilencerFile persists a ruleset to path, for the out-of-scope
// control API (§6) to call after mutating it. Provided for completeness
// of the load/save round trip exercised by tests.
func SaveSilencerFile(path string, rs *SilencerRuleset) error {
	data, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal silencer ruleset: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil { //nolint:gosec // G301: operator config directory
		return fmt.Errorf("create silencer dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil { //nolint:gosec // G306: operator config file
		return fmt.Errorf("write silencer file: %w", err)
	}
	return nil
}
