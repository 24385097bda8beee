package health

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ruaan-deysel/unraid-management-agent/daemon/logger"
	"github.com/ruaan-deysel/unraid-management-agent/daemon/services/collectors"
)

// RuleLoader reads rule definitions for a host from configured
// directories (§4.9's "stock and user rule directories").
type RuleLoader interface {
	LoadRules(dirs []string) ([]*Rule, error)
}

// jsonRule is the on-disk shape JSONRuleLoader reads. It is a minimal
// stand-in for a rule definition language — it does NOT replicate
// Netdata's stock health/*.conf grammar (that parser is out of scope per
// SPEC_FULL.md §3); it exists only to exercise the reload coordinator
// (C10) end to end with real files on disk.
type jsonRule struct {
	Name            string  `json:"name"`
	Chart           string  `json:"chart"`
	Family          string  `json:"family,omitempty"`
	Calculation     string  `json:"calc,omitempty"`
	Warning         string  `json:"warn,omitempty"`
	Critical        string  `json:"crit,omitempty"`
	UpdateEvery     int     `json:"every,omitempty"`
	DelayUpSeconds  int     `json:"delay_up,omitempty"`
	DelayDownSec    int     `json:"delay_down,omitempty"`
	DelayMultiplier float64 `json:"delay_multiplier,omitempty"`
	DelayMaxSeconds int     `json:"delay_max,omitempty"`
	WarnRepeatSec   int     `json:"warn_repeat_every,omitempty"`
	CritRepeatSec   int     `json:"crit_repeat_every,omitempty"`
	Exec            string  `json:"exec,omitempty"`
	Recipient       string  `json:"to,omitempty"`
	Units           string  `json:"units,omitempty"`
	Info            string  `json:"info,omitempty"`
	NoClearNotif    bool    `json:"no_clear_notification,omitempty"`
}

// JSONRuleLoader loads rules from *.json files in each configured
// directory, later directories overriding earlier ones by rule name
// (mirroring the stock-then-user precedence of Netdata's real loader,
// without its grammar).
type JSONRuleLoader struct{}

// LoadRules implements RuleLoader.
func (JSONRuleLoader) LoadRules(dirs []string) ([]*Rule, error) {
	byName := make(map[string]*Rule)
	var order []string

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading rule dir %s: %w", dir, err)
		}
		for _, ent := range entries {
			if ent.IsDir() || filepath.Ext(ent.Name()) != ".json" {
				continue
			}
			path := filepath.Join(dir, ent.Name())
			data, err := os.ReadFile(path) //nolint:gosec // operator-configured rule directory
			if err != nil {
				return nil, fmt.Errorf("reading rule file %s: %w", path, err)
			}
			var defs []jsonRule
			if err := json.Unmarshal(data, &defs); err != nil {
				return nil, fmt.Errorf("parsing rule file %s: %w", path, err)
			}
			for _, d := range defs {
				r, err := compileJSONRule(d)
				if err != nil {
					logger.Warning("Health: skipping rule %q in %s: %v", d.Name, path, err)
					continue
				}
				if _, seen := byName[r.Name]; !seen {
					order = append(order, r.Name)
				}
				byName[r.Name] = r
			}
		}
	}

	rules := make([]*Rule, 0, len(order))
	for _, name := range order {
		rules = append(rules, byName[name])
	}
	return rules, nil
}

func compileJSONRule(d jsonRule) (*Rule, error) {
	r := &Rule{
		Name:              d.Name,
		Chart:             d.Chart,
		Family:            d.Family,
		UpdateEvery:       d.UpdateEvery,
		DelayUpDuration:   time.Duration(d.DelayUpSeconds) * time.Second,
		DelayDownDuration: time.Duration(d.DelayDownSec) * time.Second,
		DelayMultiplier:   d.DelayMultiplier,
		DelayMaxDuration:  time.Duration(d.DelayMaxSeconds) * time.Second,
		WarnRepeatEvery:   time.Duration(d.WarnRepeatSec) * time.Second,
		CritRepeatEvery:   time.Duration(d.CritRepeatSec) * time.Second,
		Exec:              d.Exec,
		Recipient:         d.Recipient,
		Units:             d.Units,
		Info:              d.Info,
		Status:            StatusUninitialized,
		OldStatus:         StatusUninitialized,
	}
	r.setFlag(RuleNoClearNotification, d.NoClearNotif)

	if d.Calculation != "" {
		expr, err := CompileExpression(d.Calculation)
		if err != nil {
			return nil, fmt.Errorf("calc: %w", err)
		}
		r.Calculation = expr
		r.HasDBLookup = true
	}
	if d.Warning != "" {
		expr, err := CompileExpression(d.Warning)
		if err != nil {
			return nil, fmt.Errorf("warn: %w", err)
		}
		r.Warning = expr
	}
	if d.Critical != "" {
		expr, err := CompileExpression(d.Critical)
		if err != nil {
			return nil, fmt.Errorf("crit: %w", err)
		}
		r.Critical = expr
	}
	return r, nil
}

// Reload implements spec §4.9: under the host's write lock, drop all
// rules, mark every non-Removed log entry Updated (so the dispatcher
// suppresses stale notifications for state that no longer exists), then
// reload and relink rules from cfg's rule directories.
func Reload(h *Host, loader RuleLoader, cfg Config) error {
	rules, err := loader.LoadRules(cfg.RuleDirs)
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}

	h.Lock()
	defer h.Unlock()

	h.Log.MarkUpdatedAllExceptRemoved()
	h.DropAllRules()
	for _, r := range rules {
		h.AddRule(r)
	}

	logger.Info("Health: reloaded %d rule(s) for host %s", len(rules), h.Hostname)
	return nil
}

// ConfigWatcher drives a reload off changes to the silencer file, adapting
// the existing collector infrastructure's debounced FileWatcher
// (SPEC_FULL.md §2/§3) rather than polling it. FileWatcher watches a
// known file's parent directory and matches events by exact absolute
// path, which fits a single file (the silencer file) but not an
// arbitrary rule directory's changing contents — so rule-directory
// reloads are not fsnotify-driven here; Reload is called directly by
// whatever triggers a rule change (engine startup, a future control API,
// or an operator signal), per SPEC_FULL.md §3.
type ConfigWatcher struct {
	fw     *collectors.FileWatcher
	h      *Host
	loader RuleLoader
	cfg    Config
}

// NewConfigWatcher creates a watcher for cfg.SilencerFile, debounced by
// debounce.
func NewConfigWatcher(h *Host, loader RuleLoader, cfg Config, debounce time.Duration) (*ConfigWatcher, error) {
	fw, err := collectors.NewFileWatcher(debounce)
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	cw := &ConfigWatcher{fw: fw, h: h, loader: loader, cfg: cfg}

	if cfg.SilencerFile != "" {
		if err := fw.WatchFile(cfg.SilencerFile); err != nil {
			logger.Warning("Health: failed to watch silencer file %s: %v", cfg.SilencerFile, err)
		}
	}
	return cw, nil
}

// Run blocks, triggering Reload whenever the silencer file changes, until
// ctx is cancelled.
func (cw *ConfigWatcher) Run(ctx context.Context) {
	if cw.cfg.SilencerFile == "" {
		<-ctx.Done()
		return
	}
	cw.fw.Run(ctx, []string{cw.cfg.SilencerFile}, func() {
		if err := Reload(cw.h, cw.loader, cw.cfg); err != nil {
			logger.Error("Health: reload failed: %v", err)
		}
	})
}

// Close releases the underlying watcher.
func (cw *ConfigWatcher) Close() error {
	return cw.fw.Close()
}
