package health

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRuleFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("writing rule file: %v", err)
	}
}

func TestJSONRuleLoaderLoadsAndCompiles(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "cpu.json", `[
		{"name": "cpu.high", "chart": "system.cpu", "calc": "this", "warn": "this > 80", "crit": "this > 95", "every": 10}
	]`)

	rules, err := (JSONRuleLoader{}).LoadRules([]string{dir})
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if rules[0].Name != "cpu.high" || rules[0].Chart != "system.cpu" {
		t.Errorf("unexpected rule: %+v", rules[0])
	}
	if rules[0].Calculation == nil || rules[0].Warning == nil || rules[0].Critical == nil {
		t.Error("expected all three expressions to compile")
	}
}

func TestJSONRuleLoaderUserDirOverridesStockByName(t *testing.T) {
	stock := t.TempDir()
	user := t.TempDir()
	writeRuleFile(t, stock, "cpu.json", `[{"name": "cpu.high", "chart": "stock.chart", "every": 10}]`)
	writeRuleFile(t, user, "cpu.json", `[{"name": "cpu.high", "chart": "user.chart", "every": 10}]`)

	rules, err := (JSONRuleLoader{}).LoadRules([]string{stock, user})
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected the user override to replace the stock rule by name, got %d rules", len(rules))
	}
	if rules[0].Chart != "user.chart" {
		t.Errorf("expected user dir's definition to win, got chart %q", rules[0].Chart)
	}
}

func TestJSONRuleLoaderMissingDirIsNotAnError(t *testing.T) {
	rules, err := (JSONRuleLoader{}).LoadRules([]string{"/does/not/exist"})
	if err != nil {
		t.Fatalf("expected a missing directory to be silently skipped, got error: %v", err)
	}
	if len(rules) != 0 {
		t.Errorf("expected no rules, got %d", len(rules))
	}
}

func TestJSONRuleLoaderSkipsUncompilableRule(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "bad.json", `[
		{"name": "broken", "chart": "x", "calc": "this >>> not valid"},
		{"name": "ok", "chart": "x"}
	]`)

	rules, err := (JSONRuleLoader{}).LoadRules([]string{dir})
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rules) != 1 || rules[0].Name != "ok" {
		t.Errorf("expected the uncompilable rule skipped and the valid one kept, got %+v", rules)
	}
}

func TestReloadDropsAndRelinksRules(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "cpu.json", `[{"name": "cpu.high", "chart": "system.cpu", "every": 10}]`)

	h := NewHost("tower", 100)
	h.AddRule(&Rule{Name: "stale.rule"})

	cfg := Config{RuleDirs: []string{dir}}
	if err := Reload(h, JSONRuleLoader{}, cfg); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	rules := h.Rules()
	if len(rules) != 1 || rules[0].Name != "cpu.high" {
		t.Fatalf("expected the stale rule dropped and cpu.high loaded, got %+v", rules)
	}
}

func TestReloadMarksLogEntriesUpdatedExceptRemoved(t *testing.T) {
	h := NewHost("tower", 100)
	kept := &Event{AlarmID: "a", NewStatus: StatusWarning}
	h.Log.Append(kept)
	removed := &Event{AlarmID: "b", NewStatus: StatusRemoved}
	h.Log.Append(removed)

	if err := Reload(h, JSONRuleLoader{}, Config{RuleDirs: []string{t.TempDir()}}); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if !kept.Flags.Has(EventUpdated) {
		t.Error("expected a non-Removed log entry marked Updated on reload")
	}
	if removed.Flags.Has(EventUpdated) {
		t.Error("expected a Removed log entry left untouched on reload")
	}
}
