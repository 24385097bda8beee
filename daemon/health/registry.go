package health

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Host owns a rule set, an event log, and the per-host bookkeeping the
// main loop and dispatcher need (§3 H).
//
// Locking discipline follows spec §5: a single RW-lock per host guards
// the rule set and dispatcher watermark, taken for write around the value
// and status passes (rule fields are mutated in place) and around reload,
// and for read around the repeat pass and the notifier's rule counts. Methods below
// do NOT lock internally — callers take Lock/RLock for the full
// operation they're performing, exactly as the main loop and reload
// coordinator are specified to, and reentrant (un)locking is avoided
// entirely rather than relying on Go's non-recursive RWMutex.
type Host struct {
	mu sync.RWMutex

	Hostname         string
	RegistryHostname string
	HealthEnabled    bool
	DefaultExec      string
	DefaultRecipient string

	DelayUpTo time.Time // postpones evaluation after detected suspension

	Log *EventLog

	rules                 []*Rule
	healthLastProcessedID uint64
}

// NewHost creates a host with health monitoring enabled by default.
func NewHost(hostname string, logMax int) *Host {
	return &Host{
		Hostname:         hostname,
		RegistryHostname: hostname,
		HealthEnabled:    true,
		Log:              NewEventLog(logMax),
		rules:            make([]*Rule, 0),
	}
}

// RLock/RUnlock/Lock/Unlock expose the host's RW-lock directly so the
// engine (C9) and reload coordinator (C10) can hold it across whole
// evaluation/reload passes per the concurrency model in spec §5.
func (h *Host) RLock()   { h.mu.RLock() }
func (h *Host) RUnlock() { h.mu.RUnlock() }
func (h *Host) Lock()    { h.mu.Lock() }
func (h *Host) Unlock()  { h.mu.Unlock() }

// AddRule registers a rule under this host (C1), assigning a stable
// AlarmID via uuid if the caller didn't already set one. The caller
// must hold the host write lock (or be doing single-threaded setup
// before the engine starts).
func (h *Host) AddRule(r *Rule) {
	if r.AlarmID == "" {
		r.AlarmID = uuid.NewString()
	}
	if r.Status == StatusRemoved {
		r.Status = StatusUninitialized
		r.OldStatus = StatusUninitialized
	}
	h.rules = append(h.rules, r)
}

// Rules returns the live slice of registered rules. The caller must
// hold at least the host read lock for the duration of use.
func (h *Host) Rules() []*Rule {
	return h.rules
}

// DropAllRules implements the rule-dropping half of the reload
// coordinator (§4.9). The caller must hold the host write lock.
func (h *Host) DropAllRules() {
	h.rules = h.rules[:0]
}

// HealthLastProcessedID returns the dispatcher's watermark into the
// event log (§4.8 step 3). The caller must hold at least the read lock.
func (h *Host) HealthLastProcessedID() uint64 {
	return h.healthLastProcessedID
}

// SetHealthLastProcessedID updates the dispatcher's watermark. The
// caller must hold the write lock.
func (h *Host) SetHealthLastProcessedID(id uint64) {
	h.healthLastProcessedID = id
}
