// Package cmd provides command implementations for the Unraid Management Agent.
package cmd

import (
	"github.com/ruaan-deysel/unraid-management-agent/daemon/domain"
	"github.com/ruaan-deysel/unraid-management-agent/daemon/services"
)

// HealthMon represents the health-monitor command: an explicit alias for
// Boot that emphasizes the health monitoring engine is part of the
// normal boot sequence (wired alongside the alerting engine and
// watchdog in services.Orchestrator.Run), for operators who want their
// process supervisor's command line to name it directly.
type HealthMon struct{}

// Run executes the health-monitor command.
func (h *HealthMon) Run(ctx *domain.Context) error {
	return services.CreateOrchestrator(ctx).Run()
}
