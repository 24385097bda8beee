package collectors

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ruaan-deysel/unraid-management-agent/daemon/domain"
	"github.com/ruaan-deysel/unraid-management-agent/daemon/dto"
	"github.com/ruaan-deysel/unraid-management-agent/daemon/lib"
	"github.com/ruaan-deysel/unraid-management-agent/daemon/logger"
)

// NetworkCollector collects network interface information including status, speed, and statistics.
// It gathers data from network interfaces, bonds, bridges, and VLANs.
type NetworkCollector struct {
	ctx *domain.Context
}

// NewNetworkCollector creates a new network interface collector with the given context.
func NewNetworkCollector(ctx *domain.Context) *NetworkCollector {
	return &NetworkCollector{ctx: ctx}
}

// Start begins the network collector's periodic data collection.
// It runs in a goroutine and publishes network interface updates at the specified interval until the context is cancelled.
func (c *NetworkCollector) Start(ctx context.Context, interval time.Duration) {
	logger.Info("Starting network collector (interval: %v)", interval)

	// Run once immediately with panic recovery
	func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Network collector PANIC on startup: %v", r)
			}
		}()
		c.Collect()
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Network collector stopping due to context cancellation")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Error("Network collector PANIC in loop: %v", r)
					}
				}()
				c.Collect()
			}()
		}
	}
}

// Collect gathers network interface information and publishes it to the event bus.
// It collects data from /sys/class/net and uses ethtool for detailed interface information.
func (c *NetworkCollector) Collect() {
	logger.Debug("Collecting network data...")

	// Collect network interfaces
	interfaces, err := c.collectNetworkInterfaces()
	if err != nil {
		logger.Error("Network: Failed to collect interface data: %v", err)
		return
	}

	logger.Debug("Network: Successfully collected %d interfaces, publishing event", len(interfaces))
	// Publish event
	c.ctx.Hub.Pub(interfaces, "network_list_update")
	logger.Debug("Network: Published network_list_update event with %d interfaces", len(interfaces))
}

func (c *NetworkCollector) collectNetworkInterfaces() ([]dto.NetworkInfo, error) {
	logger.Debug("Network: Starting collection from /proc/net/dev and /sys/class/net")
	var interfaces []dto.NetworkInfo

	// Parse /proc/net/dev for bandwidth stats
	stats, err := c.parseNetDev()
	if err != nil {
		logger.Error("Network: Failed to parse /proc/net/dev: %v", err)
		return nil, err
	}

	// Get interface details from /sys/class/net
	for ifName, ifStats := range stats {
		// Skip loopback
		if ifName == "lo" {
			continue
		}

		netInfo := dto.NetworkInfo{
			Name:            ifName,
			BytesReceived:   ifStats.BytesReceived,
			BytesSent:       ifStats.BytesSent,
			PacketsReceived: ifStats.PacketsReceived,
			PacketsSent:     ifStats.PacketsSent,
			ErrorsReceived:  ifStats.ErrorsReceived,
			ErrorsSent:      ifStats.ErrorsSent,
			Timestamp:       time.Now(),
		}

		// Get MAC address
		netInfo.MACAddress = c.getMACAddress(ifName)

		// Get IP address
		netInfo.IPAddress = c.getIPAddress(ifName)

		// Get link speed
		netInfo.Speed = c.getLinkSpeed(ifName)

		// Get operational state
		netInfo.State = c.getOperState(ifName)

		// Get ethtool information (enhanced network details)
		c.enrichWithEthtool(&netInfo, ifName)

		interfaces = append(interfaces, netInfo)
	}

	logger.Debug("Network: Parsed %d interfaces successfully", len(interfaces))
	return interfaces, nil
}

type netStats struct {
	BytesReceived   uint64
	PacketsReceived uint64
	ErrorsReceived  uint64
	BytesSent       uint64
	PacketsSent     uint64
	ErrorsSent      uint64
}

func (c *NetworkCollector) parseNetDev() (map[string]netStats, error) {
	file, err := os.Open("/proc/net/dev")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Debug("Error closing network stats file: %v", err)
		}
	}()

	stats := make(map[string]netStats)
	scanner := bufio.NewScanner(file)

	// Skip header lines
	scanner.Scan()
	scanner.Scan()

	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			continue
		}

		ifName := strings.TrimSpace(parts[0])
		fields := strings.Fields(parts[1])

		if len(fields) < 16 {
			continue
		}

		stats[ifName] = netStats{
			BytesReceived:   parseUint64(fields[0]),
			PacketsReceived: parseUint64(fields[1]),
			ErrorsReceived:  parseUint64(fields[2]),
			BytesSent:       parseUint64(fields[8]),
			PacketsSent:     parseUint64(fields[9]),
			ErrorsSent:      parseUint64(fields[10]),
		}
	}

	return stats, scanner.Err()
}

func (c *NetworkCollector) getMACAddress(ifName string) string {
	path := fmt.Sprintf("/sys/class/net/%s/address", ifName)
	//nolint:gosec // G304: Path is constructed from /sys/class/net system directory, ifName from trusted source
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (c *NetworkCollector) getIPAddress(ifName string) string {
	// Use Go's net package directly instead of spawning 'ip' command
	// This is faster and avoids process overhead
	iface, err := net.InterfaceByName(ifName)
	if err != nil {
		return ""
	}

	addrs, err := iface.Addrs()
	if err != nil {
		return ""
	}

	for _, addr := range addrs {
		// Check if it's an IP network address
		if ipNet, ok := addr.(*net.IPNet); ok {
			// Get IPv4 address only
			if ipv4 := ipNet.IP.To4(); ipv4 != nil {
				return ipv4.String()
			}
		}
	}
	return ""
}

func (c *NetworkCollector) getLinkSpeed(ifName string) int {
	path := fmt.Sprintf("/sys/class/net/%s/speed", ifName)
	//nolint:gosec // G304: Path is constructed from /sys/class/net system directory, ifName from trusted source
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	speed, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return speed
}

func (c *NetworkCollector) getOperState(ifName string) string {
	path := fmt.Sprintf("/sys/class/net/%s/operstate", ifName)
	//nolint:gosec // G304: Path is constructed from /sys/class/net system directory, ifName from trusted source
	data, err := os.ReadFile(path)
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(data))
}

func parseUint64(s string) uint64 {
	val, _ := strconv.ParseUint(s, 10, 64)
	return val
}

// enrichWithEthtool adds ethtool information to the network interface
func (c *NetworkCollector) enrichWithEthtool(netInfo *dto.NetworkInfo, ifName string) {
	// Parse ethtool information
	ethtoolInfo, err := lib.ParseEthtool(ifName)
	if err != nil {
		logger.Debug("Network: Failed to get ethtool info for %s: %v", ifName, err)
		return
	}

	// Populate ethtool fields
	netInfo.SupportedPorts = ethtoolInfo.SupportedPorts
	netInfo.SupportedLinkModes = ethtoolInfo.SupportedLinkModes
	netInfo.SupportedPauseFrame = ethtoolInfo.SupportedPauseFrame
	netInfo.SupportsAutoNeg = ethtoolInfo.SupportsAutoNeg
	netInfo.SupportedFECModes = ethtoolInfo.SupportedFECModes
	netInfo.AdvertisedLinkModes = ethtoolInfo.AdvertisedLinkModes
	netInfo.AdvertisedPauseFrame = ethtoolInfo.AdvertisedPauseFrame
	netInfo.AdvertisedAutoNeg = ethtoolInfo.AdvertisedAutoNeg
	netInfo.AdvertisedFECModes = ethtoolInfo.AdvertisedFECModes
	netInfo.Duplex = ethtoolInfo.Duplex
	netInfo.AutoNegotiation = ethtoolInfo.AutoNegotiation
	netInfo.Port = ethtoolInfo.Port
	netInfo.PHYAD = ethtoolInfo.PHYAD
	netInfo.Transceiver = ethtoolInfo.Transceiver
	netInfo.MDIX = ethtoolInfo.MDIX
	netInfo.SupportsWakeOn = ethtoolInfo.SupportsWakeOn
	netInfo.WakeOn = ethtoolInfo.WakeOn
	netInfo.MessageLevel = ethtoolInfo.MessageLevel
	netInfo.LinkDetected = ethtoolInfo.LinkDetected
	netInfo.MTU = ethtoolInfo.MTU

	logger.Debug("Network: Enriched %s with ethtool data - Duplex: %s, Link: %v", ifName, netInfo.Duplex, netInfo.LinkDetected)
}
