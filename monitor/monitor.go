package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemStatus is the dashboard payload served by /api/status.
type SystemStatus struct {
	Hostname       string  `json:"hostname"`
	Platform       string  `json:"platform"`
	Uptime         uint64  `json:"uptime_seconds"`
	UptimeString   string  `json:"uptime_string"`
	CPUPercent     float64 `json:"cpu_percent"`
	MemUsedPercent float64 `json:"mem_used_percent"`
	MemUsed        uint64  `json:"mem_used"`
	MemTotal       uint64  `json:"mem_total"`
	Procs          uint64  `json:"procs"`
}

// CheckSystem gathers a point-in-time snapshot of the host.
func CheckSystem() (SystemStatus, error) {
	status := SystemStatus{}

	info, err := host.Info()
	if err != nil {
		return status, err
	}
	status.Hostname = info.Hostname
	status.Platform = strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	status.Uptime = info.Uptime
	status.UptimeString = formatUptime(info.Uptime)
	status.Procs = info.Procs

	// Percentage since the previous call; the first call measures since boot.
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status.CPUPercent = percents[0]
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return status, err
	}
	status.MemUsed = vm.Used
	status.MemTotal = vm.Total
	status.MemUsedPercent = vm.UsedPercent

	return status, nil
}

func formatUptime(seconds uint64) string {
	d := time.Duration(seconds) * time.Second
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	parts := []string{}
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	parts = append(parts, fmt.Sprintf("%dm", minutes))
	return strings.Join(parts, " ")
}
