package utils

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	log "github.com/sirupsen/logrus"
)

var processStart = time.Now()

type SystemStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	Uptime        string  `json:"uptime"`
}

// GetCPUUsage returns CPU usage since the previous call without blocking.
func GetCPUUsage() float64 {
	percentage, err := cpu.Percent(0, false)
	if err != nil {
		log.WithError(err).Warn("error getting CPU usage")
		return 0
	}
	if len(percentage) > 0 {
		return percentage[0]
	}
	return 0
}

func GetMemoryUsage() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.WithError(err).Warn("error getting memory usage")
		return 0
	}
	return vm.UsedPercent
}

func GetSystemStats() SystemStats {
	return SystemStats{
		CPUPercent:    GetCPUUsage(),
		MemoryPercent: GetMemoryUsage(),
		Uptime:        time.Since(processStart).Truncate(time.Second).String(),
	}
}
