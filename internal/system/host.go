package system

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostInfo is a snapshot of the machine the frames are rendered on.
type HostInfo struct {
	LogicalCPUs  int
	PhysicalCPUs int
	TotalMemory  uint64
	UsedPercent  float64
}

// Host collects CPU and memory figures. Missing figures are left zero.
func Host() HostInfo {
	var h HostInfo
	if n, err := cpu.Counts(true); err == nil {
		h.LogicalCPUs = n
	}
	if n, err := cpu.Counts(false); err == nil {
		h.PhysicalCPUs = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		h.TotalMemory = vm.Total
		h.UsedPercent = vm.UsedPercent
	}
	return h
}

// DefaultWorkers returns the number of render workers to use when the
// caller did not ask for a specific count.
func DefaultWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

func (h HostInfo) String() string {
	return fmt.Sprintf("CPU: %d logical / %d physical | RAM: %.1f GiB (%.0f%% used)",
		h.LogicalCPUs, h.PhysicalCPUs, float64(h.TotalMemory)/(1<<30), h.UsedPercent)
}
