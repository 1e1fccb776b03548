// Package sysinfo takes a read-only snapshot of the host a measurement runs
// on, so that results can be reported alongside the machine that produced
// them.
package sysinfo

import (
	"context"
	"runtime"
	"time"

	"github.com/pbnjay/memory"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
)

// MemoryReader is the part of a memory probe the snapshot reads.
type MemoryReader interface {
	CurrentMemory() uint64
	PeakMemory() uint64
}

// Info describes the host and process. Fields the host does not expose are
// left at their zero value.
type Info struct {
	GoVersion string
	OS        string
	Arch      string
	Hostname  string
	Platform  string
	Kernel    string

	LogicalCPUs  int
	PhysicalCPUs int
	// LoadAverage holds the 1, 5 and 15 minute load, nil where unsupported.
	LoadAverage []float64

	TotalMemory   uint64
	FreeMemory    uint64
	CurrentMemory uint64
	PeakMemory    uint64

	Timestamp time.Time
	Timezone  string
}

// Collect gathers the snapshot. It never fails; unavailable facts are
// simply missing.
func Collect(ctx context.Context, mem MemoryReader) Info {
	now := time.Now()
	zone, _ := now.Zone()

	info := Info{
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		LogicalCPUs: runtime.NumCPU(),
		TotalMemory: memory.TotalMemory(),
		FreeMemory:  memory.FreeMemory(),
		Timestamp:   now,
		Timezone:    zone,
	}
	if mem != nil {
		info.CurrentMemory = mem.CurrentMemory()
		info.PeakMemory = mem.PeakMemory()
	}

	if h, err := host.InfoWithContext(ctx); err == nil {
		info.Hostname = h.Hostname
		info.Platform = h.Platform
		info.Kernel = h.KernelVersion
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil && n > 0 {
		info.LogicalCPUs = n
	}
	if n, err := cpu.CountsWithContext(ctx, false); err == nil {
		info.PhysicalCPUs = n
	}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		info.LoadAverage = []float64{avg.Load1, avg.Load5, avg.Load15}
	}
	return info
}
