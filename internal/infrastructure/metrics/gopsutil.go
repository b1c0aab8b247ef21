// Package metrics provides the system metrics adapters behind the sysinfo,
// ps and top builtins: a gopsutil-backed provider and a /proc fallback.
package metrics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/doeshing/goterm/internal/domain"
	"github.com/doeshing/goterm/internal/ports"
)

// cpuSampleInterval is how long cpu.Percent blocks to measure utilization.
const cpuSampleInterval = 500 * time.Millisecond

// GopsutilProvider reads metrics through the gopsutil library.
type GopsutilProvider struct{}

// NewGopsutilProvider builds the library-backed provider.
func NewGopsutilProvider() *GopsutilProvider {
	return &GopsutilProvider{}
}

// Name implements ports.MetricsProvider.
func (p *GopsutilProvider) Name() string { return "gopsutil" }

// CPU returns total CPU utilization measured over a short interval.
func (p *GopsutilProvider) CPU(ctx context.Context) (domain.CPUStats, error) {
	percents, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false)
	if err != nil {
		return domain.CPUStats{}, err
	}
	if len(percents) == 0 {
		return domain.CPUStats{}, errors.New("no cpu sample")
	}
	return domain.CPUStats{UsedPercent: percents[0]}, nil
}

// Memory returns physical memory usage.
func (p *GopsutilProvider) Memory(ctx context.Context) (domain.MemoryStats, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return domain.MemoryStats{}, err
	}
	return domain.MemoryStats{
		Total:       vm.Total,
		Used:        vm.Used,
		UsedPercent: vm.UsedPercent,
	}, nil
}

// Disk returns usage of the filesystem holding path.
func (p *GopsutilProvider) Disk(ctx context.Context, path string) (domain.DiskStats, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return domain.DiskStats{}, err
	}
	return domain.DiskStats{
		Total: usage.Total,
		Used:  usage.Used,
		Free:  usage.Free,
	}, nil
}

// Processes returns the live process table. Processes that disappear while
// being inspected are skipped.
func (p *GopsutilProvider) Processes(ctx context.Context) ([]domain.ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]domain.ProcessInfo, 0, len(procs))
	for _, proc := range procs {
		info := domain.ProcessInfo{PID: proc.Pid}
		if user, err := proc.UsernameWithContext(ctx); err == nil {
			info.User = user
		}
		if pct, err := proc.CPUPercentWithContext(ctx); err == nil {
			info.CPUPercent = pct
		}
		if pct, err := proc.MemoryPercentWithContext(ctx); err == nil {
			info.MemPercent = pct
		}
		if cmdline, err := proc.CmdlineWithContext(ctx); err == nil && strings.TrimSpace(cmdline) != "" {
			info.Command = cmdline
		} else if name, err := proc.NameWithContext(ctx); err == nil {
			info.Command = name
		} else {
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

var _ ports.MetricsProvider = (*GopsutilProvider)(nil)
