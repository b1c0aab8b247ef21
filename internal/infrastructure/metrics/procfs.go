package metrics

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/doeshing/goterm/internal/domain"
	"github.com/doeshing/goterm/internal/ports"
)

// ProcfsProvider parses operating-system pseudo-files (/proc/stat,
// /proc/meminfo) and shells out to ps(1) for the process table. It is the
// degraded path used when the metrics library is unusable on the host.
type ProcfsProvider struct {
	// readFile is swappable for tests.
	readFile func(name string) ([]byte, error)
	run      func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewProcfsProvider builds the pseudo-file-backed provider.
func NewProcfsProvider() *ProcfsProvider {
	return &ProcfsProvider{
		readFile: readOSFile,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// Name implements ports.MetricsProvider.
func (p *ProcfsProvider) Name() string { return "procfs" }

// CPU derives utilization from two /proc/stat samples taken 500ms apart.
func (p *ProcfsProvider) CPU(ctx context.Context) (domain.CPUStats, error) {
	first, err := p.cpuTimes()
	if err != nil {
		return domain.CPUStats{}, err
	}
	select {
	case <-ctx.Done():
		return domain.CPUStats{}, ctx.Err()
	case <-time.After(500 * time.Millisecond):
	}
	second, err := p.cpuTimes()
	if err != nil {
		return domain.CPUStats{}, err
	}

	totalDelta := second.total - first.total
	idleDelta := second.idle - first.idle
	if totalDelta <= 0 {
		return domain.CPUStats{}, nil
	}
	used := 100 * float64(totalDelta-idleDelta) / float64(totalDelta)
	return domain.CPUStats{UsedPercent: used}, nil
}

type cpuTimes struct {
	total uint64
	idle  uint64
}

func (p *ProcfsProvider) cpuTimes() (cpuTimes, error) {
	data, err := p.readFile("/proc/stat")
	if err != nil {
		return cpuTimes{}, err
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 || fields[0] != "cpu" {
			continue
		}
		var times cpuTimes
		for i, field := range fields[1:] {
			v, err := strconv.ParseUint(field, 10, 64)
			if err != nil {
				return cpuTimes{}, err
			}
			times.total += v
			// field 4 is idle, field 5 iowait
			if i == 3 || i == 4 {
				times.idle += v
			}
		}
		return times, nil
	}
	return cpuTimes{}, errors.New("no cpu line in /proc/stat")
}

// Memory parses MemTotal and MemAvailable out of /proc/meminfo.
func (p *ProcfsProvider) Memory(ctx context.Context) (domain.MemoryStats, error) {
	data, err := p.readFile("/proc/meminfo")
	if err != nil {
		return domain.MemoryStats{}, err
	}
	var total, available uint64
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		switch fields[0] {
		case "MemTotal:":
			total = v * 1024
		case "MemAvailable:":
			available = v * 1024
		}
	}
	if total == 0 {
		return domain.MemoryStats{}, errors.New("MemTotal not found in /proc/meminfo")
	}
	used := total - available
	return domain.MemoryStats{
		Total:       total,
		Used:        used,
		UsedPercent: 100 * float64(used) / float64(total),
	}, nil
}

// Disk shells out to `df -k` and parses the usage row.
func (p *ProcfsProvider) Disk(ctx context.Context, path string) (domain.DiskStats, error) {
	out, err := p.run(ctx, "df", "-k", path)
	if err != nil {
		return domain.DiskStats{}, err
	}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	if !scanner.Scan() {
		return domain.DiskStats{}, errors.New("empty df output")
	}
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		total, err1 := strconv.ParseUint(fields[1], 10, 64)
		used, err2 := strconv.ParseUint(fields[2], 10, 64)
		free, err3 := strconv.ParseUint(fields[3], 10, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		return domain.DiskStats{
			Total: total * 1024,
			Used:  used * 1024,
			Free:  free * 1024,
		}, nil
	}
	return domain.DiskStats{}, errors.New("no usage row in df output")
}

// Processes shells out to `ps aux` and parses its table loosely.
func (p *ProcfsProvider) Processes(ctx context.Context) ([]domain.ProcessInfo, error) {
	out, err := p.run(ctx, "ps", "aux")
	if err != nil {
		return nil, err
	}
	return parsePSOutput(out), nil
}

func parsePSOutput(out []byte) []domain.ProcessInfo {
	var infos []domain.ProcessInfo
	scanner := bufio.NewScanner(bytes.NewReader(out))
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false // header row
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 11 {
			continue
		}
		pid, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			continue
		}
		cpuPct, _ := strconv.ParseFloat(fields[2], 64)
		memPct, _ := strconv.ParseFloat(fields[3], 32)
		infos = append(infos, domain.ProcessInfo{
			PID:        int32(pid),
			User:       fields[0],
			CPUPercent: cpuPct,
			MemPercent: float32(memPct),
			Command:    strings.Join(fields[10:], " "),
		})
	}
	return infos
}

var _ ports.MetricsProvider = (*ProcfsProvider)(nil)
