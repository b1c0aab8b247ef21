package metrics

import (
	"context"
	"errors"
	"testing"
)

const sampleMeminfo = `MemTotal:       16384000 kB
MemFree:         2048000 kB
MemAvailable:    8192000 kB
Buffers:          512000 kB
`

const samplePS = `USER         PID %CPU %MEM    VSZ   RSS TTY      STAT START   TIME COMMAND
root           1  0.1  0.5 168940 11234 ?        Ss   Jan01   1:23 /sbin/init splash
alice        231 12.5  3.2 987654 65432 pts/0    Sl+  10:00  12:34 firefox --new-window
`

const sampleDF = `Filesystem     1K-blocks     Used Available Use% Mounted on
/dev/sda1      102400000 51200000  46080000  53% /
`

func stubProvider(files map[string][]byte, cmdOut []byte) *ProcfsProvider {
	return &ProcfsProvider{
		readFile: func(name string) ([]byte, error) {
			if data, ok := files[name]; ok {
				return data, nil
			}
			return nil, errors.New("no such file")
		},
		run: func(context.Context, string, ...string) ([]byte, error) {
			if cmdOut == nil {
				return nil, errors.New("spawn failed")
			}
			return cmdOut, nil
		},
	}
}

func TestProcfsMemory(t *testing.T) {
	p := stubProvider(map[string][]byte{"/proc/meminfo": []byte(sampleMeminfo)}, nil)

	stats, err := p.Memory(context.Background())
	if err != nil {
		t.Fatalf("Memory() error = %v", err)
	}
	wantTotal := uint64(16384000) * 1024
	if stats.Total != wantTotal {
		t.Errorf("Total = %d, want %d", stats.Total, wantTotal)
	}
	wantUsed := wantTotal - uint64(8192000)*1024
	if stats.Used != wantUsed {
		t.Errorf("Used = %d, want %d", stats.Used, wantUsed)
	}
	if stats.UsedPercent <= 0 || stats.UsedPercent >= 100 {
		t.Errorf("UsedPercent = %f out of range", stats.UsedPercent)
	}
}

func TestProcfsMemoryMissingPseudoFile(t *testing.T) {
	p := stubProvider(nil, nil)
	if _, err := p.Memory(context.Background()); err == nil {
		t.Fatal("expected error when /proc/meminfo is unreadable")
	}
}

func TestProcfsProcesses(t *testing.T) {
	p := stubProvider(nil, []byte(samplePS))

	procs, err := p.Processes(context.Background())
	if err != nil {
		t.Fatalf("Processes() error = %v", err)
	}
	if len(procs) != 2 {
		t.Fatalf("got %d processes, want 2", len(procs))
	}
	first := procs[0]
	if first.PID != 1 || first.User != "root" {
		t.Errorf("first row = %+v", first)
	}
	if first.Command != "/sbin/init splash" {
		t.Errorf("command with spaces not rejoined: %q", first.Command)
	}
	second := procs[1]
	if second.CPUPercent != 12.5 {
		t.Errorf("CPUPercent = %f, want 12.5", second.CPUPercent)
	}
}

func TestProcfsProcessesSpawnFailure(t *testing.T) {
	p := stubProvider(nil, nil)
	if _, err := p.Processes(context.Background()); err == nil {
		t.Fatal("expected error when ps cannot be spawned")
	}
}

func TestProcfsDisk(t *testing.T) {
	p := stubProvider(nil, []byte(sampleDF))

	stats, err := p.Disk(context.Background(), "/")
	if err != nil {
		t.Fatalf("Disk() error = %v", err)
	}
	if stats.Total != uint64(102400000)*1024 {
		t.Errorf("Total = %d", stats.Total)
	}
	if stats.Used != uint64(51200000)*1024 {
		t.Errorf("Used = %d", stats.Used)
	}
}

func TestProcfsCPUParsesStatLine(t *testing.T) {
	// two samples with a growing idle counter
	samples := [][]byte{
		[]byte("cpu  100 0 100 800 0 0 0 0 0 0\n"),
		[]byte("cpu  150 0 150 1700 0 0 0 0 0 0\n"),
	}
	i := 0
	p := &ProcfsProvider{
		readFile: func(string) ([]byte, error) {
			data := samples[i]
			if i < len(samples)-1 {
				i++
			}
			return data, nil
		},
	}

	stats, err := p.CPU(context.Background())
	if err != nil {
		t.Fatalf("CPU() error = %v", err)
	}
	// deltas: total 1000, idle 900 -> 10% used
	if stats.UsedPercent < 9.9 || stats.UsedPercent > 10.1 {
		t.Errorf("UsedPercent = %f, want ~10", stats.UsedPercent)
	}
}
