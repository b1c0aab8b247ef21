package metrics

import (
	"context"
	"os"
	"time"

	"github.com/doeshing/goterm/internal/ports"
)

// Select picks a provider at startup. "gopsutil" and "procfs" force their
// adapter; "auto" (or anything else) probes the library once and falls back
// to the pseudo-file provider when the probe fails.
func Select(name string, log ports.Logger) ports.MetricsProvider {
	switch name {
	case "gopsutil":
		return NewGopsutilProvider()
	case "procfs":
		return NewProcfsProvider()
	}

	primary := NewGopsutilProvider()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := primary.Memory(ctx); err != nil {
		log.Warn("metrics library probe failed, using procfs fallback", map[string]interface{}{"error": err.Error()})
		return NewProcfsProvider()
	}
	return primary
}

func readOSFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}
