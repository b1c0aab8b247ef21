package domain

// CPUStats reports total CPU utilization.
type CPUStats struct {
	UsedPercent float64
}

// MemoryStats reports physical memory usage in bytes.
type MemoryStats struct {
	Total       uint64
	Used        uint64
	UsedPercent float64
}

// DiskStats reports usage of the filesystem holding a given path, in bytes.
type DiskStats struct {
	Total uint64
	Used  uint64
	Free  uint64
}

// ProcessInfo is one row of the process table.
type ProcessInfo struct {
	PID        int32
	User       string
	CPUPercent float64
	MemPercent float32
	Command    string
}
