package probe

import (
	"os"
	"runtime"

	"github.com/prometheus/procfs"
	"github.com/shirou/gopsutil/v3/process"
)

// Source reports the resident memory of the current process from one
// platform facility.
type Source interface {
	Name() string
	Resident() (uint64, error)
}

// ProcStatus reads VmRSS from /proc/self/status. It is the most precise
// source and only exists on Linux-like hosts.
type ProcStatus struct {
	fs procfs.FS
}

// NewProcStatus opens the proc filesystem at its default mount point.
func NewProcStatus() (*ProcStatus, error) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return nil, err
	}
	return &ProcStatus{fs: fs}, nil
}

func (s *ProcStatus) Name() string { return "procfs" }

func (s *ProcStatus) Resident() (uint64, error) {
	p, err := s.fs.Self()
	if err != nil {
		return 0, err
	}
	st, err := p.NewStatus()
	if err != nil {
		return 0, err
	}
	// procfs already converts the kB figure to bytes.
	return st.VmRSS, nil
}

// Process reads the resident set size through gopsutil, which covers hosts
// without a proc filesystem.
type Process struct {
	proc *process.Process
}

// NewProcess binds to the current process.
func NewProcess() (*Process, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &Process{proc: p}, nil
}

func (s *Process) Name() string { return "gopsutil" }

func (s *Process) Resident() (uint64, error) {
	info, err := s.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}

// Runtime reports heap bytes allocated by the Go runtime. It cannot fail and
// backs every other source.
type Runtime struct{}

func (Runtime) Name() string { return "runtime" }

func (Runtime) Resident() (uint64, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapAlloc, nil
}

// Detect returns the available sources in precision order. A source is
// included only if it opens and answers one read. The runtime source is not
// part of the list; Probe falls back to it on its own.
func Detect() []Source {
	var out []Source
	if s, err := NewProcStatus(); err == nil {
		if _, err := s.Resident(); err == nil {
			out = append(out, s)
		}
	}
	if s, err := NewProcess(); err == nil {
		if _, err := s.Resident(); err == nil {
			out = append(out, s)
		}
	}
	return out
}
