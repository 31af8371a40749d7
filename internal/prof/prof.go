// Package prof wraps runtime/pprof and runtime/trace behind
// start/stop pairs keyed to output paths.
package prof

import (
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// session holds the file backing an active profile or trace.
type session struct {
	file *os.File
}

func (s *session) start(path string, begin func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := begin(f); err != nil {
		_ = f.Close()
		return err
	}
	s.file = f
	return nil
}

func (s *session) stop(end func()) {
	end()
	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
}

var (
	cpu     session
	tracing session
)

// StartCPU enables CPU profiling and writes samples to the provided path.
func StartCPU(path string) error {
	return cpu.start(path, pprof.StartCPUProfile)
}

// StopCPU stops an active CPU profile and closes the underlying file.
func StopCPU() {
	cpu.stop(pprof.StopCPUProfile)
}

// StartTrace writes runtime trace data to the provided path.
func StartTrace(path string) error {
	return tracing.start(path, trace.Start)
}

// StopTrace ends an active runtime trace and closes the file.
func StopTrace() {
	tracing.stop(trace.Stop)
}

// WriteMem captures a heap profile to the supplied file path. A GC runs
// first so the profile reflects live objects, not garbage.
func WriteMem(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
