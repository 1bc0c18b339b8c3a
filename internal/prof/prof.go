// Package prof starts and stops the runtime profilers behind the CLI's
// --cpuprofile, --memprofile and --trace flags.
package prof

import (
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"gitlab.com/tozd/go/errors"
)

// Session owns the files of the profilers it started.
type Session struct {
	cpu     *os.File
	trace   *os.File
	memPath string
}

// Options names the output file of each profiler; empty paths are skipped.
type Options struct {
	CPU   string
	Mem   string
	Trace string
}

// Start enables the requested profilers. On error nothing is left running.
func Start(opts Options) (*Session, error) {
	s := &Session{memPath: opts.Mem}
	if opts.CPU != "" {
		f, err := os.Create(opts.CPU)
		if err != nil {
			return nil, errors.Errorf("cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, errors.Errorf("cpu profile: %w", err)
		}
		s.cpu = f
	}
	if opts.Trace != "" {
		f, err := os.Create(opts.Trace)
		if err != nil {
			s.stopCPU()
			return nil, errors.Errorf("trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.stopCPU()
			return nil, errors.Errorf("trace: %w", err)
		}
		s.trace = f
	}
	return s, nil
}

// Active reports whether any profiler was requested.
func (s *Session) Active() bool {
	return s != nil && (s.cpu != nil || s.trace != nil || s.memPath != "")
}

// Stop ends the running profilers and writes the heap profile, if requested.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	s.stopCPU()
	if s.trace != nil {
		trace.Stop()
		_ = s.trace.Close()
		s.trace = nil
	}
	if s.memPath == "" {
		return nil
	}
	path := s.memPath
	s.memPath = ""
	return writeMem(path)
}

func (s *Session) stopCPU() {
	if s.cpu == nil {
		return
	}
	pprof.StopCPUProfile()
	_ = s.cpu.Close()
	s.cpu = nil
}

func writeMem(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Errorf("heap profile: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.Errorf("heap profile: %w", closeErr)
		}
	}()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return errors.Errorf("heap profile: %w", err)
	}
	return nil
}
