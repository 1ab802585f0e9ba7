// Package prof collects optional CPU, heap and runtime-trace profiles around
// a decompiler run.
package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("spvdecomp.prof")

// Paths names the profile outputs; empty fields are skipped.
type Paths struct {
	CPU   string
	Heap  string
	Trace string
}

// Empty reports whether no profile was requested.
func (p Paths) Empty() bool {
	return p.CPU == "" && p.Heap == "" && p.Trace == ""
}

// Session is a set of running profilers. Stop may be called more than once.
type Session struct {
	paths   Paths
	cpu     *os.File
	rt      *os.File
	stopped bool
}

// Start enables the profilers named by p. On error nothing is left running.
func Start(p Paths) (*Session, error) {
	s := &Session{paths: p}
	if p.CPU != "" {
		f, err := os.Create(p.CPU)
		if err != nil {
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		s.cpu = f
	}
	if p.Trace != "" {
		f, err := os.Create(p.Trace)
		if err != nil {
			s.Stop()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.Stop()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		s.rt = f
	}
	return s, nil
}

// Stop ends the running profilers and writes the heap profile.
func (s *Session) Stop() error {
	if s == nil || s.stopped {
		return nil
	}
	s.stopped = true

	var errs []error
	if s.rt != nil {
		trace.Stop()
		errs = append(errs, s.rt.Close())
		s.rt = nil
	}
	if s.cpu != nil {
		pprof.StopCPUProfile()
		errs = append(errs, s.cpu.Close())
		s.cpu = nil
	}
	if s.paths.Heap != "" {
		errs = append(errs, writeHeap(s.paths.Heap))
	}
	err := errors.Join(errs...)
	if err != nil {
		log.Errorf("profiling: %v", err)
	}
	return err
}

func writeHeap(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("heap profile: %w", cerr)
		}
	}()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	return nil
}
