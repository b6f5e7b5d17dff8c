package app

import (
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// Reloader watches the running binary and reports when a newer build
// lands on disk, so a development session can restart into it without
// losing the open design.
type Reloader struct {
	execPath string
	baseline time.Time
	interval time.Duration
	stopCh   chan struct{}
	onUpdate func()
}

// NewReloader creates a reloader for the current executable. Returns
// nil if the executable path cannot be determined.
func NewReloader(interval time.Duration) *Reloader {
	execPath, err := os.Executable()
	if err != nil {
		return nil
	}
	// go build replaces the file behind the symlink
	if realPath, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = realPath
	}
	info, err := os.Stat(execPath)
	if err != nil {
		return nil
	}
	return &Reloader{
		execPath: execPath,
		baseline: info.ModTime(),
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// OnUpdate sets the callback invoked from a background goroutine when
// a newer binary is detected.
func (r *Reloader) OnUpdate(fn func()) {
	r.onUpdate = fn
}

// Start begins polling for binary changes.
func (r *Reloader) Start() {
	r.stopCh = make(chan struct{})
	go r.loop()
}

// Stop ends the polling goroutine.
func (r *Reloader) Stop() {
	close(r.stopCh)
}

// ResetBaseline accepts the current binary as known, suppressing
// further notifications until the next rebuild.
func (r *Reloader) ResetBaseline() {
	if info, err := os.Stat(r.execPath); err == nil {
		r.baseline = info.ModTime()
	}
}

// ExecPath returns the watched executable path.
func (r *Reloader) ExecPath() string {
	return r.execPath
}

// Restart replaces the current process with a new instance of the
// binary, preserving arguments and environment. Does not return on
// success.
func (r *Reloader) Restart() error {
	return syscall.Exec(r.execPath, os.Args, os.Environ())
}

func (r *Reloader) loop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			info, err := os.Stat(r.execPath)
			if err != nil {
				continue
			}
			if info.ModTime().After(r.baseline) && r.onUpdate != nil {
				r.onUpdate()
				// Notify once per rebuild
				return
			}
		}
	}
}
