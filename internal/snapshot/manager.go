// Package snapshot owns the in-memory course catalogue: it loads the
// sessions JSON file, hot-swaps it atomically so readers never block, and
// optionally polls the file for changes in the background.
//
// The search and resolution layers only ever see an immutable []Session
// slice; a reload builds a complete new snapshot and swaps the pointer.
package snapshot

import (
	"context"
	"encoding/json"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rowanlock/coursefinder-go/internal/catalogue"
	apperrors "github.com/rowanlock/coursefinder-go/internal/errors"
	"github.com/rowanlock/coursefinder-go/internal/logger"
	"github.com/rowanlock/coursefinder-go/internal/metrics"
)

// Snapshot is one immutable load of the catalogue file. Sessions must not
// be mutated after the snapshot is published.
type Snapshot struct {
	Sessions []catalogue.Session
	LoadedAt time.Time
	ModTime  time.Time
}

// Manager loads catalogue snapshots and serves the current one.
type Manager struct {
	path    string
	log     *logger.Logger
	metrics *metrics.Metrics
	wrap    *apperrors.ErrorWrapper

	current atomic.Pointer[Snapshot]
	group   singleflight.Group

	pollCancel context.CancelFunc
	pollDone   chan struct{}
}

// New creates a snapshot manager for the sessions file at path.
// Metrics may be nil in tests.
func New(path string, log *logger.Logger, m *metrics.Metrics) *Manager {
	return &Manager{
		path:    path,
		log:     log.WithModule("snapshot"),
		metrics: m,
		wrap:    apperrors.NewWrapper("snapshot", "load"),
	}
}

// Current returns the currently loaded snapshot, or ErrSnapshotNotLoaded
// before the first successful Load.
func (m *Manager) Current() (*Snapshot, error) {
	s := m.current.Load()
	if s == nil {
		return nil, apperrors.ErrSnapshotNotLoaded
	}
	return s, nil
}

// Sessions returns the sessions of the current snapshot.
func (m *Manager) Sessions() ([]catalogue.Session, error) {
	s, err := m.Current()
	if err != nil {
		return nil, err
	}
	return s.Sessions, nil
}

// Load reads and publishes the snapshot file unconditionally. Both Load
// and Reload share one singleflight key and return whether the flight
// published a snapshot, so either caller may join the other's flight.
func (m *Manager) Load(ctx context.Context) error {
	_, err, _ := m.group.Do("load", func() (any, error) {
		err := m.load(ctx)
		return err == nil, err
	})
	return err
}

// Reload re-reads the snapshot file if it changed since the last load.
// Concurrent calls are collapsed into one read. Returns true when a new
// snapshot was published.
func (m *Manager) Reload(ctx context.Context) (bool, error) {
	swapped, err, _ := m.group.Do("load", func() (any, error) {
		current := m.current.Load()
		if current != nil {
			info, err := os.Stat(m.path)
			if err != nil {
				m.recordReload("error")
				return false, m.wrap.Wrap(apperrors.NewSnapshotError(m.path, err), "catalogue snapshot file is unavailable")
			}
			if info.ModTime().Equal(current.ModTime) {
				m.recordReload("unchanged")
				return false, nil
			}
		}
		if err := m.load(ctx); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return swapped.(bool), nil
}

// load reads, decodes, and publishes the file. Rows without a name are
// dropped rather than failing the whole load; the upstream feed sometimes
// emits blank trailing rows.
func (m *Manager) load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(m.path)
	if err != nil {
		m.recordReload("error")
		return m.wrap.Wrap(apperrors.NewSnapshotError(m.path, err), "catalogue snapshot file is unavailable")
	}

	raw, err := os.ReadFile(m.path)
	if err != nil {
		m.recordReload("error")
		return m.wrap.Wrap(apperrors.NewSnapshotError(m.path, err), "catalogue snapshot file could not be read")
	}

	var rows []catalogue.Session
	if err := json.Unmarshal(raw, &rows); err != nil {
		m.recordReload("error")
		return m.wrap.Wrap(apperrors.NewSnapshotError(m.path, err), "catalogue snapshot file is not valid JSON")
	}

	sessions := make([]catalogue.Session, 0, len(rows))
	dropped := 0
	for _, r := range rows {
		if r.Name == "" {
			dropped++
			continue
		}
		sessions = append(sessions, r)
	}

	snap := &Snapshot{
		Sessions: sessions,
		LoadedAt: time.Now(),
		ModTime:  info.ModTime(),
	}
	m.current.Store(snap)

	m.recordReload("success")
	if m.metrics != nil {
		m.metrics.SetSnapshotStats(len(sessions), float64(snap.LoadedAt.Unix()))
	}

	entry := m.log.WithField("path", m.path).WithField("sessions", len(sessions))
	if dropped > 0 {
		entry = entry.WithField("dropped_rows", dropped)
	}
	entry.Info("Catalogue snapshot loaded")

	return nil
}

// StartPolling starts a background goroutine that reloads the snapshot
// whenever the file's modification time changes.
func (m *Manager) StartPolling(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		m.log.Info("Snapshot polling disabled")
		return
	}

	pollCtx, cancel := context.WithCancel(ctx)
	m.pollCancel = cancel
	m.pollDone = make(chan struct{})

	go func() {
		defer close(m.pollDone)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-pollCtx.Done():
				m.log.Info("Snapshot polling stopped")
				return
			case <-ticker.C:
				swapped, err := m.Reload(pollCtx)
				if err != nil {
					m.log.WithError(err).Warn("Snapshot poll failed")
					continue
				}
				if swapped {
					m.log.Info("Snapshot hot-swap completed")
				}
			}
		}
	}()

	m.log.WithField("interval", interval).WithField("path", m.path).
		Info("Snapshot polling started")
}

// StopPolling stops the background polling goroutine and waits for it.
func (m *Manager) StopPolling() {
	if m.pollCancel != nil {
		m.pollCancel()
		<-m.pollDone
	}
}

func (m *Manager) recordReload(status string) {
	if m.metrics != nil {
		m.metrics.RecordSnapshotReload(status)
	}
}
