package netmon

import (
	"context"
	"time"

	"github.com/salesfield/fieldsync/internal/logging"
)

// Pinger probes backend reachability; satisfied by the api client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Watcher periodically probes the backend and feeds the result into the
// Monitor. In this headless client the probe is the platform online/offline
// signal; embedders with a real platform signal can skip the watcher and
// call Monitor.SetOnline directly.
type Watcher struct {
	pinger   Pinger
	monitor  *Monitor
	interval time.Duration
	timeout  time.Duration
	log      logging.Logger
}

func NewWatcher(pinger Pinger, monitor *Monitor, interval time.Duration, log logging.Logger) *Watcher {
	return &Watcher{
		pinger:   pinger,
		monitor:  monitor,
		interval: interval,
		timeout:  3 * time.Second,
		log:      log,
	}
}

// Run blocks until ctx is cancelled, probing once per interval. An initial
// probe runs immediately so the monitor starts from a real observation.
func (w *Watcher) Run(ctx context.Context) {
	w.probe(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	err := w.pinger.Ping(pingCtx)
	online := err == nil

	if online != w.monitor.IsOnline() {
		if online {
			w.log.Info(ctx, "connectivity restored")
		} else {
			w.log.Warn(ctx, "connectivity lost", "error", err)
		}
	}
	w.monitor.SetOnline(online)
}
