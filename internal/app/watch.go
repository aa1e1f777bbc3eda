package app

import (
	"context"
	"time"

	"github.com/five82/mcmap/internal/document"
	"github.com/five82/mcmap/internal/session"
)

const (
	defaultWatchInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
)

// calculateBackoff doubles interval per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	backoff := interval
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}

// Watch re-reads the package at a fixed cadence and prints the integrity
// report whenever it changes. It blocks until ctx is cancelled. Read
// failures back off exponentially.
func (a *App) Watch(ctx context.Context, path string, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	logger := a.logger.WithField("action", "watch").WithField("package", path)

	var (
		failures int
		last     string
		seen     bool
	)
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		report, err := a.checkReport(ctx, path)
		switch {
		case ctx.Err() != nil:
			return nil
		case err != nil:
			failures++
			logger.WithError(err).Warnf("refresh failed (%d consecutive)", failures)
		default:
			failures = 0
			if !seen || report != last {
				a.println(report)
				last, seen = report, true
			}
		}
		timer.Reset(calculateBackoff(failures, interval))
	}
}

func (a *App) checkReport(ctx context.Context, path string) (string, error) {
	s, err := session.Open(ctx, path, a.fs, a.logger)
	if err != nil {
		return "", err
	}
	return a.renderReport(s.Snapshot().File), nil
}

func (a *App) renderReport(f document.File) string {
	return a.renderer.Summary(f) + "\n" + a.renderer.Problems(f.Check())
}
