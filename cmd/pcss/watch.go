package main

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// watch recompiles whenever a source or one of its dependencies changes,
// until ctx is done. It returns the exit status of the last build, starting
// from status.
func (a *app) watch(ctx context.Context, status int) int {
	ticker := time.NewTicker(a.cfg.watch)
	defer ticker.Stop()
	a.log.Info("watching", zap.Strings("files", a.cfg.files), zap.Duration("interval", a.cfg.watch))
	last := a.fingerprint()
	for {
		select {
		case <-ctx.Done():
			return status
		case <-ticker.C:
		}
		current := a.fingerprint()
		if current == last {
			continue
		}
		last = current
		a.log.Info("change detected, recompiling")
		status = 0
		if err := a.build(); err != nil {
			a.report(err)
			status = 1
		}
		last = a.fingerprint()
	}
}

// fingerprint summarizes the modification times of the sources and of
// the dependencies recorded by their last successful compile.
func (a *app) fingerprint() string {
	var b []byte
	for _, file := range a.cfg.files {
		paths := []string{file}
		if e, ok := a.g.Peek(file); ok {
			paths = append(paths, e.Dependencies...)
		}
		for _, p := range paths {
			info, err := a.c.Loader().Stat(p)
			if err != nil {
				b = append(b, p+":missing;"...)
				continue
			}
			b = append(b, p+":"+info.ModTime().Format(time.RFC3339Nano)+";"...)
		}
	}
	return string(b)
}
