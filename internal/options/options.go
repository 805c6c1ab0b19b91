// Package options reads the compiler defaults from the environment.
package options

import (
	"runtime"
	"time"

	"github.com/sebastien/pythoniccss/internal/cache"
	"github.com/sebastien/pythoniccss/internal/model"
	"github.com/sebastien/pythoniccss/internal/options/env"
)

// Environment variables.
const (
	SearchPathKey  = "PCSS_PATH"
	MaxDepthKey    = "PCSS_MAX_DEPTH"
	CacheSizeKey   = "PCSS_CACHE_SIZE"
	ConcurrencyKey = "PCSS_CONCURRENCY"
	VerboseKey     = "PCSS_VERBOSE"
	WatchKey       = "PCSS_WATCH"
)

type Options struct {
	SearchPaths []string
	MaxDepth    int
	CacheSize   int
	Concurrency int

	Verbose bool

	// Watch is the polling period of watch mode, zero when off.
	Watch time.Duration
}

// FromEnv returns the options set in the environment, with defaults for
// the rest. A malformed number panics.
func FromEnv() Options {
	return Options{
		SearchPaths: env.GetList(SearchPathKey, nil),
		MaxDepth:    env.GetInt(MaxDepthKey, model.DefaultMaxDepth),
		CacheSize:   env.GetInt(CacheSizeKey, cache.DefaultSize),
		Concurrency: env.GetInt(ConcurrencyKey, runtime.NumCPU()),
		Verbose:     env.GetBool(VerboseKey),
		Watch:       env.GetDuration(WatchKey, 0),
	}
}
