package env

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sebastien/pythoniccss/internal/errors"
)

func GetInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		panic(errors.Tag(err, "malformed "+key))
	}
	return int(parsed)
}

func GetString(key, fallback string) string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	return raw
}

func GetBool(key string) bool {
	return strings.ToLower(GetString(key, "false")) == "true"
}

// GetList splits the value of key on the OS path list separator, dropping
// empty entries.
func GetList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, s := range filepath.SplitList(raw) {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		panic(errors.Tag(err, "malformed "+key))
	}
	return d
}
