package engine

import (
	"os"
	"time"

	"github.com/gocar-build/gocar/internal/paths"
)

// StaleUnits returns the sources in closure needing recompilation
// against an artifact with mtime target (artifactExists false means
// the artifact has not been built yet, which makes every unit stale).
// A missing source or header is itself treated as stale so the
// resulting compile attempt surfaces the compiler's own error instead
// of a falsely fresh build.
func StaleUnits(target time.Time, artifactExists bool, closure map[string][]paths.Filename) ([]string, error) {
	var stale []string
	for source, headers := range closure {
		if !artifactExists {
			stale = append(stale, source)
			continue
		}
		isStale, err := newerThan(paths.MakeFilename(source), target)
		if err != nil {
			return nil, err
		}
		if !isStale {
			for _, h := range headers {
				isStale, err = newerThan(h, target)
				if err != nil {
					return nil, err
				}
				if isStale {
					break
				}
			}
		}
		if isStale {
			stale = append(stale, source)
		}
	}
	return stale, nil
}

// newerThan reports whether f's mtime is strictly after target, or f
// is missing (treated as stale).
func newerThan(f paths.Filename, target time.Time) (bool, error) {
	mtime, err := f.MTime()
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}
	return mtime.After(target), nil
}
