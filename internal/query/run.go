package query

import (
	"errors"
	"io/fs"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/Pirrikos/claritydesk/internal/debug"
)

// Result is one folder gathered by a context query.
type Result struct {
	Path    string
	ModTime time.Time
}

var errLimitReached = errors.New("result limit reached")

// Run gathers the folders under root that match q, descending at most
// q.MaxDepth() levels. A positive limit caps the result count. Results
// come back sorted by path since the walk order is nondeterministic.
func Run(root string, q *Query, limit int) ([]Result, error) {
	maxDepth := q.MaxDepth()
	matcher := NewMatcher(q)
	debug.Log(debug.QUERY, "Run: %q under %s (depth %d)", q.Raw, root, maxDepth)

	var (
		mu      sync.Mutex
		results []Result
	)

	conf := &fastwalk.Config{
		Follow: false,
	}

	rootLen := len(root)
	err := fastwalk.Walk(conf, root, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			debug.Log(debug.QUERY, "Run: walk error at %q: %v", fullPath, err)
			return nil
		}
		if fullPath == root {
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		relStart := rootLen
		if relStart < len(fullPath) && (fullPath[relStart] == '/' || fullPath[relStart] == '\\') {
			relStart++
		}
		depth := strings.Count(fullPath[relStart:], "/") + strings.Count(fullPath[relStart:], `\`) + 1
		if depth > maxDepth {
			return fastwalk.SkipDir
		}

		info, statErr := fastwalk.StatDirEntry(fullPath, d)
		if statErr != nil {
			return nil
		}

		if matcher.Match(fullPath, info) {
			mu.Lock()
			results = append(results, Result{Path: fullPath, ModTime: info.ModTime()})
			full := limit > 0 && len(results) >= limit
			mu.Unlock()
			if full {
				return errLimitReached
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errLimitReached) {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	debug.Log(debug.QUERY, "Run: %d folders matched", len(results))
	return results, nil
}
