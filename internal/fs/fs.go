// Package fs provides synchronous filesystem access for the shell core:
// depth-one directory listing, directory checks and platform root folders.
//
// Folder contents are interactive-desktop sized, so every call here runs to
// completion on the caller's goroutine. The watcher snapshots and the CLI
// both rely on that.
package fs

import (
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/Pirrikos/claritydesk/internal/debug"
)

// Entry describes one immediate child of a listed folder.
type Entry struct {
	Name    string
	Path    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// List returns the immediate children of dir, directories first, then by
// case-insensitive name. Entries that cannot be stat'ed are skipped rather
// than failing the whole listing.
func List(dir string) ([]Entry, error) {
	debug.Log(debug.FS, "List: reading %q", dir)

	var entries []Entry
	var mu sync.Mutex

	conf := &fastwalk.Config{
		Follow: true, // Follow symlinks to get target info
	}

	dirLen := len(dir)

	err := fastwalk.Walk(conf, dir, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			debug.Log(debug.FS_ENTRY, "List: walk error at %q: %v", fullPath, err)
			return nil
		}

		// Skip the root directory itself
		if fullPath == dir {
			return nil
		}

		// Only process direct children: anything with a separator past the
		// root is nested and gets pruned.
		relStart := dirLen
		if relStart < len(fullPath) && (fullPath[relStart] == '/' || fullPath[relStart] == '\\') {
			relStart++
		}
		if strings.ContainsAny(fullPath[relStart:], `/\`) {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		info, err := fastwalk.StatDirEntry(fullPath, d)
		if err != nil {
			// Broken symlink: fall back to lstat
			info, err = os.Lstat(fullPath)
			if err != nil {
				debug.Log(debug.FS_ENTRY, "List: skipping %q: stat error: %v", d.Name(), err)
				return nil
			}
		}

		mu.Lock()
		entries = append(entries, Entry{
			Name:    d.Name(),
			Path:    fullPath,
			IsDir:   info.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		mu.Unlock()

		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	debug.Log(debug.FS, "List: %q -> %d entries", dir, len(entries))
	return entries, nil
}

// DirExists reports whether path exists and is a directory. Stat failures of
// any kind count as "no".
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
