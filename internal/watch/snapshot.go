package watch

import (
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/Pirrikos/claritydesk/internal/debug"
	"github.com/Pirrikos/claritydesk/internal/fs"
)

// entry is one child of the watched folder, reduced to the fields that
// matter for change detection.
type entry struct {
	name  string
	dir   bool
	size  int64
	mtime int64
}

// snapshot captures a folder's immediate children at one point in time.
type snapshot []entry

// takeSnapshot lists the folder's children. Listing failures (folder gone,
// permission revoked) yield an empty snapshot so the diff degrades to
// "everything disappeared" instead of an error path.
func takeSnapshot(folder string) snapshot {
	entries, err := fs.List(folder)
	if err != nil {
		debug.Log(debug.WATCH, "Snapshot of %s failed: %v", folder, err)
		return snapshot{}
	}
	snap := make(snapshot, 0, len(entries))
	for _, e := range entries {
		snap = append(snap, entry{
			name:  e.Name,
			dir:   e.IsDir,
			size:  e.Size,
			mtime: e.ModTime.UnixNano(),
		})
	}
	return snap
}

// equal reports whether two snapshots list identical children. Listings
// are sorted, so element-wise comparison is enough.
func (s snapshot) equal(other snapshot) bool {
	return slices.Equal(s, other)
}

// dirNames returns the subdirectory names in the snapshot.
func (s snapshot) dirNames() map[string]bool {
	names := make(map[string]bool)
	for _, e := range s {
		if e.dir {
			names[e.name] = true
		}
	}
	return names
}

// classify turns the difference between two snapshots of folder into a
// sequence of events. The caller has already established that the
// snapshots differ. The generic FolderChanged event always comes last.
func classify(folder string, before, after snapshot) []Event {
	oldDirs := before.dirNames()
	newDirs := after.dirNames()

	var disappeared, appeared []string
	for name := range oldDirs {
		if !newDirs[name] {
			disappeared = append(disappeared, name)
		}
	}
	for name := range newDirs {
		if !oldDirs[name] {
			appeared = append(appeared, name)
		}
	}
	sort.Strings(disappeared)
	sort.Strings(appeared)

	var out []Event
	if len(disappeared) == 1 && len(appeared) == 1 {
		// Exactly one directory gone and one new is treated as a rename.
		// Deliberately no stat correlation on this branch: OS rename
		// notifications are unreliable across platforms, so the
		// one-for-one listing diff is the signal.
		oldPath := filepath.Join(folder, disappeared[0])
		newPath := filepath.Join(folder, appeared[0])
		debug.Log(debug.WATCH, "Classified rename: %s -> %s", oldPath, newPath)
		out = append(out, Event{Type: FolderRenamed, Folder: folder, OldPath: oldPath, NewPath: newPath})
	} else {
		for _, name := range disappeared {
			path := filepath.Join(folder, name)
			if _, err := os.Stat(path); err == nil {
				// Still on disk: transient listing glitch, not a removal.
				continue
			}
			debug.Log(debug.WATCH, "Classified removal: %s", path)
			out = append(out, Event{Type: FolderDeleted, Folder: folder, Path: path})
			out = append(out, Event{Type: FolderDisappeared, Folder: folder, Path: path})
		}
		for _, name := range appeared {
			path := filepath.Join(folder, name)
			info, err := os.Stat(path)
			if err != nil || !info.IsDir() {
				continue
			}
			debug.Log(debug.WATCH, "Classified creation: %s", path)
			out = append(out, Event{Type: FolderCreated, Folder: folder, Path: path})
		}
		if len(disappeared) > 0 || len(appeared) > 0 {
			// Directory-level churn that is not a clean one-for-one
			// rename: tell the consumer to resynchronize its whole view
			// of this folder instead of applying an incremental edit.
			debug.Log(debug.WATCH, "Structural change in %s (%d gone, %d new)", folder, len(disappeared), len(appeared))
			out = append(out, Event{Type: StructuralChange, Folder: folder, Path: folder})
		}
	}

	out = append(out, Event{Type: FolderChanged, Folder: folder, Path: folder})
	return out
}
