// Package trash moves folders and files to the system trash instead of
// permanently deleting them, and can list and empty the trash. Each
// platform supplies its own backend: freedesktop.org trash on Linux,
// ~/.Trash on macOS, the Recycle Bin on Windows.
package trash

import (
	"os"
	"time"
)

// Item is one trashed entry.
type Item struct {
	Name         string    // Name at deletion time
	OriginalPath string    // Where it was deleted from, "" when unknown
	TrashPath    string    // Current location inside the trash
	DeletedAt    time.Time
	Size         int64
	IsDir        bool
}

// Discard moves a file or directory to the system trash.
func Discard(path string) error {
	return discard(path)
}

// List returns the current trash contents.
func List() ([]Item, error) {
	return list()
}

// Empty permanently deletes everything in the trash.
func Empty() error {
	return empty()
}

// Delete permanently removes a single item from the trash.
func Delete(item Item) error {
	return deleteItem(item)
}

// Path returns the trash location, or a platform marker when the trash
// is virtual.
func Path() string {
	return trashPath()
}

// IsAvailable reports whether a usable trash exists on this system.
func IsAvailable() bool {
	return isAvailable()
}

// DisplayName is "Trash" on Linux and macOS, "Recycle Bin" on Windows.
func DisplayName() string {
	return displayName()
}

// PermanentDelete bypasses the trash entirely.
func PermanentDelete(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}
