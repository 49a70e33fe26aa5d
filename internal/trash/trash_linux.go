//go:build linux

package trash

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Pirrikos/claritydesk/internal/debug"
)

// Freedesktop.org trash layout under $XDG_DATA_HOME/Trash (default
// ~/.local/share/Trash): trashed entries live in files/, and each has a
// sibling <name>.trashinfo in info/ recording the original path and the
// deletion date.

func trashPath() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "Trash")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "Trash")
}

func filesDir() string { return filepath.Join(trashPath(), "files") }
func infoDir() string  { return filepath.Join(trashPath(), "info") }

func ensureDirs() error {
	if trashPath() == "" {
		return fmt.Errorf("trash location unresolved")
	}
	if err := os.MkdirAll(filesDir(), 0700); err != nil {
		return err
	}
	return os.MkdirAll(infoDir(), 0700)
}

func isAvailable() bool {
	return ensureDirs() == nil
}

func discard(path string) error {
	if err := ensureDirs(); err != nil {
		return fmt.Errorf("cannot prepare trash: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	destName := uniqueName(filepath.Base(absPath))
	destPath := filepath.Join(filesDir(), destName)

	infoFile := filepath.Join(infoDir(), destName+".trashinfo")
	record := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		url.PathEscape(absPath),
		time.Now().Format("2006-01-02T15:04:05"))
	if err := os.WriteFile(infoFile, []byte(record), 0600); err != nil {
		return fmt.Errorf("cannot write trashinfo: %w", err)
	}

	if err := os.Rename(absPath, destPath); err != nil {
		os.Remove(infoFile)
		return fmt.Errorf("cannot move to trash: %w", err)
	}

	debug.Log(debug.TRASH, "Discarded %s as %s", absPath, destName)
	return nil
}

// uniqueName appends a counter before the extension until the name is
// free inside files/.
func uniqueName(base string) string {
	name := base
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(filepath.Join(filesDir(), name)); os.IsNotExist(err) {
			return name
		}
		name = fmt.Sprintf("%s.%d%s", stem, counter, ext)
	}
}

func list() ([]Item, error) {
	entries, err := os.ReadDir(filesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var items []Item
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}

		item := Item{
			Name:      entry.Name(),
			TrashPath: filepath.Join(filesDir(), entry.Name()),
			DeletedAt: info.ModTime(),
			Size:      info.Size(),
			IsDir:     entry.IsDir(),
		}
		if orig, deleted, err := readTrashInfo(filepath.Join(infoDir(), entry.Name()+".trashinfo")); err == nil {
			item.OriginalPath = orig
			if !deleted.IsZero() {
				item.DeletedAt = deleted
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func readTrashInfo(path string) (originalPath string, deletedAt time.Time, err error) {
	file, err := os.Open(path)
	if err != nil {
		return "", time.Time{}, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "Path="):
			raw := strings.TrimPrefix(line, "Path=")
			if decoded, err := url.PathUnescape(raw); err == nil {
				originalPath = decoded
			} else {
				originalPath = raw
			}
		case strings.HasPrefix(line, "DeletionDate="):
			if t, err := time.Parse("2006-01-02T15:04:05", strings.TrimPrefix(line, "DeletionDate=")); err == nil {
				deletedAt = t
			}
		}
	}
	return originalPath, deletedAt, scanner.Err()
}

func empty() error {
	var lastErr error

	entries, err := os.ReadDir(filesDir())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(filesDir(), entry.Name())); err != nil {
			lastErr = err
		}
	}

	infoEntries, err := os.ReadDir(infoDir())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	for _, entry := range infoEntries {
		if err := os.Remove(filepath.Join(infoDir(), entry.Name())); err != nil {
			lastErr = err
		}
	}

	debug.Log(debug.TRASH, "Emptied trash")
	return lastErr
}

func deleteItem(item Item) error {
	if err := os.RemoveAll(item.TrashPath); err != nil {
		return err
	}
	// Metadata may already be gone.
	os.Remove(filepath.Join(infoDir(), filepath.Base(item.TrashPath)+".trashinfo"))
	return nil
}

func displayName() string {
	return "Trash"
}
