//go:build darwin

package trash

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Pirrikos/claritydesk/internal/debug"
)

// macOS keeps the user trash at ~/.Trash with no metadata sidecars, so
// original paths are unknown when listing. Name collisions are resolved
// with a timestamp suffix.

func trashPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".Trash")
}

func isAvailable() bool {
	root := trashPath()
	if root == "" {
		return false
	}
	info, err := os.Stat(root)
	return err == nil && info.IsDir()
}

func discard(path string) error {
	root := trashPath()
	if root == "" {
		return fmt.Errorf("trash location unresolved")
	}

	base := filepath.Base(path)
	destPath := filepath.Join(root, base)
	if _, err := os.Stat(destPath); err == nil {
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		stamp := time.Now().Format("2006-01-02-150405")
		destPath = filepath.Join(root, fmt.Sprintf("%s %s%s", stem, stamp, ext))
	}

	if err := os.Rename(path, destPath); err != nil {
		// Rename fails across filesystems (external volumes); fall back
		// to copy plus delete.
		if err := copyTree(path, destPath); err != nil {
			return err
		}
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	}

	debug.Log(debug.TRASH, "Discarded %s", path)
	return nil
}

func copyTree(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if !srcInfo.IsDir() {
		data, err := os.ReadFile(src)
		if err != nil {
			return err
		}
		return os.WriteFile(dst, data, srcInfo.Mode())
	}

	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := copyTree(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func list() ([]Item, error) {
	root := trashPath()
	if root == "" {
		return nil, fmt.Errorf("trash location unresolved")
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var items []Item
	for _, entry := range entries {
		// Hidden system files like .DS_Store are not trash contents.
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		items = append(items, Item{
			Name:      entry.Name(),
			TrashPath: filepath.Join(root, entry.Name()),
			DeletedAt: info.ModTime(),
			Size:      info.Size(),
			IsDir:     entry.IsDir(),
		})
	}
	return items, nil
}

func empty() error {
	root := trashPath()
	if root == "" {
		return fmt.Errorf("trash location unresolved")
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var lastErr error
	for _, entry := range entries {
		if entry.Name() == ".DS_Store" {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, entry.Name())); err != nil {
			lastErr = err
		}
	}

	debug.Log(debug.TRASH, "Emptied trash")
	return lastErr
}

func deleteItem(item Item) error {
	return os.RemoveAll(item.TrashPath)
}

func displayName() string {
	return "Trash"
}
