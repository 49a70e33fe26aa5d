//go:build darwin

package fs

import (
	"os"
	"path/filepath"
)

// DesktopPath resolves the folder the desktop focus presents.
func DesktopPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Desktop")
}

// listMounts returns mounted volumes from /Volumes. The symlink back to the
// boot volume is reported as "/".
func listMounts() []Root {
	var mounts []Root

	entries, err := os.ReadDir("/Volumes")
	if err != nil {
		return []Root{{Name: "Macintosh HD", Path: "/"}}
	}

	for _, entry := range entries {
		fullPath := filepath.Join("/Volumes", entry.Name())

		if target, err := os.Readlink(fullPath); err == nil && target == "/" {
			mounts = append([]Root{{Name: entry.Name(), Path: "/"}}, mounts...)
			continue
		}

		if !DirExists(fullPath) {
			continue
		}
		mounts = append(mounts, Root{Name: entry.Name(), Path: fullPath})
	}

	if len(mounts) == 0 {
		return []Root{{Name: "Macintosh HD", Path: "/"}}
	}
	return mounts
}
