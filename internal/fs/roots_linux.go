//go:build linux

package fs

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// DesktopPath resolves the folder the desktop focus presents. Honors
// XDG_DESKTOP_DIR from user-dirs.dirs, falling back to ~/Desktop.
func DesktopPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	fallback := filepath.Join(home, "Desktop")

	f, err := os.Open(filepath.Join(home, ".config", "user-dirs.dirs"))
	if err != nil {
		return fallback
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "XDG_DESKTOP_DIR=") {
			continue
		}
		val := strings.Trim(strings.TrimPrefix(line, "XDG_DESKTOP_DIR="), `"`)
		val = strings.ReplaceAll(val, "$HOME", home)
		if val != "" {
			return val
		}
	}
	return fallback
}

// listMounts returns real mounted filesystems from /proc/mounts. Virtual
// filesystems and pseudo mount points are filtered out.
func listMounts() []Root {
	var mounts []Root

	mounts = append(mounts, Root{Name: "/ (Root)", Path: "/"})

	file, err := os.Open("/proc/mounts")
	if err != nil {
		return mounts
	}
	defer file.Close()

	seen := map[string]bool{"/": true}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		mountPoint := fields[1]
		fsType := ""
		if len(fields) >= 3 {
			fsType = fields[2]
		}

		if strings.HasPrefix(mountPoint, "/sys") ||
			strings.HasPrefix(mountPoint, "/proc") ||
			strings.HasPrefix(mountPoint, "/dev") ||
			strings.HasPrefix(mountPoint, "/run") ||
			strings.HasPrefix(mountPoint, "/snap") ||
			fsType == "tmpfs" ||
			fsType == "devtmpfs" ||
			fsType == "cgroup" ||
			fsType == "cgroup2" {
			continue
		}

		if seen[mountPoint] {
			continue
		}
		seen[mountPoint] = true

		name := mountPoint
		if strings.HasPrefix(mountPoint, "/media/") || strings.HasPrefix(mountPoint, "/mnt/") {
			name = filepath.Base(mountPoint)
		}
		mounts = append(mounts, Root{Name: name, Path: mountPoint})
	}

	return mounts
}
