//go:build windows

package fs

import (
	"os"
	"path/filepath"
	"syscall"
	"unsafe"
)

// DesktopPath resolves the folder the desktop focus presents.
func DesktopPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Desktop")
}

var (
	kernel32         = syscall.NewLazyDLL("kernel32.dll")
	getLogicalDrives = kernel32.NewProc("GetLogicalDrives")
	getDriveTypeW    = kernel32.NewProc("GetDriveTypeW")
)

const (
	driveUnknown   = 0
	driveNoRootDir = 1
	driveRemovable = 2
	driveRemote    = 4
	driveCDROM     = 5
)

// DrivePaths returns the root path of every present drive letter without
// touching the drives themselves.
func DrivePaths() []string {
	var paths []string
	mask, _, _ := getLogicalDrives.Call()
	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) != 0 {
			paths = append(paths, string(rune('A'+i))+`:\`)
		}
	}
	return paths
}

// listMounts returns present drive letters. GetLogicalDrives returns
// immediately; only the drive type lookup touches each drive.
func listMounts() []Root {
	var mounts []Root

	mask, _, _ := getLogicalDrives.Call()
	if mask == 0 {
		return mounts
	}

	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		letter := string(rune('A' + i))
		path := letter + `:\`

		pathPtr, _ := syscall.UTF16PtrFromString(path)
		driveType, _, _ := getDriveTypeW.Call(uintptr(unsafe.Pointer(pathPtr)))
		if driveType == driveUnknown || driveType == driveNoRootDir {
			continue
		}

		name := letter + ":"
		switch driveType {
		case driveRemovable:
			name = "Removable (" + letter + ":)"
		case driveCDROM:
			name = "CD/DVD (" + letter + ":)"
		case driveRemote:
			name = "Network (" + letter + ":)"
		}

		mounts = append(mounts, Root{Name: name, Path: path})
	}

	return mounts
}
