//go:build windows

package trash

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
	"unsafe"

	"github.com/Pirrikos/claritydesk/internal/debug"
	"github.com/Pirrikos/claritydesk/internal/fs"
)

// Windows routes deletions through shell32 so they land in the Recycle
// Bin. Listing scans the hidden $Recycle.Bin folders per drive and decodes
// the $I metadata sidecars for original paths and deletion times.

var (
	shell32                = syscall.NewLazyDLL("shell32.dll")
	procSHFileOperationW   = shell32.NewProc("SHFileOperationW")
	procSHEmptyRecycleBinW = shell32.NewProc("SHEmptyRecycleBinW")
)

type shFileOpStruct struct {
	hwnd                  uintptr
	wFunc                 uint32
	pFrom                 *uint16
	pTo                   *uint16
	fFlags                uint16
	fAnyOperationsAborted int32
	hNameMappings         uintptr
	lpszProgressTitle     *uint16
}

const (
	foDelete         = 0x0003
	fofAllowUndo     = 0x0040
	fofNoConfirm     = 0x0010
	fofNoErrorUI     = 0x0400
	fofSilent        = 0x0004
	sherbNoConfirm   = 0x00000001
	sherbNoProgress  = 0x00000002
	sherbNoSound     = 0x00000004
)

func trashPath() string {
	// The Recycle Bin is virtual; return the shell marker.
	return "shell:RecycleBinFolder"
}

func isAvailable() bool {
	return true
}

func discard(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	// SHFileOperationW takes a double-null-terminated source list.
	from, err := syscall.UTF16PtrFromString(absPath + "\x00")
	if err != nil {
		return err
	}

	op := shFileOpStruct{
		wFunc:  foDelete,
		pFrom:  from,
		fFlags: fofAllowUndo | fofNoConfirm | fofNoErrorUI | fofSilent,
	}

	ret, _, _ := procSHFileOperationW.Call(uintptr(unsafe.Pointer(&op)))
	if ret != 0 {
		return fmt.Errorf("SHFileOperationW failed with code %d", ret)
	}
	if op.fAnyOperationsAborted != 0 {
		return fmt.Errorf("recycle operation aborted")
	}

	debug.Log(debug.TRASH, "Discarded %s", absPath)
	return nil
}

func list() ([]Item, error) {
	var items []Item
	for _, drive := range fs.DrivePaths() {
		driveItems, err := scanRecycleBin(filepath.Join(drive, "$Recycle.Bin"))
		if err != nil {
			continue // Drive without an accessible bin
		}
		items = append(items, driveItems...)
	}
	return items, nil
}

func scanRecycleBin(binPath string) ([]Item, error) {
	// One SID-named folder per user lives under $Recycle.Bin.
	sidFolders, err := os.ReadDir(binPath)
	if err != nil {
		return nil, err
	}

	var items []Item
	for _, sidFolder := range sidFolders {
		if !sidFolder.IsDir() || !strings.HasPrefix(sidFolder.Name(), "S-") {
			continue
		}

		sidPath := filepath.Join(binPath, sidFolder.Name())
		entries, err := os.ReadDir(sidPath)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			// $R files hold the data; $I files are metadata sidecars.
			if !strings.HasPrefix(entry.Name(), "$R") {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}

			item := Item{
				Name:      entry.Name(),
				TrashPath: filepath.Join(sidPath, entry.Name()),
				DeletedAt: info.ModTime(),
				Size:      info.Size(),
				IsDir:     entry.IsDir(),
			}
			sidecar := filepath.Join(sidPath, "$I"+strings.TrimPrefix(entry.Name(), "$R"))
			if origPath, deletedAt := readSidecar(sidecar); origPath != "" {
				item.Name = filepath.Base(origPath)
				item.OriginalPath = origPath
				if !deletedAt.IsZero() {
					item.DeletedAt = deletedAt
				}
			}
			items = append(items, item)
		}
	}
	return items, nil
}

// readSidecar decodes a Vista-format $I file: 8-byte header, 8-byte size,
// 8-byte FILETIME, 4-byte path length, UTF-16LE path.
func readSidecar(path string) (originalPath string, deletedAt time.Time) {
	data, err := os.ReadFile(path)
	if err != nil || len(data) < 28 {
		return "", time.Time{}
	}

	ft := uint64(data[16]) | uint64(data[17])<<8 | uint64(data[18])<<16 | uint64(data[19])<<24 |
		uint64(data[20])<<32 | uint64(data[21])<<40 | uint64(data[22])<<48 | uint64(data[23])<<56

	// FILETIME counts 100ns intervals since 1601-01-01; shift to the Unix
	// epoch before converting.
	const filetimeEpochDiff = 116444736000000000
	if ft > filetimeEpochDiff {
		deletedAt = time.Unix(0, (int64(ft)-filetimeEpochDiff)*100)
	}

	pathLen := uint32(data[24]) | uint32(data[25])<<8 | uint32(data[26])<<16 | uint32(data[27])<<24
	pathBytes := data[28:]
	if uint32(len(pathBytes)) < pathLen*2 {
		return "", deletedAt
	}

	utf16Chars := make([]uint16, pathLen)
	for i := uint32(0); i < pathLen && int(i*2+1) < len(pathBytes); i++ {
		utf16Chars[i] = uint16(pathBytes[i*2]) | uint16(pathBytes[i*2+1])<<8
	}
	return syscall.UTF16ToString(utf16Chars), deletedAt
}

func empty() error {
	// Errors are ignored; an already-empty bin reports failure codes.
	procSHEmptyRecycleBinW.Call(0, 0, sherbNoConfirm|sherbNoProgress|sherbNoSound)
	debug.Log(debug.TRASH, "Emptied recycle bin")
	return nil
}

func deleteItem(item Item) error {
	return os.RemoveAll(item.TrashPath)
}

func displayName() string {
	return "Recycle Bin"
}
