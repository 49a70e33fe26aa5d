package fs

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/Pirrikos/claritydesk/internal/vpath"
)

// Root is a top-level entry point the organizer presents: the home folder,
// the desktop, well-known user folders and mounted volumes.
type Root struct {
	Name string
	Path string
}

// ListRoots returns the platform's root folders, user folders first, then
// mounted volumes. User folders that do not exist are dropped.
func ListRoots() []Root {
	var roots []Root

	home, err := os.UserHomeDir()
	if err == nil {
		roots = append(roots, Root{Name: "Home", Path: home})
		if desktop := DesktopPath(); desktop != "" && DirExists(desktop) {
			roots = append(roots, Root{Name: "Desktop", Path: desktop})
		}
		for _, name := range []string{"Documents", "Downloads", "Pictures"} {
			p := filepath.Join(home, name)
			if DirExists(p) {
				roots = append(roots, Root{Name: name, Path: p})
			}
		}
	}

	return append(roots, listMounts()...)
}

// OrderRoots reorders roots to match a persisted order of paths, compared
// under normalization. Roots not named by the order keep their relative
// position after the ordered ones.
func OrderRoots(roots []Root, order []string) []Root {
	if len(order) == 0 {
		return roots
	}

	rank := make(map[string]int, len(order))
	for i, p := range order {
		rank[vpath.Normalize(p)] = i
	}

	ordered := make([]Root, len(roots))
	copy(ordered, roots)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, iok := rank[vpath.Normalize(ordered[i].Path)]
		rj, jok := rank[vpath.Normalize(ordered[j].Path)]
		if iok && jok {
			return ri < rj
		}
		return iok && !jok
	})
	return ordered
}
