package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Pirrikos/claritydesk/internal/debug"
	"github.com/Pirrikos/claritydesk/internal/events"
	"github.com/Pirrikos/claritydesk/internal/fs"
	"github.com/Pirrikos/claritydesk/internal/trash"
	"github.com/Pirrikos/claritydesk/internal/vpath"
)

// DirPermission is the mode for folders the shell creates.
const DirPermission = 0o755

// pathExists checks if a path exists on the filesystem.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("invalid folder name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("folder name %q must not contain path separators", name)
	}
	return nil
}

// CreateFolder makes a new folder under parent and returns its path. The
// watcher is suppressed for the duration; the shell announces the change
// itself instead of rediscovering it through the settle diff.
func (s *Shell) CreateFolder(parent, name string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	if !fs.DirExists(parent) {
		return "", fmt.Errorf("parent is not a folder: %s", parent)
	}
	path := filepath.Join(parent, name)
	if pathExists(path) {
		return "", fmt.Errorf("already exists: %s", path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcher.SetIgnoreEvents(true)
	defer s.watcher.SetIgnoreEvents(false)

	if err := os.Mkdir(path, DirPermission); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}

	debug.Log(debug.SHELL, "Created folder %s", path)
	s.events.Publish(events.Event{Type: events.FolderCreated, Path: path})
	s.events.Publish(events.Event{Type: events.FilesChanged, Path: parent})
	return path, nil
}

// RenameFolder renames a folder in place and returns the new path. Open
// tabs into the folder or its subtree follow the rename.
func (s *Shell) RenameFolder(path, newName string) (string, error) {
	if err := validName(newName); err != nil {
		return "", err
	}
	if !fs.DirExists(path) {
		return "", fmt.Errorf("not a folder: %s", path)
	}
	newPath := filepath.Join(filepath.Dir(path), newName)
	if vpath.Equal(path, newPath) {
		return newPath, nil
	}
	if pathExists(newPath) {
		return "", fmt.Errorf("destination already exists: %s", newPath)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return newPath, s.moveLocked(path, newPath)
}

// MoveFolder moves a folder under destDir, keeping its name, and returns
// the new path.
func (s *Shell) MoveFolder(path, destDir string) (string, error) {
	if !fs.DirExists(path) {
		return "", fmt.Errorf("not a folder: %s", path)
	}
	if !fs.DirExists(destDir) {
		return "", fmt.Errorf("destination is not a folder: %s", destDir)
	}
	if vpath.Equal(path, destDir) || vpath.Contains(path, destDir) {
		return "", fmt.Errorf("cannot move %s into itself", path)
	}
	newPath := filepath.Join(destDir, filepath.Base(path))
	if vpath.Equal(path, newPath) {
		return newPath, nil
	}
	if pathExists(newPath) {
		return "", fmt.Errorf("destination already exists: %s", newPath)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return newPath, s.moveLocked(path, newPath)
}

// moveLocked performs the rename and the registry bookkeeping shared by
// RenameFolder and MoveFolder.
func (s *Shell) moveLocked(oldPath, newPath string) error {
	s.watcher.SetIgnoreEvents(true)
	defer s.watcher.SetIgnoreEvents(false)

	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("rename folder: %w", err)
	}
	debug.Log(debug.SHELL, "Renamed %s -> %s", oldPath, newPath)

	var activeBefore string
	if s.active >= 0 && s.active < len(s.tabs) {
		activeBefore = s.tabs[s.active]
	}
	if s.rewriteTabsLocked(oldPath, newPath) {
		if s.stateContext == "" && s.active >= 0 && s.tabs[s.active] != activeBefore {
			s.rebindLocked(s.tabs[s.active])
		}
		s.persistLocked()
		s.publishTabsLocked()
	}

	s.events.Publish(events.Event{Type: events.FolderRenamed, OldPath: oldPath, NewPath: newPath})
	s.events.Publish(events.Event{Type: events.FilesChanged, Path: filepath.Dir(oldPath)})
	if filepath.Dir(newPath) != filepath.Dir(oldPath) {
		s.events.Publish(events.Event{Type: events.FilesChanged, Path: filepath.Dir(newPath)})
	}
	return nil
}

// TrashFolder moves a folder to the system trash and closes any tab into
// it or its subtree.
func (s *Shell) TrashFolder(path string) error {
	return s.discardFolder(path, trash.Discard)
}

// DeleteFolder removes a folder permanently, bypassing the trash.
func (s *Shell) DeleteFolder(path string) error {
	return s.discardFolder(path, trash.PermanentDelete)
}

func (s *Shell) discardFolder(path string, remove func(string) error) error {
	if !fs.DirExists(path) {
		return fmt.Errorf("not a folder: %s", path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcher.SetIgnoreEvents(true)
	defer s.watcher.SetIgnoreEvents(false)

	if err := remove(path); err != nil {
		return err
	}
	debug.Log(debug.SHELL, "Removed folder %s", path)

	var indices []int
	for i, tab := range s.tabs {
		if vpath.Equal(tab, path) || vpath.Contains(path, tab) {
			indices = append(indices, i)
		}
	}
	if len(indices) > 0 {
		s.removeIndicesLocked(indices)
	}

	s.events.Publish(events.Event{Type: events.FolderDeleted, Path: path})
	s.events.Publish(events.Event{Type: events.FilesChanged, Path: filepath.Dir(path)})
	return nil
}
