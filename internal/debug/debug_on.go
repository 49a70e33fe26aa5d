//go:build debug

// Package debug provides a centralized, categorized debug logging system.
// Build with -tags debug to enable logging.
package debug

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Enabled indicates whether debug logging is active
const Enabled = true

// Category represents a debug logging category
type Category string

const (
	// Core categories
	SHELL  Category = "SHELL"  // Tab registry, navigation, state context
	WATCH  Category = "WATCH"  // Folder watching, debounce, diff classification
	STATE  Category = "STATE"  // Persisted state load/save/sanitize
	STORE  Category = "STORE"  // Database operations, pins, visits
	FS     Category = "FS"     // Directory listing, roots
	QUERY  Category = "QUERY"  // Context query parsing and evaluation
	TRASH  Category = "TRASH"  // Trash access
	CONFIG Category = "CONFIG" // Config manager

	// Detailed subcategories (use sparingly - can be verbose)
	WATCH_RAW Category = "WATCH_RAW" // Raw fsnotify events before debouncing
	FS_ENTRY  Category = "FS_ENTRY"  // Individual entry processing (very verbose)
)

var (
	// enabledCategories controls which categories are active
	// By default, all main categories are enabled
	enabledCategories = map[Category]bool{
		SHELL:  true,
		WATCH:  true,
		STATE:  true,
		STORE:  true,
		FS:     true,
		QUERY:  true,
		TRASH:  true,
		CONFIG: true,
		// Verbose categories disabled by default
		WATCH_RAW: false,
		FS_ENTRY:  false,
	}
	categoryMu sync.RWMutex

	// Output destination
	logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
)

func init() {
	// Check environment variable for category overrides
	// Format: CLARITYDESK_DEBUG=SHELL,WATCH or CLARITYDESK_DEBUG=all or CLARITYDESK_DEBUG=none
	if env := os.Getenv("CLARITYDESK_DEBUG"); env != "" {
		categoryMu.Lock()
		defer categoryMu.Unlock()

		env = strings.ToUpper(env)
		switch env {
		case "ALL":
			for cat := range enabledCategories {
				enabledCategories[cat] = true
			}
		case "NONE":
			for cat := range enabledCategories {
				enabledCategories[cat] = false
			}
		default:
			// Disable all first, then enable specified
			for cat := range enabledCategories {
				enabledCategories[cat] = false
			}
			for _, cat := range strings.Split(env, ",") {
				cat = strings.TrimSpace(cat)
				enabledCategories[Category(cat)] = true
			}
		}
	}
}

// Log logs a debug message for the specified category
func Log(cat Category, format string, args ...interface{}) {
	categoryMu.RLock()
	enabled := enabledCategories[cat]
	categoryMu.RUnlock()

	if !enabled {
		return
	}

	msg := fmt.Sprintf(format, args...)
	logger.Printf("[%s] %s", cat, msg)
}

// Enable enables a debug category
func Enable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = true
	categoryMu.Unlock()
}

// Disable disables a debug category
func Disable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = false
	categoryMu.Unlock()
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}

// EnableAll enables all debug categories including verbose ones
func EnableAll() {
	categoryMu.Lock()
	for cat := range enabledCategories {
		enabledCategories[cat] = true
	}
	categoryMu.Unlock()
}

// DisableAll disables all debug categories
func DisableAll() {
	categoryMu.Lock()
	for cat := range enabledCategories {
		enabledCategories[cat] = false
	}
	categoryMu.Unlock()
}
