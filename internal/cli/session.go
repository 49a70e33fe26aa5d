package cli

import (
	"os"
	"time"

	"github.com/Pirrikos/claritydesk/internal/app"
	"github.com/Pirrikos/claritydesk/internal/config"
	"github.com/Pirrikos/claritydesk/internal/debug"
	"github.com/Pirrikos/claritydesk/internal/state"
	"github.com/Pirrikos/claritydesk/internal/store"
)

// session is one CLI invocation's view of the shell: configuration, the
// durable store, and a shell restored from the saved session file.
// Mutating verbs persist on close, so tabs and history carry across
// invocations.
type session struct {
	cfg   *config.Manager
	db    *store.Store
	shell *app.Shell
}

func openSession() (*session, error) {
	cfg := config.NewManager()
	if err := cfg.Load(); err != nil {
		return nil, err
	}

	// The shell runs fine without the store; recents and custom contexts
	// are just absent then.
	var visits app.VisitRecorder
	var contexts app.ContextResolver
	db, err := store.Open(cfg.DatabasePath())
	if err != nil {
		debug.Log(debug.STORE, "Store unavailable: %v", err)
		db = nil
	} else {
		visits = db
		contexts = db
	}

	shell, err := app.New(app.Options{
		StatePath:    cfg.StatePath(),
		Debounce:     time.Duration(cfg.DebounceMs()) * time.Millisecond,
		HistoryLimit: cfg.HistoryLimit(),
		Visits:       visits,
		Contexts:     contexts,
	})
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}

	if cfg.RestoreOnStart() {
		shell.RestoreState(state.Load(cfg.StatePath()))
	}

	return &session{cfg: cfg, db: db, shell: shell}, nil
}

func (s *session) close() {
	s.shell.Close()
	if s.db != nil {
		s.db.Close()
	}
}

// resolvePath expands user input against the working directory.
func resolvePath(input string) string {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	return app.ExpandPath(input, wd)
}
