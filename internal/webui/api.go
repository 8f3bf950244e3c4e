package webui

import (
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"flashcards/internal/pack"
	"flashcards/internal/quiz"
)

// API serves the browser dashboard. Every cookie session owns a
// private category table (a copy of the shared catalog plus that
// session's uploads) and at most one quiz session, so no quiz state is
// ever shared across users.
type API struct {
	packsDir *pack.Dir
	uploads  *pack.SQLiteStorage // nil means uploads live only in memory

	mu   sync.RWMutex // guards base across rescans
	base *pack.Store

	cookies  *session.Store
	statesMu sync.Mutex
	states   map[string]*userState
}

// userState is the per-browser-session scope of spec'd ownership: the
// category table outlives quiz sessions, quiz sessions come and go.
// The mutex serializes handler access to one session's state.
type userState struct {
	mu     sync.Mutex
	scope  string
	store  *pack.Store
	active *quiz.Session
}

func NewAPI(packsDir *pack.Dir, uploads *pack.SQLiteStorage) *API {
	api := &API{
		packsDir: packsDir,
		uploads:  uploads,
		base:     pack.NewStore(),
		cookies:  session.New(),
		states:   make(map[string]*userState),
	}
	api.Rescan()
	return api
}

// Rescan rebuilds the shared catalog from the packs directory. States
// created before a rescan keep their copies; new browser sessions see
// the fresh catalog. This is the external serialization of loads the
// core asks callers for.
func (a *API) Rescan() {
	fresh := pack.NewStore()
	fresh.EnsureDefaultPack(a.packsDir)

	loaded, failures, err := fresh.LoadAll(a.packsDir)
	if err != nil {
		log.Printf("pack rescan failed: %v", err)
		return
	}
	for _, failure := range failures {
		log.Printf("skipped pack %s: %v", failure.Source, failure.Err)
	}
	log.Printf("catalog loaded: %d categories from %s", loaded, a.packsDir.Path())

	a.mu.Lock()
	a.base = fresh
	a.mu.Unlock()
}

// stateFor resolves the caller's per-session state, creating it from
// the current catalog plus any previously uploaded packs on first use.
func (a *API) stateFor(c *fiber.Ctx) (*userState, error) {
	cookieSession, err := a.cookies.Get(c)
	if err != nil {
		return nil, err
	}
	scope := cookieSession.ID()
	if cookieSession.Fresh() {
		if err := cookieSession.Save(); err != nil {
			return nil, err
		}
	}

	a.statesMu.Lock()
	defer a.statesMu.Unlock()

	if state, ok := a.states[scope]; ok {
		return state, nil
	}

	store := pack.NewStore()
	a.mu.RLock()
	store.Merge(a.base.Snapshot())
	a.mu.RUnlock()

	if a.uploads != nil {
		if _, failures, err := store.LoadAll(a.uploads.Scope(scope)); err != nil {
			log.Printf("restoring uploads for session %s failed: %v", scope, err)
		} else {
			for _, failure := range failures {
				log.Printf("skipped stored upload %s: %v", failure.Source, failure.Err)
			}
		}
	}

	state := &userState{scope: scope, store: store}
	a.states[scope] = state
	return state, nil
}
