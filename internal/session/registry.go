package session

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/adiwiguna/chatpdf/internal/domain"
)

// Registry holds the server-side session state in memory. Sessions expire
// after the configured TTL; they never survive a restart.
type Registry struct {
	mu    sync.Mutex
	cache *cache.Cache
}

// NewRegistry creates a registry whose sessions expire after ttl and are
// purged every cleanupInterval.
func NewRegistry(ttl, cleanupInterval time.Duration) *Registry {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if cleanupInterval <= 0 {
		cleanupInterval = time.Hour
	}
	return &Registry{cache: cache.New(ttl, cleanupInterval)}
}

// OnEvicted registers a callback invoked with the session id whenever a
// session expires or is deleted. Used to drop the session's stored chunks.
func (r *Registry) OnEvicted(fn func(sessionID string)) {
	r.cache.OnEvicted(func(key string, _ interface{}) {
		fn(key)
	})
}

// Create registers a freshly processed session.
func (r *Registry) Create(sessionID string, files []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Set(sessionID, &domain.Session{
		ID:        sessionID,
		Files:     files,
		Processed: true,
		CreatedAt: time.Now(),
	}, cache.DefaultExpiration)
}

// Get returns a copy of the session, or false if it does not exist.
func (r *Registry) Get(sessionID string) (domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.lookup(sessionID)
	if !ok {
		return domain.Session{}, false
	}
	copied := *sess
	copied.History = append([]domain.HistoryEntry(nil), sess.History...)
	return copied, true
}

// Exists reports whether a session is registered.
func (r *Registry) Exists(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.lookup(sessionID)
	return ok
}

// IsProcessed reports whether a session has processed documents.
func (r *Registry) IsProcessed(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.lookup(sessionID)
	return ok && sess.Processed
}

// AppendHistory appends one entry to a session's chat history.
func (r *Registry) AppendHistory(sessionID, entryType, content string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.lookup(sessionID)
	if !ok {
		return
	}
	sess.History = append(sess.History, domain.HistoryEntry{Type: entryType, Content: content})
}

// History returns a copy of a session's chat history.
func (r *Registry) History(sessionID string) []domain.HistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.lookup(sessionID)
	if !ok {
		return nil
	}
	return append([]domain.HistoryEntry(nil), sess.History...)
}

// ClearHistory empties a session's chat history, keeping the session alive.
func (r *Registry) ClearHistory(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.lookup(sessionID); ok {
		sess.History = nil
	}
}

// Delete removes a session entirely.
func (r *Registry) Delete(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(sessionID)
}

func (r *Registry) lookup(sessionID string) (*domain.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*domain.Session), true
	}
	return nil, false
}
