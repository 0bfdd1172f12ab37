package session_repo

import (
	"sync"
	"time"
	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"
)

// Сессии живут только в памяти процесса
type repo struct {
	mtx      sync.RWMutex
	sessions map[string]*model.GameSession
}

func NewSessionRepository() repository.SessionRepository {
	return &repo{
		sessions: make(map[string]*model.GameSession),
	}
}

// GetOrCreate Вернуть сессию, создав ее в фазе menu при первом обращении.
// Обновляет время последней активности
func (r *repo) GetOrCreate(id string, now time.Time) *model.GameSession {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	sess, ok := r.sessions[id]
	if !ok {
		sess = model.NewGameSession(id, now)
		r.sessions[id] = sess
	}
	sess.LastSeen = now
	return sess
}

func (r *repo) Get(id string) (*model.GameSession, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

func (r *repo) Delete(id string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.sessions, id)
}

// IdleSince ID сессий без активности с момента before
func (r *repo) IdleSince(before time.Time) []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	var ids []string
	for id, sess := range r.sessions {
		if sess.LastSeen.Before(before) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r *repo) Count() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.sessions)
}
