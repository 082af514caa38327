package data

import (
	"context"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/search_hub/app/display/internal/conf"
	"github.com/iWorld-y/search_hub/app/display/internal/repo"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/engine"
)

const defaultSessionIdle = 30 * time.Minute

type sessionEntry struct {
	session  *engine.Session
	lastUsed time.Time
}

type sessionRepo struct {
	data *Data
	idle time.Duration
	now  func() time.Time
	log  *log.Helper

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewSessionRepo 创建会话仓库，空闲超过 session_idle 的会话在下次访问时回收
func NewSessionRepo(data *Data, c *conf.Hub, logger log.Logger) repo.SessionRepo {
	idle := defaultSessionIdle
	if c != nil && c.SessionIdle != "" {
		if d, err := time.ParseDuration(c.SessionIdle); err == nil && d > 0 {
			idle = d
		}
	}
	return &sessionRepo{
		data:     data,
		idle:     idle,
		now:      time.Now,
		log:      log.NewHelper(logger),
		sessions: make(map[string]*sessionEntry),
	}
}

func (r *sessionRepo) Session(ctx context.Context, id string) *engine.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for k, e := range r.sessions {
		if k != id && now.Sub(e.lastUsed) > r.idle {
			delete(r.sessions, k)
			r.log.WithContext(ctx).Debugf("session %s expired", k)
		}
	}

	e, ok := r.sessions[id]
	if !ok {
		e = &sessionEntry{session: r.data.profile.NewSession(r.data.providers, r.data.cfg, nil)}
		r.sessions[id] = e
		r.log.WithContext(ctx).Infof("new session %s", id)
	}
	e.lastUsed = now
	return e.session
}

func (r *sessionRepo) Drop(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *sessionRepo) DropAll(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log.WithContext(ctx).Infof("drop %d sessions", len(r.sessions))
	clear(r.sessions)
}
