package services

import (
	"context"
	"log"
	"sync"
	"time"

	"alfredoptarigan/resume-optimizer/internal/workflow"
)

// SessionRegistry keeps the view state of every active visitor in memory.
type SessionRegistry interface {
	Get(id string) *workflow.Session
	Len() int
	Sweep(now time.Time) int
	Start(ctx context.Context)
	Stop()
}

type sessionEntry struct {
	session  *workflow.Session
	lastSeen time.Time
}

type sessionRegistry struct {
	mu            sync.Mutex
	sessions      map[string]*sessionEntry
	flow          *workflow.Flow
	ttl           time.Duration
	sweepInterval time.Duration
	wg            sync.WaitGroup
	stopChan      chan struct{}
	stopOnce      sync.Once
	now           func() time.Time
}

func NewSessionRegistry(flow *workflow.Flow, ttl, sweepInterval time.Duration) SessionRegistry {
	return &sessionRegistry{
		sessions:      make(map[string]*sessionEntry),
		flow:          flow,
		ttl:           ttl,
		sweepInterval: sweepInterval,
		stopChan:      make(chan struct{}),
		now:           time.Now,
	}
}

// Get returns the session for id, creating it on first use.
func (r *sessionRegistry) Get(id string) *workflow.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		entry = &sessionEntry{session: workflow.NewSession()}
		r.sessions[id] = entry
	}
	entry.lastSeen = r.now()
	return entry.session
}

func (r *sessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the TTL and removes their
// staged resumes. It returns the number of sessions dropped.
func (r *sessionRegistry) Sweep(now time.Time) int {
	r.mu.Lock()
	var expired []*workflow.Session
	for id, entry := range r.sessions {
		if now.Sub(entry.lastSeen) > r.ttl {
			expired = append(expired, entry.session)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		r.flow.Discard(s)
	}
	return len(expired)
}

// Start implements SessionRegistry.
func (r *sessionRegistry) Start(ctx context.Context) {
	if r.sweepInterval <= 0 {
		return
	}

	r.wg.Add(1)
	go r.sweepExpired(ctx)

	log.Printf("🧹 Session sweeper started (ttl %s)\n", r.ttl)
}

// Stop implements SessionRegistry. Remaining sessions are discarded.
func (r *sessionRegistry) Stop() {
	r.stopOnce.Do(func() {
		log.Println("🛑 Stopping session sweeper...")
		close(r.stopChan)
		r.wg.Wait()

		r.mu.Lock()
		remaining := make([]*workflow.Session, 0, len(r.sessions))
		for id, entry := range r.sessions {
			remaining = append(remaining, entry.session)
			delete(r.sessions, id)
		}
		r.mu.Unlock()

		for _, s := range remaining {
			r.flow.Discard(s)
		}
		log.Println("✅ Session sweeper stopped")
	})
}

func (r *sessionRegistry) sweepExpired(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(r.now()); n > 0 {
				log.Printf("🧹 Dropped %d expired sessions\n", n)
			}
		}
	}
}
