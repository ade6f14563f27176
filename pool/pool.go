// Package pool manages a registry of named arenas, the way
// buffer.BufferPool manages a registry of named buffers: one process-wide
// table protected by a single lock, handing out references by name rather
// than by raw *alloc.Arena so callers never have to coordinate construction
// themselves.
package pool

import (
	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"

	"github.com/naveen246/kitealloc/alloc"
)

// Entry is one arena registered with a Pool, identified by Name.
type Entry struct {
	Name  string
	Arena *alloc.Arena
}

// Pool is a registry of independently-usable named arenas sharing one lock
// for registration and lookup (not for the arenas' own operations, which
// remain the caller's responsibility to serialize — see alloc.Arena's
// thread-safety note). The zero value is not usable; construct with New.
type Pool struct {
	deadlock.Mutex
	arenas map[string]*alloc.Arena
}

// New returns an empty Pool.
func New() *Pool {
	return &Pool{arenas: make(map[string]*alloc.Arena)}
}

// Register adds buf to the pool as a fresh arena under name, returning
// ErrAlreadyRegistered if name is already in use. If name is empty, a uuid
// is generated and used instead, and that generated name is returned.
func (p *Pool) Register(name string, buf []byte) (string, error) {
	a, err := alloc.New(buf)
	if err != nil {
		return "", err
	}
	return p.add(name, a)
}

// Adopt is Register's counterpart for a buffer that already holds a valid
// arena image (for example, one loaded from mmapstore.Open), skipping
// reinitialization.
func (p *Pool) Adopt(name string, buf []byte) (string, error) {
	a, err := alloc.Adopt(buf)
	if err != nil {
		return "", err
	}
	return p.add(name, a)
}

func (p *Pool) add(name string, a *alloc.Arena) (string, error) {
	p.Lock()
	defer p.Unlock()

	if name == "" {
		name = uuid.NewString()
	}
	if _, exists := p.arenas[name]; exists {
		return "", ErrAlreadyRegistered
	}
	p.arenas[name] = a
	return name, nil
}

// Get returns the arena registered under name, or ErrUnknownArena if no such
// arena exists.
func (p *Pool) Get(name string) (*alloc.Arena, error) {
	p.Lock()
	defer p.Unlock()

	a, ok := p.arenas[name]
	if !ok {
		return nil, ErrUnknownArena
	}
	return a, nil
}

// Forget removes name from the pool without otherwise touching its backing
// bytes; the caller remains responsible for releasing them (closing an
// mmapstore.Store, say). Forgetting an unknown name is a no-op.
func (p *Pool) Forget(name string) {
	p.Lock()
	defer p.Unlock()
	delete(p.arenas, name)
}

// Names returns every currently registered arena name, in no particular
// order.
func (p *Pool) Names() []string {
	p.Lock()
	defer p.Unlock()

	names := make([]string, 0, len(p.arenas))
	for name := range p.arenas {
		names = append(names, name)
	}
	return names
}
