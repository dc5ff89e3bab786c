package service

import "sync"

// Inflight is the process-wide registry of geocode lookups currently being
// resolved, keyed by normalized address. It makes the "no two concurrent
// external calls for the same key" invariant structural: a lookup may only
// start once TryAcquire hands out a token, and every code path must release
// that token so a later call with the same address can retry.
type Inflight struct {
	mu   sync.Mutex
	keys map[string]*InflightToken
}

// InflightToken represents ownership of one in-flight key. Non-owners can
// block on Done() until the owner releases it.
type InflightToken struct {
	key  string
	done chan struct{}
}

// Done is closed when the owning lookup completes, regardless of outcome.
func (t *InflightToken) Done() <-chan struct{} { return t.done }

func NewInflight() *Inflight {
	return &Inflight{keys: make(map[string]*InflightToken)}
}

// TryAcquire claims key for the caller. On success acquired is true and the
// caller owns the returned token. When the key is already being resolved,
// acquired is false and the returned token is the current owner's, so the
// caller can wait on it instead of issuing a duplicate external call.
func (r *Inflight) TryAcquire(key string) (token *InflightToken, acquired bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.keys[key]; ok {
		return t, false
	}
	t := &InflightToken{key: key, done: make(chan struct{})}
	r.keys[key] = t
	return t, true
}

// Release removes the token's key from the registry and wakes all waiters.
// Releasing a token twice is a no-op.
func (r *Inflight) Release(token *InflightToken) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.keys[token.key] == token {
		delete(r.keys, token.key)
		close(token.done)
	}
}

// Holds reports whether key currently has an owner.
func (r *Inflight) Holds(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.keys[key]
	return ok
}
