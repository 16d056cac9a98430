// Package session holds the live vault key and enforces the inactivity
// timeout. Every privileged operation passes through the Guard.
package session

import (
	"sync"
	"time"

	"github.com/CloudTigerx/password-manager/internal/common"
)

// DefaultTimeout is the inactivity window after which a session expires.
const DefaultTimeout = 15 * time.Minute

// Guard owns the session key. All access goes through its mutex, so the
// key can never be observed half-cleared and an expired key is wiped
// before any caller gets a result.
type Guard struct {
	mu           sync.Mutex
	key          []byte
	lastActivity time.Time
	timeout      time.Duration
	now          func() time.Time
}

// NewGuard returns an unauthenticated Guard with the given inactivity
// timeout. A non-positive timeout falls back to DefaultTimeout.
func NewGuard(timeout time.Duration) *Guard {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Guard{timeout: timeout, now: time.Now}
}

// Install replaces the session key with a copy of key, wiping any previous
// key first, and resets the activity clock.
func (g *Guard) Install(key []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	common.WipeByteArray(g.key)
	g.key = append([]byte(nil), key...)
	g.lastActivity = g.now()
}

// IsValid reports whether an unexpired session key is installed. A stale
// key found here is wiped and dropped immediately. The activity clock is
// not refreshed; only operations that actually proceed refresh it.
func (g *Guard) IsValid() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.validLocked()
}

// Touch refreshes the activity clock if a key is installed.
func (g *Guard) Touch() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.key != nil {
		g.lastActivity = g.now()
	}
}

// Begin atomically checks validity, refreshes the activity clock, and
// returns a copy of the session key for immediate use. The caller must
// wipe the copy when done. Returns common.ErrSessionExpired when no valid
// session exists.
func (g *Guard) Begin() ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.validLocked() {
		return nil, common.ErrSessionExpired
	}
	g.lastActivity = g.now()
	return append([]byte(nil), g.key...), nil
}

// Refresh is Begin without the key copy: it checks validity and refreshes
// the activity clock for operations that do not need the key.
func (g *Guard) Refresh() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.validLocked() {
		return common.ErrSessionExpired
	}
	g.lastActivity = g.now()
	return nil
}

// Clear wipes and drops the key and resets the activity clock. Safe to
// call in any state.
func (g *Guard) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clearLocked()
}

func (g *Guard) validLocked() bool {
	if g.key == nil {
		return false
	}
	if g.now().Sub(g.lastActivity) >= g.timeout {
		g.clearLocked()
		return false
	}
	return true
}

func (g *Guard) clearLocked() {
	common.WipeByteArray(g.key)
	g.key = nil
	g.lastActivity = time.Time{}
}
