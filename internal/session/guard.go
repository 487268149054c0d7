package session

import (
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid id or password")

// Record is the persisted token shape: the opaque secret plus an expiry in
// epoch millis.
type Record struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"`
}

// Guard gates protected screens from the persisted token record. It is not a
// security boundary; the remote store does its own enforcement (none).
type Guard struct {
	Store        Store
	AdminID      string
	PasswordHash string
	Secret       string
	TTL          time.Duration

	// Now is swappable in tests. Defaults to time.Now.
	Now func() time.Time
}

func NewGuard(store Store, adminID, passwordHash, secret string, ttl time.Duration) *Guard {
	return &Guard{
		Store:        store,
		AdminID:      adminID,
		PasswordHash: passwordHash,
		Secret:       secret,
		TTL:          ttl,
		Now:          time.Now,
	}
}

func (g *Guard) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// IsValid reports whether the current viewer may see protected screens.
// Every failure path (missing record, malformed JSON, wrong secret, expiry
// at or before now) collapses to false; it never panics and never erases.
func (g *Guard) IsValid() bool {
	raw, err := g.Store.Get()
	if err != nil {
		return false
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return false
	}
	return rec.Token == g.Secret && rec.Expiry > g.now().UnixMilli()
}

// Login checks the supplied pair against the fixed expected credential. On
// match it persists a fresh token record with the full validity window; on
// mismatch nothing is written.
func (g *Guard) Login(id, password string) error {
	if id != g.AdminID {
		return ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(g.PasswordHash), []byte(password)) != nil {
		return ErrBadCreds
	}
	rec := Record{Token: g.Secret, Expiry: g.now().Add(g.TTL).UnixMilli()}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return g.Store.Set(string(b))
}

// Logout erases the token record unconditionally.
func (g *Guard) Logout() error {
	return g.Store.Clear()
}
