/*
Package user contains core data structures and logic related to user identity and presence.

This file defines the Registry, the shared set of registered users keyed by id and by name.
*/
package user

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/randx"
)

// Registry tracks registered users and enforces unique display names.
// It is safe for concurrent use.
type Registry struct {
	// byID maps a user ID to the user.
	byID map[string]User

	// byName maps a display name to the owning user ID.
	byName map[string]string

	// order keeps user IDs in registration order for snapshots.
	order []string

	// newID generates user IDs.
	newID func() string

	// mu protects all of the above.
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewRegistry returns an empty Registry that issues UUID v4 user IDs.
func NewRegistry() *Registry {
	return newRegistry(randx.UserID)
}

func newRegistry(newID func() string) *Registry {
	return &Registry{
		byID:   make(map[string]User),
		byName: make(map[string]string),
		newID:  newID,
		logger: logx.Component("Registry"),
	}
}

// Register adds a user with the given name and a freshly generated ID.
// The name is stored as submitted; collisions use exact, case-sensitive equality.
func (r *Registry) Register(name string) (User, *errs.CustomError) {
	if strings.TrimSpace(name) == "" {
		return User{}, errs.NewError(errs.ErrEmptyName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[name]; taken {
		r.logger.Debug().Str("name", name).Msg("Registration rejected: name already taken.")
		return User{}, errs.NewError(errs.ErrNameTaken)
	}

	id := r.newID()
	for {
		if _, exists := r.byID[id]; !exists {
			break
		}
		r.logger.Warn().Str("user_id", id).Msg("Generated user ID collided, regenerating.")
		id = r.newID()
	}

	u := User{ID: id, Name: name}
	r.byID[id] = u
	r.byName[name] = id
	r.order = append(r.order, id)

	r.logger.Info().
		Str("user_id", id).
		Str("name", name).
		Int("total_users", len(r.byID)).
		Msg("User registered.")

	return u, nil
}

// RemoveByID removes the user with the given ID. The boolean is false if no such user exists.
func (r *Registry) RemoveByID(id string) (User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return User{}, false
	}

	r.removeLocked(u)
	return u, true
}

// RemoveByName removes the user holding the given name. The boolean is false if no such user exists.
func (r *Registry) RemoveByName(name string) (User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byName[name]
	if !ok {
		return User{}, false
	}

	u := r.byID[id]
	r.removeLocked(u)
	return u, true
}

func (r *Registry) removeLocked(u User) {
	delete(r.byID, u.ID)
	delete(r.byName, u.Name)

	for i, id := range r.order {
		if id == u.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.logger.Info().
		Str("user_id", u.ID).
		Str("name", u.Name).
		Int("total_users", len(r.byID)).
		Msg("User removed.")
}

// ByID looks up a user by ID.
func (r *Registry) ByID(id string) (User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	return u, ok
}

// ByName looks up a user by exact name.
func (r *Registry) ByName(name string) (User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[name]
	if !ok {
		return User{}, false
	}
	return r.byID[id], true
}

// Len returns the number of registered users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID)
}

// Snapshot returns a copy of all registered users in registration order.
// The result is never nil, so it encodes as an empty JSON array.
func (r *Registry) Snapshot() []User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, r.byID[id])
	}
	return users
}
