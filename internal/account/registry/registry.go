// Package registry is the account service's in-memory user store.
//
// Creation is two-phase: Reserve claims an id with a pending record that no
// reader can see, Commit publishes it together with its credentials, Abort
// gives the id back. All methods are safe for concurrent use and never block
// on anything but the registry's own lock.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/useraccounts/internal/account/models"
	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/logging"
)

type state int

const (
	statePending state = iota
	stateActive
)

type entry struct {
	user  models.User
	state state
	token uint64
}

// Reservation identifies one pending record. A reservation whose record was
// deleted, or deleted and created again, can no longer be committed.
type Reservation struct {
	ID    int32
	token uint64
}

// Version identifies one incarnation of a record. It is fixed when the id
// is reserved or created and survives updates; a record deleted and created
// again has a new Version.
type Version uint64

type Registry struct {
	mu     sync.RWMutex
	users  map[int32]*entry
	tokens uint64
	closed bool
	logger logging.Logger
}

func New(logger logging.Logger) *Registry {
	return &Registry{
		users:  make(map[int32]*entry),
		logger: logger.With("module", "registry"),
	}
}

// Close drops every record; later calls fail with common.ErrorClosed.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.users = nil
}

// List returns the committed users ordered by id.
func (r *Registry) List(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, common.ErrorClosed
	}

	users := make([]models.User, 0, len(r.users))
	for _, e := range r.users {
		if e.state == stateActive {
			users = append(users, e.user.Clone())
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

func (r *Registry) Get(ctx context.Context, id int32) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, err := r.activeLocked(id)
	if err != nil {
		return models.User{}, err
	}
	return e.user.Clone(), nil
}

// Credentials returns copies of the stored hash and salt of a committed
// user, with the Version they belong to. Hash and salt are nil for a user
// created without credentials.
func (r *Registry) Credentials(ctx context.Context, id int32) (hash, salt []byte, v Version, err error) {
	u, v, err := r.GetVersion(ctx, id)
	if err != nil {
		return nil, nil, 0, err
	}
	return u.HashedPassword, u.Salt, v, nil
}

// Create inserts a committed record in one step. u must carry both hash and
// salt or neither.
func (r *Registry) Create(ctx context.Context, u models.User) error {
	if err := u.CheckCredentials(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.freeLocked(u.ID); err != nil {
		return err
	}
	r.tokens++
	r.users[u.ID] = &entry{user: u.Clone(), state: stateActive, token: r.tokens}

	r.logger.Debug(ctx, "user created", "user_id", u.ID)
	return nil
}

// Reserve claims u.ID with a pending record. Credentials on u are ignored;
// they are set by Commit.
func (r *Registry) Reserve(ctx context.Context, u models.User) (Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.freeLocked(u.ID); err != nil {
		return Reservation{}, err
	}

	u = u.Clone()
	u.HashedPassword, u.Salt = nil, nil

	r.tokens++
	r.users[u.ID] = &entry{user: u, state: statePending, token: r.tokens}

	return Reservation{ID: u.ID, token: r.tokens}, nil
}

// Commit publishes a reserved record with its credentials. It fails with
// common.ErrorNotFound when the reservation was deleted in the meantime, in
// which case nothing is written.
func (r *Registry) Commit(ctx context.Context, res Reservation, hash, salt []byte) (models.User, error) {
	if len(hash) == 0 || len(salt) == 0 {
		return models.User{}, fmt.Errorf("commit user %d: %w", res.ID, common.ErrorValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return models.User{}, common.ErrorClosed
	}

	e, ok := r.users[res.ID]
	if !ok || e.token != res.token || e.state != statePending {
		r.logger.Warn(ctx, "discarding credentials for a reservation that is gone", "user_id", res.ID)
		return models.User{}, common.ErrorNotFound
	}

	e.user.HashedPassword = append([]byte(nil), hash...)
	e.user.Salt = append([]byte(nil), salt...)
	e.state = stateActive

	r.logger.Debug(ctx, "user created", "user_id", res.ID)
	return e.user.Clone(), nil
}

// Abort releases a reservation that is still pending. It is a no-op when
// the reservation was already committed, deleted or replaced.
func (r *Registry) Abort(ctx context.Context, res Reservation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	if e, ok := r.users[res.ID]; ok && e.token == res.token && e.state == statePending {
		delete(r.users, res.ID)
	}
}

// GetVersion is Get plus the Version of the record, for a later UpdateIf.
func (r *Registry) GetVersion(ctx context.Context, id int32) (models.User, Version, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, err := r.activeLocked(id)
	if err != nil {
		return models.User{}, 0, err
	}
	return e.user.Clone(), Version(e.token), nil
}

// Update replaces a committed user's attributes. Credentials are replaced
// when u carries them and kept otherwise. u.ID is ignored in favour of id.
func (r *Registry) Update(ctx context.Context, id int32, u models.User) (models.User, error) {
	if err := u.CheckCredentials(); err != nil {
		return models.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.activeLocked(id)
	if err != nil {
		return models.User{}, err
	}
	return r.replaceLocked(e, id, u), nil
}

// UpdateIf is Update for the record incarnation v only. When the record was
// deleted, or deleted and created again, since v was read it fails with
// common.ErrorNotFound and nothing is written.
func (r *Registry) UpdateIf(ctx context.Context, id int32, v Version, u models.User) (models.User, error) {
	if err := u.CheckCredentials(); err != nil {
		return models.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.activeLocked(id)
	if err != nil {
		return models.User{}, err
	}
	if e.token != uint64(v) {
		r.logger.Warn(ctx, "discarding update for a record that was replaced", "user_id", id)
		return models.User{}, common.ErrorNotFound
	}
	return r.replaceLocked(e, id, u), nil
}

// replaceLocked writes u into e. Caller holds r.mu for writing.
func (r *Registry) replaceLocked(e *entry, id int32, u models.User) models.User {
	u = u.Clone()
	u.ID = id
	if !u.HasCredentials() {
		u.HashedPassword, u.Salt = e.user.HashedPassword, e.user.Salt
	}
	e.user = u
	return e.user.Clone()
}

// Delete removes the record for id, pending or committed.
func (r *Registry) Delete(ctx context.Context, id int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return common.ErrorClosed
	}
	if _, ok := r.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.users, id)

	r.logger.Debug(ctx, "user deleted", "user_id", id)
	return nil
}

// activeLocked returns the committed entry for id. Caller holds r.mu.
func (r *Registry) activeLocked(id int32) (*entry, error) {
	if r.closed {
		return nil, common.ErrorClosed
	}
	e, ok := r.users[id]
	if !ok || e.state != stateActive {
		return nil, common.ErrorNotFound
	}
	return e, nil
}

// freeLocked checks that id is unused. Caller holds r.mu for writing.
func (r *Registry) freeLocked(id int32) error {
	if r.closed {
		return common.ErrorClosed
	}
	if _, ok := r.users[id]; ok {
		return common.ErrorConflict
	}
	return nil
}
