// Package users orchestrates the credential lifecycle: a new user's password
// is hashed by the credential service before the record becomes visible, and
// a login is decided by the credential service alone.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/account/auth"
	"github.com/dmitrijs2005/useraccounts/internal/account/models"
	"github.com/dmitrijs2005/useraccounts/internal/account/registry"
	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/logging"
)

// Registry is the user store the service works on.
type Registry interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int32) (models.User, error)
	GetVersion(ctx context.Context, id int32) (models.User, registry.Version, error)
	Credentials(ctx context.Context, id int32) (hash, salt []byte, v registry.Version, err error)
	Reserve(ctx context.Context, u models.User) (registry.Reservation, error)
	Commit(ctx context.Context, res registry.Reservation, hash, salt []byte) (models.User, error)
	Abort(ctx context.Context, res registry.Reservation)
	UpdateIf(ctx context.Context, id int32, v registry.Version, u models.User) (models.User, error)
	Delete(ctx context.Context, id int32) error
}

// CredentialClient is the credential service as seen from here.
type CredentialClient interface {
	Hash(ctx context.Context, userID int32, password string) (hash, salt []byte, err error)
	Validate(ctx context.Context, password string, hash, salt []byte) (bool, error)
}

// Session is the result of a successful login.
type Session struct {
	UserID      int32     `json:"user_id"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type Service struct {
	registry      Registry
	credentials   CredentialClient
	jwtSecret     []byte
	tokenValidity time.Duration
	logger        logging.Logger
}

func NewService(r Registry, c CredentialClient, secretKey string, tokenValidity time.Duration, logger logging.Logger) *Service {
	return &Service{
		registry:      r,
		credentials:   c,
		jwtSecret:     []byte(secretKey),
		tokenValidity: tokenValidity,
		logger:        logger.With("module", "users"),
	}
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.registry.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int32) (models.User, error) {
	return s.registry.Get(ctx, id)
}

// Create stores a new user whose password has been hashed by the credential
// service. The id stays reserved, and invisible, while the hash call is in
// flight; if the call fails the reservation is released and the error
// returned, so no credential-less record is ever published.
func (s *Service) Create(ctx context.Context, in models.NewUser) (models.User, error) {
	res, err := s.registry.Reserve(ctx, models.User{ID: in.ID, Name: in.Name, Email: in.Email})
	if err != nil {
		return models.User{}, fmt.Errorf("create user %d: %w", in.ID, err)
	}

	hash, salt, err := s.credentials.Hash(ctx, in.ID, in.Password)
	if err != nil {
		s.registry.Abort(ctx, res)
		return models.User{}, fmt.Errorf("create user %d: %w", in.ID, err)
	}

	u, err := s.registry.Commit(ctx, res, hash, salt)
	if err != nil {
		s.registry.Abort(ctx, res)
		return models.User{}, fmt.Errorf("create user %d: %w", in.ID, err)
	}

	s.logger.Info(ctx, "User created", "user_id", u.ID)
	return u, nil
}

// Update replaces the user's attributes. A non-empty password is hashed by
// the credential service first and replaces the stored credentials. The
// write only lands on the record that was read before hashing: if it was
// deleted (and possibly created again) meanwhile, Update fails with
// common.ErrorNotFound and the new credentials are dropped.
func (s *Service) Update(ctx context.Context, id int32, in models.UpdateUser) (models.User, error) {
	_, version, err := s.registry.GetVersion(ctx, id)
	if err != nil {
		return models.User{}, fmt.Errorf("update user %d: %w", id, err)
	}

	u := models.User{ID: id, Name: in.Name, Email: in.Email}
	if in.Password != "" {
		hash, salt, err := s.credentials.Hash(ctx, id, in.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("update user %d: %w", id, err)
		}
		u.HashedPassword, u.Salt = hash, salt
	}

	updated, err := s.registry.UpdateIf(ctx, id, version, u)
	if err != nil {
		return models.User{}, fmt.Errorf("update user %d: %w", id, err)
	}

	s.logger.Info(ctx, "User updated", "user_id", id, "password_changed", in.Password != "")
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int32) error {
	if err := s.registry.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	s.logger.Info(ctx, "User deleted", "user_id", id)
	return nil
}

// Login checks password against the stored credentials through the
// credential service and returns a session token on success. No token is
// issued when the user was deleted or replaced while the check was running.
//
// Errors: common.ErrorNotFound for an unknown id, common.ErrorUnauthorized
// for a wrong password (or a user without credentials),
// common.ErrorUnavailable when the credential service cannot answer.
func (s *Service) Login(ctx context.Context, id int32, password string) (*Session, error) {
	hash, salt, version, err := s.registry.Credentials(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("login user %d: %w", id, err)
	}
	if len(hash) == 0 {
		return nil, common.ErrorUnauthorized
	}

	ok, err := s.credentials.Validate(ctx, password, hash, salt)
	if err != nil {
		return nil, fmt.Errorf("login user %d: %w", id, err)
	}
	if !ok {
		s.logger.Info(ctx, "Login rejected", "user_id", id)
		return nil, common.ErrorUnauthorized
	}

	_, current, err := s.registry.GetVersion(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("login user %d: %w", id, err)
	}
	if current != version {
		s.logger.Info(ctx, "Login dropped, user replaced during validation", "user_id", id)
		return nil, fmt.Errorf("login user %d: %w", id, common.ErrorNotFound)
	}

	expires := time.Now().Add(s.tokenValidity)
	token, err := auth.GenerateToken(id, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("login user %d: %w: %v", id, common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "User logged in", "user_id", id)
	return &Session{UserID: id, AccessToken: token, ExpiresAt: expires}, nil
}

// Authenticate resolves a session token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (models.User, error) {
	id, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.registry.Get(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		// the user was deleted after the token was issued
		return models.User{}, common.ErrInvalidToken
	}
	return u, err
}

// DefaultSeedUsers are the demo accounts created with -seed.
var DefaultSeedUsers = []models.NewUser{
	{ID: 1, Name: "Morgan", Email: "m@mail.com", Password: "1234"},
	{ID: 2, Name: "Cathal", Email: "c@mail.com", Password: "1111"},
	{ID: 3, Name: "Kevin", Email: "k@mail.com", Password: "2222"},
}

// Seed creates the given users, skipping ids that already exist.
func (s *Service) Seed(ctx context.Context, seed []models.NewUser) error {
	for _, in := range seed {
		_, err := s.Create(ctx, in)
		if errors.Is(err, common.ErrorConflict) {
			s.logger.Warn(ctx, "Seed user already exists", "user_id", in.ID)
			continue
		}
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return nil
}
