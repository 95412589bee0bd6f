package users

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/account/auth"
	"github.com/dmitrijs2005/useraccounts/internal/account/models"
	"github.com/dmitrijs2005/useraccounts/internal/account/registry"
	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type hashCall struct {
	UserID   int32
	Password string
}

// fakeCredentials derives hash = "h:" + salt + ":" + password so a wrong
// password or salt never validates.
type fakeCredentials struct {
	mu             sync.Mutex
	hashCalls      []hashCall
	validates      int32
	hashErr        error
	validErr       error
	beforeHash     func()
	beforeValidate func()
}

func (f *fakeCredentials) Hash(_ context.Context, userID int32, password string) ([]byte, []byte, error) {
	if f.beforeHash != nil {
		f.beforeHash()
	}
	f.mu.Lock()
	f.hashCalls = append(f.hashCalls, hashCall{userID, password})
	f.mu.Unlock()
	if f.hashErr != nil {
		return nil, nil, f.hashErr
	}
	salt := []byte{byte(userID), 0xAA}
	return derive(password, salt), salt, nil
}

func (f *fakeCredentials) Validate(_ context.Context, password string, hash, salt []byte) (bool, error) {
	atomic.AddInt32(&f.validates, 1)
	if f.beforeValidate != nil {
		f.beforeValidate()
	}
	if f.validErr != nil {
		return false, f.validErr
	}
	return bytes.Equal(derive(password, salt), hash), nil
}

func (f *fakeCredentials) calls() []hashCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]hashCall(nil), f.hashCalls...)
}

func derive(password string, salt []byte) []byte {
	out := append([]byte("h:"), salt...)
	out = append(out, ':')
	return append(out, password...)
}

func newService(t *testing.T) (*Service, *registry.Registry, *fakeCredentials) {
	t.Helper()
	reg := registry.New(logging.Nop())
	t.Cleanup(reg.Close)
	creds := &fakeCredentials{}
	return NewService(reg, creds, testSecret, time.Hour, logging.Nop()), reg, creds
}

func morgan() models.NewUser {
	return models.NewUser{ID: 1, Name: "Morgan", Email: "m@mail.com", Password: "1234"}
}

func TestService_MorganScenario(t *testing.T) {
	ctx := context.Background()
	s, _, creds := newService(t)

	created, err := s.Create(ctx, morgan())
	require.NoError(t, err)
	assert.Equal(t, []hashCall{{UserID: 1, Password: "1234"}}, creds.calls())
	assert.NotEmpty(t, created.HashedPassword)
	assert.NotEmpty(t, created.Salt)

	stored, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, created, stored)

	session, err := s.Login(ctx, 1, "1234")
	require.NoError(t, err)
	assert.Equal(t, int32(1), session.UserID)
	id, err := auth.GetUserIDFromToken(session.AccessToken, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, int32(1), id)

	_, err = s.Login(ctx, 1, "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestService_StoredRecordHasNoPlaintext(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)

	in := morgan()
	in.Password = "plain-secret-value"
	_, err := s.Create(ctx, in)
	require.NoError(t, err)

	u, err := s.Get(ctx, in.ID)
	require.NoError(t, err)
	for _, field := range []string{u.Name, u.Email} {
		assert.NotContains(t, field, in.Password)
	}
	// the fake hash embeds the plaintext; the stored value must be exactly
	// what the credential service returned, never the raw password
	assert.NotEqual(t, []byte(in.Password), u.HashedPassword)
	assert.NotEqual(t, []byte(in.Password), u.Salt)
}

func TestService_CredentialsAreAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s, reg, _ := newService(t)

	for _, in := range DefaultSeedUsers {
		_, err := s.Create(ctx, in)
		require.NoError(t, err)
	}
	require.NoError(t, reg.Create(ctx, models.User{ID: 10, Name: "No Creds"}))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	for _, u := range list {
		assert.Equal(t, len(u.HashedPassword) > 0, len(u.Salt) > 0, "user %d", u.ID)
	}
}

func TestService_LoginUnknownIsNotFound(t *testing.T) {
	s, _, creds := newService(t)

	_, err := s.Login(context.Background(), 42, "anything")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Zero(t, atomic.LoadInt32(&creds.validates))
}

func TestService_LoginWithoutCredentialsIsUnauthorized(t *testing.T) {
	ctx := context.Background()
	s, reg, creds := newService(t)
	require.NoError(t, reg.Create(ctx, models.User{ID: 5, Name: "Bare"}))

	_, err := s.Login(ctx, 5, "")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Zero(t, atomic.LoadInt32(&creds.validates))
}

func TestService_LoginPropagatesUnavailable(t *testing.T) {
	ctx := context.Background()
	s, _, creds := newService(t)
	_, err := s.Create(ctx, morgan())
	require.NoError(t, err)

	creds.validErr = common.ErrorUnavailable
	_, err = s.Login(ctx, 1, "1234")
	assert.ErrorIs(t, err, common.ErrorUnavailable)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)
}

func TestService_DeleteThenEverythingIsNotFound(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)
	_, err := s.Create(ctx, morgan())
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, 1))

	_, err = s.Get(ctx, 1)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = s.Update(ctx, 1, models.UpdateUser{Name: "x", Email: "x@mail.com"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = s.Login(ctx, 1, "1234")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 1), common.ErrorNotFound)
}

func TestService_Create_DuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	s, _, creds := newService(t)
	_, err := s.Create(ctx, morgan())
	require.NoError(t, err)

	dup := morgan()
	dup.Name = "Impostor"
	_, err = s.Create(ctx, dup)
	assert.ErrorIs(t, err, common.ErrorConflict)
	assert.Len(t, creds.calls(), 1, "no hash call for a taken id")

	u, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Morgan", u.Name)
}

func TestService_Create_ConcurrentSameID(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)

	const n = 16
	var (
		wg        sync.WaitGroup
		ok        int32
		conflicts int32
		start     = make(chan struct{})
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := s.Create(ctx, morgan())
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case errors.Is(err, common.ErrorConflict):
				atomic.AddInt32(&conflicts, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), ok)
	assert.Equal(t, int32(n-1), conflicts)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotEmpty(t, list[0].HashedPassword)
}

func TestService_Create_HashFailureLeavesNoRecord(t *testing.T) {
	ctx := context.Background()
	s, _, creds := newService(t)
	creds.hashErr = common.ErrorUnavailable

	_, err := s.Create(ctx, morgan())
	assert.ErrorIs(t, err, common.ErrorUnavailable)

	_, err = s.Get(ctx, 1)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	creds.hashErr = nil
	_, err = s.Create(ctx, morgan())
	require.NoError(t, err, "the id is free again after a failed create")
}

func TestService_Create_PendingIsInvisible(t *testing.T) {
	ctx := context.Background()
	s, _, creds := newService(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	creds.beforeHash = func() {
		close(entered)
		<-release
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.Create(ctx, morgan())
		done <- err
	}()
	<-entered

	_, err := s.Get(ctx, 1)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = s.Login(ctx, 1, "1234")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	close(release)
	require.NoError(t, <-done)

	_, err = s.Login(ctx, 1, "1234")
	assert.NoError(t, err)
}

func TestService_Create_DeleteWhileHashing(t *testing.T) {
	ctx := context.Background()
	s, _, creds := newService(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	creds.beforeHash = func() {
		close(entered)
		<-release
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.Create(ctx, morgan())
		done <- err
	}()
	<-entered

	require.NoError(t, s.Delete(ctx, 1))
	close(release)

	assert.ErrorIs(t, <-done, common.ErrorNotFound)
	_, err := s.Get(ctx, 1)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	s, _, creds := newService(t)
	before, err := s.Create(ctx, morgan())
	require.NoError(t, err)

	t.Run("attributes only keeps credentials", func(t *testing.T) {
		u, err := s.Update(ctx, 1, models.UpdateUser{Name: "Morgan B", Email: "mb@mail.com"})
		require.NoError(t, err)
		assert.Equal(t, "Morgan B", u.Name)
		assert.Equal(t, before.HashedPassword, u.HashedPassword)
		assert.Len(t, creds.calls(), 1)

		_, err = s.Login(ctx, 1, "1234")
		assert.NoError(t, err)
	})

	t.Run("password is re-hashed", func(t *testing.T) {
		_, err := s.Update(ctx, 1, models.UpdateUser{Name: "Morgan", Email: "m@mail.com", Password: "5678"})
		require.NoError(t, err)
		assert.Equal(t, hashCall{UserID: 1, Password: "5678"}, creds.calls()[1])

		_, err = s.Login(ctx, 1, "1234")
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
		_, err = s.Login(ctx, 1, "5678")
		assert.NoError(t, err)
	})

	t.Run("hash failure keeps old credentials", func(t *testing.T) {
		creds.hashErr = common.ErrorUnavailable
		defer func() { creds.hashErr = nil }()

		_, err := s.Update(ctx, 1, models.UpdateUser{Name: "Z", Email: "z@mail.com", Password: "0000"})
		assert.ErrorIs(t, err, common.ErrorUnavailable)

		u, err := s.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Morgan", u.Name)
		_, err = s.Login(ctx, 1, "5678")
		assert.NoError(t, err)
	})
}

// blockFirst returns a hook that parks the first caller until release is
// closed and lets later callers through.
func blockFirst(entered chan<- struct{}, release <-chan struct{}) func() {
	var calls int32
	return func() {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(entered)
			<-release
		}
	}
}

func TestService_Update_PasswordRacesDeleteAndRecreate(t *testing.T) {
	ctx := context.Background()
	s, _, creds := newService(t)
	_, err := s.Create(ctx, morgan())
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	creds.beforeHash = blockFirst(entered, release)

	done := make(chan error, 1)
	go func() {
		_, err := s.Update(ctx, 1, models.UpdateUser{Name: "Stale", Email: "s@mail.com", Password: "stale"})
		done <- err
	}()
	<-entered

	require.NoError(t, s.Delete(ctx, 1))
	_, err = s.Create(ctx, models.NewUser{ID: 1, Name: "Fresh", Email: "f@mail.com", Password: "fresh"})
	require.NoError(t, err)
	close(release)

	assert.ErrorIs(t, <-done, common.ErrorNotFound)

	u, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Fresh", u.Name)
	_, err = s.Login(ctx, 1, "fresh")
	assert.NoError(t, err)
	_, err = s.Login(ctx, 1, "stale")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestService_Login_UserDeletedDuringValidate(t *testing.T) {
	ctx := context.Background()
	s, _, creds := newService(t)
	_, err := s.Create(ctx, morgan())
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	creds.beforeValidate = blockFirst(entered, release)

	done := make(chan error, 1)
	go func() {
		_, err := s.Login(ctx, 1, "1234")
		done <- err
	}()
	<-entered

	require.NoError(t, s.Delete(ctx, 1))
	close(release)

	assert.ErrorIs(t, <-done, common.ErrorNotFound)
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)
	_, err := s.Create(ctx, morgan())
	require.NoError(t, err)

	session, err := s.Login(ctx, 1, "1234")
	require.NoError(t, err)

	u, err := s.Authenticate(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "Morgan", u.Name)

	_, err = s.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	require.NoError(t, s.Delete(ctx, 1))
	_, err = s.Authenticate(ctx, session.AccessToken)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestService_Seed(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)

	require.NoError(t, s.Seed(ctx, DefaultSeedUsers))
	require.NoError(t, s.Seed(ctx, DefaultSeedUsers), "seeding twice skips existing ids")

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Morgan", list[0].Name)
	assert.Equal(t, "Cathal", list[1].Name)
	assert.Equal(t, "Kevin", list[2].Name)

	for _, in := range DefaultSeedUsers {
		_, err := s.Login(ctx, in.ID, in.Password)
		assert.NoError(t, err, in.Name)
	}
}

func TestService_SeedStopsOnUnavailable(t *testing.T) {
	s, _, creds := newService(t)
	creds.hashErr = common.ErrorUnavailable

	err := s.Seed(context.Background(), DefaultSeedUsers)
	assert.ErrorIs(t, err, common.ErrorUnavailable)
}
