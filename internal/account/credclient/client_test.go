package credclient

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	cgrpc "github.com/dmitrijs2005/useraccounts/internal/credential/grpc"
	"github.com/dmitrijs2005/useraccounts/internal/credential/hasher"
	"github.com/dmitrijs2005/useraccounts/internal/logging"
	pb "github.com/dmitrijs2005/useraccounts/internal/proto"
	"github.com/dmitrijs2005/useraccounts/internal/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

/*************
 * Fake pb client
 *************/

type fakePB struct {
	lastHashReq     *pb.HashRequest
	lastValidateReq *pb.ValidateRequest
	lastDeadline    time.Time
	hadDeadline     bool

	hashResp *pb.HashResponse
	hashErr  error

	validateResp *pb.ValidateResponse
	validateErr  error

	block bool
}

func (f *fakePB) wait(ctx context.Context) error {
	f.lastDeadline, f.hadDeadline = ctx.Deadline()
	if f.block {
		<-ctx.Done()
		return status.FromContextError(ctx.Err()).Err()
	}
	return nil
}

func (f *fakePB) Hash(ctx context.Context, in *pb.HashRequest, opts ...grpc.CallOption) (*pb.HashResponse, error) {
	f.lastHashReq = in
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.hashResp, f.hashErr
}

func (f *fakePB) Validate(ctx context.Context, in *pb.ValidateRequest, opts ...grpc.CallOption) (*pb.ValidateResponse, error) {
	f.lastValidateReq = in
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.validateResp, f.validateErr
}

func newFakeClient(f *fakePB, timeout time.Duration) *Client {
	return &Client{client: f, timeout: timeout, logger: logging.Nop()}
}

/*************
 * Hash / Validate
 *************/

func TestHash_Success(t *testing.T) {
	f := &fakePB{hashResp: &pb.HashResponse{UserId: 1, HashedPassword: []byte("H"), Salt: []byte("S")}}
	c := newFakeClient(f, time.Second)

	hash, salt, err := c.Hash(context.Background(), 1, "1234")
	require.NoError(t, err)
	assert.Equal(t, []byte("H"), hash)
	assert.Equal(t, []byte("S"), salt)

	assert.Equal(t, int32(1), f.lastHashReq.UserId)
	assert.Equal(t, "1234", f.lastHashReq.Password)
	require.True(t, f.hadDeadline, "every call carries a deadline")
	assert.WithinDuration(t, time.Now().Add(time.Second), f.lastDeadline, time.Second)
}

func TestHash_EmptyResponseIsUnavailable(t *testing.T) {
	f := &fakePB{hashResp: &pb.HashResponse{UserId: 1, HashedPassword: []byte("H")}}
	c := newFakeClient(f, time.Second)

	_, _, err := c.Hash(context.Background(), 1, "1234")
	assert.ErrorIs(t, err, common.ErrorUnavailable)
}

func TestHash_MapsError(t *testing.T) {
	f := &fakePB{hashErr: status.Error(codes.Unavailable, "down")}
	c := newFakeClient(f, time.Second)

	_, _, err := c.Hash(context.Background(), 1, "1234")
	assert.ErrorIs(t, err, common.ErrorUnavailable)
}

func TestHash_TimeoutIsUnavailable(t *testing.T) {
	f := &fakePB{block: true}
	c := newFakeClient(f, 20*time.Millisecond)

	start := time.Now()
	_, _, err := c.Hash(context.Background(), 1, "1234")
	assert.ErrorIs(t, err, common.ErrorUnavailable)
	assert.Less(t, time.Since(start), time.Second)
}

func TestValidate(t *testing.T) {
	for _, ok := range []bool{true, false} {
		f := &fakePB{validateResp: &pb.ValidateResponse{Ok: ok}}
		c := newFakeClient(f, time.Second)

		got, err := c.Validate(context.Background(), "1234", []byte("H"), []byte("S"))
		require.NoError(t, err)
		assert.Equal(t, ok, got)
		assert.Equal(t, "1234", f.lastValidateReq.Password)
		assert.Equal(t, []byte("H"), f.lastValidateReq.HashedPassword)
		assert.Equal(t, []byte("S"), f.lastValidateReq.Salt)
	}
}

func TestValidate_ServiceDownIsNotAWrongPassword(t *testing.T) {
	f := &fakePB{validateErr: status.Error(codes.DeadlineExceeded, "slow")}
	c := newFakeClient(f, time.Second)

	ok, err := c.Validate(context.Background(), "1234", []byte("H"), []byte("S"))
	assert.False(t, ok)
	assert.ErrorIs(t, err, common.ErrorUnavailable)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)
}

/*************
 * mapError
 *************/

func TestMapError(t *testing.T) {
	c := &Client{}

	tests := []struct {
		err  error
		want error
	}{
		{status.Error(codes.Unavailable, "x"), common.ErrorUnavailable},
		{status.Error(codes.DeadlineExceeded, "x"), common.ErrorUnavailable},
		{status.Error(codes.Internal, "x"), common.ErrorUnavailable},
		{status.Error(codes.Unimplemented, "x"), common.ErrorUnavailable},
		{status.Error(codes.InvalidArgument, "x"), common.ErrorValidation},
		{context.DeadlineExceeded, common.ErrorUnavailable},
		{errors.New("plain"), common.ErrorUnavailable},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, c.mapError(tt.err), tt.want, tt.err.Error())
	}
}

/*************
 * interceptor
 *************/

func TestRequestIDInterceptor(t *testing.T) {
	ctx := requestid.NewContext(context.Background(), "req-9")

	var got []string
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		got = md.Get(common.RequestIDHeaderName)
		return nil
	}

	require.NoError(t, requestIDInterceptor(ctx, "/svc/Hash", nil, nil, nil, invoker))
	assert.Equal(t, []string{"req-9"}, got)
}

/*************
 * end to end over bufconn
 *************/

func startCredentialService(t *testing.T) *Client {
	t.Helper()

	kdf, err := hasher.NewKDF(hasher.Params{Algorithm: hasher.AlgorithmArgon2id, KeyLength: 32, Argon2Time: 1, Argon2MemoryKiB: 8 * 1024, Argon2Threads: 1})
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	srv := cgrpc.NewGRPCServer("bufconn", logging.Nop(), hasher.NewService(kdf, common.DefaultSaltSize))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Serve(ctx, lis)
	}()

	c, err := New("passthrough:///bufconn", 5*time.Second, logging.Nop(),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
		cancel()
		<-done
	})
	return c
}

func TestClient_EndToEnd(t *testing.T) {
	c := startCredentialService(t)
	ctx := requestid.NewContext(context.Background(), "e2e")

	hash, salt, err := c.Hash(ctx, 1, "1234")
	require.NoError(t, err)
	assert.Len(t, hash, 32)
	assert.Len(t, salt, common.DefaultSaltSize)

	ok, err := c.Validate(ctx, "1234", hash, salt)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Validate(ctx, "wrong", hash, salt)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = c.Hash(ctx, 2, "")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestClient_NothingListening(t *testing.T) {
	c, err := New("passthrough:///127.0.0.1:1", 500*time.Millisecond, logging.Nop())
	require.NoError(t, err)
	defer c.Close()

	_, _, err = c.Hash(context.Background(), 1, "1234")
	assert.ErrorIs(t, err, common.ErrorUnavailable)
}

func TestNew_DefaultTimeout(t *testing.T) {
	c, err := New("passthrough:///127.0.0.1:1", 0, logging.Nop())
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, DefaultTimeout, c.timeout)
}
