// Package credclient is the account service's client for the credential
// service. Every call runs under its own deadline; transport failures and
// deadline expiry surface as common.ErrorUnavailable, never as a failed
// password check. Calls are not retried.
package credclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/logging"
	pb "github.com/dmitrijs2005/useraccounts/internal/proto"
	"github.com/dmitrijs2005/useraccounts/internal/requestid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

const DefaultTimeout = 5 * time.Second

type Client struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.CredentialServiceClient
	timeout     time.Duration
	logger      logging.Logger
}

// New prepares a client for endpointURL. The connection is established
// lazily on the first call. opts are appended to the default dial options.
func New(endpointURL string, timeout time.Duration, logger logging.Logger, opts ...grpc.DialOption) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(requestIDInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("credential service client: %w", err)
	}

	return &Client{
		endpointURL: endpointURL,
		conn:        conn,
		client:      pb.NewCredentialServiceClient(conn),
		timeout:     timeout,
		logger:      logger.With("module", "credclient", "endpoint", endpointURL),
	}, nil
}

func requestIDInterceptor(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
	return invoker(requestid.AppendOutgoing(ctx), method, req, reply, cc, opts...)
}

// Hash asks the credential service for a salted hash of password.
func (c *Client) Hash(ctx context.Context, userID int32, password string) (hash, salt []byte, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Hash(ctx, &pb.HashRequest{UserId: userID, Password: password})
	if err != nil {
		err = c.mapError(err)
		c.logger.Warn(ctx, "hash call failed", "user_id", userID, "error", err)
		return nil, nil, err
	}

	if len(resp.GetHashedPassword()) == 0 || len(resp.GetSalt()) == 0 {
		return nil, nil, fmt.Errorf("%w: hash response without credentials", common.ErrorUnavailable)
	}

	return resp.GetHashedPassword(), resp.GetSalt(), nil
}

// Validate asks the credential service whether password matches hash
// under salt.
func (c *Client) Validate(ctx context.Context, password string, hash, salt []byte) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Validate(ctx, &pb.ValidateRequest{Password: password, HashedPassword: hash, Salt: salt})
	if err != nil {
		err = c.mapError(err)
		c.logger.Warn(ctx, "validate call failed", "error", err)
		return false, err
	}

	return resp.GetOk(), nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
		}
		return fmt.Errorf("%w: rpc error: %v", common.ErrorUnavailable, err)
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	default:
		return fmt.Errorf("%w: %s: %s", common.ErrorUnavailable, st.Code(), st.Message())
	}
}
