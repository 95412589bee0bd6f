// Package requestid carries a per-request correlation id through contexts,
// HTTP headers and gRPC metadata.
package requestid

import (
	"context"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"
)

type ctxKey struct{}

// New returns a fresh random id.
func New() string {
	return uuid.NewString()
}

// NewContext returns ctx carrying id.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// FromIncoming returns the id sent by the gRPC peer, or a new one when the
// peer did not send any.
func FromIncoming(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.RequestIDHeaderName); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return New()
}

// AppendOutgoing adds the id stored in ctx, if any, to the outgoing gRPC
// metadata.
func AppendOutgoing(ctx context.Context) context.Context {
	id := FromContext(ctx)
	if id == "" {
		return ctx
	}
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Set(common.RequestIDHeaderName, id)
	return metadata.NewOutgoingContext(ctx, md)
}
