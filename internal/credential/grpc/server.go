package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/useraccounts/internal/logging"
	pb "github.com/dmitrijs2005/useraccounts/internal/proto"
	"google.golang.org/grpc"
)

// passwordHasher is the part of hasher.Service the handlers need.
type passwordHasher interface {
	Hash(password []byte) (hash, salt []byte, err error)
	Validate(password, expected, salt []byte) bool
}

type GRPCServer struct {
	pb.UnimplementedCredentialServiceServer
	address string
	hasher  passwordHasher
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, h passwordHasher) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		hasher:  h,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.requestInterceptor),
	)

	pb.RegisterCredentialServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
