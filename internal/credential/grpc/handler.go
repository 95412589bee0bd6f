package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	pb "github.com/dmitrijs2005/useraccounts/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Hash(ctx context.Context, req *pb.HashRequest) (*pb.HashResponse, error) {
	password := []byte(req.GetPassword())
	defer common.WipeByteArray(password)

	hash, salt, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return nil, status.Error(codes.InvalidArgument, "password is required")
		}
		s.logger.Error(ctx, "hash failed", "user_id", req.GetUserId(), "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Debug(ctx, "Password hashed", "user_id", req.GetUserId())
	return &pb.HashResponse{UserId: req.GetUserId(), HashedPassword: hash, Salt: salt}, nil
}

func (s *GRPCServer) Validate(ctx context.Context, req *pb.ValidateRequest) (*pb.ValidateResponse, error) {
	if len(req.GetHashedPassword()) == 0 || len(req.GetSalt()) == 0 {
		return nil, status.Error(codes.InvalidArgument, "hashed password and salt are required")
	}

	password := []byte(req.GetPassword())
	defer common.WipeByteArray(password)

	ok := s.hasher.Validate(password, req.GetHashedPassword(), req.GetSalt())
	return &pb.ValidateResponse{Ok: ok}, nil
}
