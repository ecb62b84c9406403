package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/asklee/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var unauthenticated = []error{
	common.ErrInvalidCredentials,
	common.ErrorUnauthorized,
	common.ErrInvalidToken,
	common.ErrTokenExpired,
	common.ErrRefreshTokenExpired,
}

// mapError turns a service error into a gRPC status. Unexpected errors are
// logged and reported as Internal without detail.
func (s *GRPCServer) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorPermissionDenied):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, common.ErrorConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	}
	for _, target := range unauthenticated {
		if errors.Is(err, target) {
			return status.Error(codes.Unauthenticated, target.Error())
		}
	}

	s.logger.Error(ctx, "internal error", "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}
