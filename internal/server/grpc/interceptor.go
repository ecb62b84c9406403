package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/asklee/internal/api"
	"github.com/dmitrijs2005/asklee/internal/common"
	"github.com/dmitrijs2005/asklee/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

type tokenPolicy int

const (
	tokenIgnored tokenPolicy = iota
	tokenOptional
	tokenRequired
)

var methodPolicy = map[string]tokenPolicy{
	api.FullMethod("UpdateProfile"):  tokenRequired,
	api.FullMethod("AskQuestion"):    tokenRequired,
	api.FullMethod("UpdateQuestion"): tokenRequired,
	api.FullMethod("DeleteQuestion"): tokenRequired,
	api.FullMethod("PostAnswer"):     tokenRequired,
	api.FullMethod("UpdateAnswer"):   tokenRequired,
	api.FullMethod("DeleteAnswer"):   tokenRequired,
	api.FullMethod("VoteQuestion"):   tokenRequired,
	api.FullMethod("VoteAnswer"):     tokenRequired,
	api.FullMethod("GetQuestion"):    tokenOptional,
	api.FullMethod("GetUserPage"):    tokenOptional,
}

// userIDFromContext returns the authenticated caller, if any.
func userIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func accessTokenFrom(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// accessTokenInterceptor resolves the caller from the access_token metadata.
// Methods that need a caller are rejected without a valid token; for methods
// where the caller is optional a token, when sent, must still be valid.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	policy := methodPolicy[info.FullMethod]
	if policy == tokenIgnored {
		return handler(ctx, req)
	}

	accessToken := accessTokenFrom(ctx)
	if accessToken == "" {
		if policy == tokenRequired {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}
		return handler(ctx, req)
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	return handler(context.WithValue(ctx, userIDKey, userID), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	code := status.Code(err)

	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	if code == codes.Internal || code == codes.Unknown {
		s.logger.Error(ctx, "request failed", append(args, "error", err)...)
	} else {
		s.logger.Info(ctx, "request", args...)
	}
	return resp, err
}
