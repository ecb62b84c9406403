package grpc

import (
	"context"

	"github.com/dmitrijs2005/asklee/internal/api"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	user, err := s.users.Register(ctx, req.Username, req.Email, req.Password, req.PasswordConfirmation)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID, "username", user.UserName)
	return &api.RegisterResponse{User: toUser(user)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	tokens, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &api.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &api.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *api.LogoutRequest) (*api.LogoutResponse, error) {
	if err := s.users.Logout(ctx, req.RefreshToken); err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &api.LogoutResponse{}, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.UpdateProfileResponse, error) {
	userID, _ := userIDFromContext(ctx)
	user, err := s.users.UpdateProfile(ctx, userID, req.Username, req.Email)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &api.UpdateProfileResponse{User: toUser(user)}, nil
}

// GetUserPage serves public pages by username. Without a username it serves
// the caller's own page, which needs a token. Emails are only shown to their
// owner.
func (s *GRPCServer) GetUserPage(ctx context.Context, req *api.GetUserPageRequest) (*api.GetUserPageResponse, error) {
	callerID, authenticated := userIDFromContext(ctx)

	username := req.Username
	if username == "" {
		if !authenticated {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}
		me, err := s.users.GetUser(ctx, callerID)
		if err != nil {
			return nil, s.mapError(ctx, err)
		}
		username = me.UserName
	}

	page, err := s.users.UserPage(ctx, username)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	user := toUser(page.User)
	if !authenticated || callerID != page.User.ID {
		user.Email = ""
	}
	return &api.GetUserPageResponse{
		User:     user,
		Asked:    toQuestions(page.QuestionsAsked),
		Answered: toQuestions(page.QuestionsAnswered),
	}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return wrapperspb.String("OK"), nil
}
