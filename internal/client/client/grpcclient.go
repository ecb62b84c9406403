package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/asklee/internal/api"
	"github.com/dmitrijs2005/asklee/internal/client/models"
	"github.com/dmitrijs2005/asklee/internal/client/repositories/session"
	"github.com/dmitrijs2005/asklee/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      api.AskleeClient
	store       session.Repository

	mu      sync.Mutex
	session models.Session
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.AccessToken, s.session.RefreshToken
}

func (s *GRPCClient) setSession(ctx context.Context, sess models.Session) error {
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	if sess.RefreshToken == "" {
		return s.store.Clear(ctx)
	}
	return s.store.Save(ctx, &sess)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	accessToken, refreshToken := s.tokens()

	err := invoker(withAccessToken(ctx, accessToken), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refreshToken == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(withAccessToken(ctx, ""), &api.RefreshTokenRequest{RefreshToken: refreshToken})
	if rerr != nil {
		if status.Code(rerr) == codes.Unauthenticated {
			// session is gone for good
			_ = s.setSession(ctx, models.Session{})
		}
		return rerr
	}

	s.mu.Lock()
	sess := s.session
	s.mu.Unlock()
	sess.AccessToken, sess.RefreshToken = resp.AccessToken, resp.RefreshToken
	if serr := s.setSession(ctx, sess); serr != nil {
		return serr
	}

	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

// NewAskleeClientService connects to endpointURL. A non-nil store is used to
// restore the previous session and to persist token changes.
func NewAskleeClientService(ctx context.Context, endpointURL string, timeout time.Duration, store session.Repository) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout, store: store}

	if store != nil {
		sess, err := store.Load(ctx)
		if err != nil {
			return nil, err
		}
		if sess != nil {
			c.session = *sess
		}
	}

	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewAskleeClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// LoggedIn reports whether a session is held; it does not check it with the
// server.
func (s *GRPCClient) LoggedIn() bool {
	_, refresh := s.tokens()
	return refresh != ""
}

func (s *GRPCClient) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Username
}

func (s *GRPCClient) Register(ctx context.Context, username, email, password, confirmation string) (*api.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Register(ctx, &api.RegisterRequest{
		Username:             username,
		Email:                email,
		Password:             password,
		PasswordConfirmation: confirmation,
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.User, nil
}

// Login authenticates and stores the session, including the caller's
// username taken from their own page.
func (s *GRPCClient) Login(ctx context.Context, email, password string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return s.mapError(err)
	}

	sess := models.Session{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	page, err := s.client.GetUserPage(ctx, &api.GetUserPageRequest{})
	if err != nil {
		return s.mapError(err)
	}
	sess.Username = page.User.Username

	return s.setSession(ctx, sess)
}

// Logout revokes the refresh token on the server and forgets the local
// session even when the server call fails.
func (s *GRPCClient) Logout(ctx context.Context) error {
	_, refresh := s.tokens()
	if refresh == "" {
		return ErrNotLoggedIn
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, rpcErr := s.client.Logout(ctx, &api.LogoutRequest{RefreshToken: refresh})
	if err := s.setSession(ctx, models.Session{}); err != nil {
		return err
	}
	if rpcErr != nil {
		return s.mapError(rpcErr)
	}
	return nil
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, username, email string) (*api.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.UpdateProfile(ctx, &api.UpdateProfileRequest{Username: username, Email: email})
	if err != nil {
		return nil, s.mapError(err)
	}

	s.mu.Lock()
	sess := s.session
	s.mu.Unlock()
	sess.Username = resp.User.Username
	if err := s.setSession(ctx, sess); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// UserPage fetches a public page; an empty username means the caller's own.
func (s *GRPCClient) UserPage(ctx context.Context, username string) (*api.GetUserPageResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetUserPage(ctx, &api.GetUserPageRequest{Username: username})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) AskQuestion(ctx context.Context, title string, details *string, tags string) (*api.Question, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.AskQuestion(ctx, &api.AskQuestionRequest{Title: title, Details: details, Tags: tags})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Question, nil
}

func (s *GRPCClient) UpdateQuestion(ctx context.Context, id int64, title string, details *string, tags string) (*api.Question, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.UpdateQuestion(ctx, &api.UpdateQuestionRequest{ID: id, Title: title, Details: details, Tags: tags})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Question, nil
}

func (s *GRPCClient) DeleteQuestion(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.client.DeleteQuestion(ctx, &api.DeleteQuestionRequest{ID: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Question(ctx context.Context, id int64) (*api.QuestionDetail, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetQuestion(ctx, &api.GetQuestionRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Question, nil
}

func (s *GRPCClient) PostAnswer(ctx context.Context, questionID int64, content string) (*api.Answer, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.PostAnswer(ctx, &api.PostAnswerRequest{QuestionID: questionID, Content: content})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Answer, nil
}

func (s *GRPCClient) UpdateAnswer(ctx context.Context, id int64, content string) (*api.Answer, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.UpdateAnswer(ctx, &api.UpdateAnswerRequest{ID: id, Content: content})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Answer, nil
}

func (s *GRPCClient) DeleteAnswer(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.client.DeleteAnswer(ctx, &api.DeleteAnswerRequest{ID: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

// Vote presses the up or down button on a question (onAnswer false) or an
// answer.
func (s *GRPCClient) Vote(ctx context.Context, onAnswer bool, id int64, direction string) (*api.VoteResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &api.VoteRequest{ID: id, Direction: direction}

	var (
		resp *api.VoteResponse
		err  error
	)
	if onAnswer {
		resp, err = s.client.VoteAnswer(ctx, req)
	} else {
		resp, err = s.client.VoteQuestion(ctx, req)
	}
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Tags(ctx context.Context) ([]*api.Tag, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListTags(ctx, &api.ListTagsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tags, nil
}

func (s *GRPCClient) QuestionsByTag(ctx context.Context, tag string) ([]*api.QuestionSummary, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.QuestionsByTag(ctx, &api.QuestionsByTagRequest{Tag: tag})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Questions, nil
}

func (s *GRPCClient) Search(ctx context.Context, query string) ([]*api.QuestionSummary, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Search(ctx, &api.SearchRequest{Query: query})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Questions, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetValue() != "OK" {
		return ErrUnavailable
	}
	return nil
}

var codeErrors = map[codes.Code]error{
	codes.Unauthenticated:  ErrUnauthorized,
	codes.PermissionDenied: ErrForbidden,
	codes.NotFound:         ErrNotFound,
	codes.InvalidArgument:  ErrInvalidInput,
	codes.AlreadyExists:    ErrAlreadyExists,
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrUnavailable
	}

	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	}
	if sentinel, ok := codeErrors[st.Code()]; ok {
		return fmt.Errorf("%w: %s", sentinel, st.Message())
	}
	return fmt.Errorf("rpc error: %w", err)
}
