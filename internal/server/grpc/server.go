package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/asklee/internal/api"
	"github.com/dmitrijs2005/asklee/internal/logging"
	"github.com/dmitrijs2005/asklee/internal/server/models"
	"github.com/dmitrijs2005/asklee/internal/server/services"
	"google.golang.org/grpc"
)

type userSvc interface {
	Register(ctx context.Context, username, email, password, confirmation string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	UpdateProfile(ctx context.Context, userID int64, username, email string) (*models.User, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	UserPage(ctx context.Context, username string) (*models.UserPage, error)
}

type questionSvc interface {
	Create(ctx context.Context, ownerID int64, title string, details *string, rawTags string) (*models.Question, error)
	Update(ctx context.Context, userID, questionID int64, title string, details *string, rawTags string) (*models.Question, error)
	Delete(ctx context.Context, userID, questionID int64) error
	Detail(ctx context.Context, viewerID, questionID int64) (*models.QuestionDetail, error)
	ListTags(ctx context.Context) ([]*models.Tag, error)
	ByTag(ctx context.Context, name string) ([]*models.QuestionSummary, error)
	Search(ctx context.Context, query string) ([]*models.QuestionSummary, error)
}

type answerSvc interface {
	Create(ctx context.Context, ownerID, questionID int64, content string) (*models.Answer, error)
	Update(ctx context.Context, userID, answerID int64, content string) (*models.Answer, error)
	Delete(ctx context.Context, userID, answerID int64) error
}

type voteSvc interface {
	VoteQuestion(ctx context.Context, voterID, questionID int64, d models.Direction) (*services.VoteResult, error)
	VoteAnswer(ctx context.Context, voterID, answerID int64, d models.Direction) (*services.VoteResult, error)
}

// Services groups the business services the gRPC layer dispatches to.
type Services struct {
	Users     userSvc
	Questions questionSvc
	Answers   answerSvc
	Votes     voteSvc
}

type GRPCServer struct {
	api.UnimplementedAskleeServer
	address   string
	users     userSvc
	questions questionSvc
	answers   answerSvc
	votes     voteSvc
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, secretKey string, svc Services) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     svc.Users,
		questions: svc.Questions,
		answers:   svc.Answers,
		votes:     svc.Votes,
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	api.RegisterAskleeServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}
