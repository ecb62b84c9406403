// Package api defines the Asklee gRPC service: its messages, the server
// interface with its service descriptor, and a typed client. Messages travel
// as JSON under the "json" content-subtype.
package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "asklee.v1.Asklee"

// FullMethod returns the gRPC method path for a method of the service.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// AskleeServer is the server API for the Asklee service.
type AskleeServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*UpdateProfileResponse, error)
	GetUserPage(context.Context, *GetUserPageRequest) (*GetUserPageResponse, error)
	AskQuestion(context.Context, *AskQuestionRequest) (*AskQuestionResponse, error)
	UpdateQuestion(context.Context, *UpdateQuestionRequest) (*UpdateQuestionResponse, error)
	DeleteQuestion(context.Context, *DeleteQuestionRequest) (*DeleteQuestionResponse, error)
	GetQuestion(context.Context, *GetQuestionRequest) (*GetQuestionResponse, error)
	PostAnswer(context.Context, *PostAnswerRequest) (*PostAnswerResponse, error)
	UpdateAnswer(context.Context, *UpdateAnswerRequest) (*UpdateAnswerResponse, error)
	DeleteAnswer(context.Context, *DeleteAnswerRequest) (*DeleteAnswerResponse, error)
	VoteQuestion(context.Context, *VoteRequest) (*VoteResponse, error)
	VoteAnswer(context.Context, *VoteRequest) (*VoteResponse, error)
	ListTags(context.Context, *ListTagsRequest) (*ListTagsResponse, error)
	QuestionsByTag(context.Context, *QuestionsByTagRequest) (*QuestionsResponse, error)
	Search(context.Context, *SearchRequest) (*QuestionsResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedAskleeServer can be embedded to have forward compatible implementations.
type UnimplementedAskleeServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedAskleeServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, unimplemented("Register")
}
func (UnimplementedAskleeServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedAskleeServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, unimplemented("RefreshToken")
}
func (UnimplementedAskleeServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, unimplemented("Logout")
}
func (UnimplementedAskleeServer) UpdateProfile(context.Context, *UpdateProfileRequest) (*UpdateProfileResponse, error) {
	return nil, unimplemented("UpdateProfile")
}
func (UnimplementedAskleeServer) GetUserPage(context.Context, *GetUserPageRequest) (*GetUserPageResponse, error) {
	return nil, unimplemented("GetUserPage")
}
func (UnimplementedAskleeServer) AskQuestion(context.Context, *AskQuestionRequest) (*AskQuestionResponse, error) {
	return nil, unimplemented("AskQuestion")
}
func (UnimplementedAskleeServer) UpdateQuestion(context.Context, *UpdateQuestionRequest) (*UpdateQuestionResponse, error) {
	return nil, unimplemented("UpdateQuestion")
}
func (UnimplementedAskleeServer) DeleteQuestion(context.Context, *DeleteQuestionRequest) (*DeleteQuestionResponse, error) {
	return nil, unimplemented("DeleteQuestion")
}
func (UnimplementedAskleeServer) GetQuestion(context.Context, *GetQuestionRequest) (*GetQuestionResponse, error) {
	return nil, unimplemented("GetQuestion")
}
func (UnimplementedAskleeServer) PostAnswer(context.Context, *PostAnswerRequest) (*PostAnswerResponse, error) {
	return nil, unimplemented("PostAnswer")
}
func (UnimplementedAskleeServer) UpdateAnswer(context.Context, *UpdateAnswerRequest) (*UpdateAnswerResponse, error) {
	return nil, unimplemented("UpdateAnswer")
}
func (UnimplementedAskleeServer) DeleteAnswer(context.Context, *DeleteAnswerRequest) (*DeleteAnswerResponse, error) {
	return nil, unimplemented("DeleteAnswer")
}
func (UnimplementedAskleeServer) VoteQuestion(context.Context, *VoteRequest) (*VoteResponse, error) {
	return nil, unimplemented("VoteQuestion")
}
func (UnimplementedAskleeServer) VoteAnswer(context.Context, *VoteRequest) (*VoteResponse, error) {
	return nil, unimplemented("VoteAnswer")
}
func (UnimplementedAskleeServer) ListTags(context.Context, *ListTagsRequest) (*ListTagsResponse, error) {
	return nil, unimplemented("ListTags")
}
func (UnimplementedAskleeServer) QuestionsByTag(context.Context, *QuestionsByTagRequest) (*QuestionsResponse, error) {
	return nil, unimplemented("QuestionsByTag")
}
func (UnimplementedAskleeServer) Search(context.Context, *SearchRequest) (*QuestionsResponse, error) {
	return nil, unimplemented("Search")
}
func (UnimplementedAskleeServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}

// unary builds the method descriptor for one request/response method.
func unary[Req, Resp any](name string, call func(AskleeServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AskleeServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AskleeServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc is the grpc.ServiceDesc for the Asklee service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AskleeServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", AskleeServer.Register),
		unary("Login", AskleeServer.Login),
		unary("RefreshToken", AskleeServer.RefreshToken),
		unary("Logout", AskleeServer.Logout),
		unary("UpdateProfile", AskleeServer.UpdateProfile),
		unary("GetUserPage", AskleeServer.GetUserPage),
		unary("AskQuestion", AskleeServer.AskQuestion),
		unary("UpdateQuestion", AskleeServer.UpdateQuestion),
		unary("DeleteQuestion", AskleeServer.DeleteQuestion),
		unary("GetQuestion", AskleeServer.GetQuestion),
		unary("PostAnswer", AskleeServer.PostAnswer),
		unary("UpdateAnswer", AskleeServer.UpdateAnswer),
		unary("DeleteAnswer", AskleeServer.DeleteAnswer),
		unary("VoteQuestion", AskleeServer.VoteQuestion),
		unary("VoteAnswer", AskleeServer.VoteAnswer),
		unary("ListTags", AskleeServer.ListTags),
		unary("QuestionsByTag", AskleeServer.QuestionsByTag),
		unary("Search", AskleeServer.Search),
		unary("Ping", AskleeServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "asklee/v1/asklee",
}

func RegisterAskleeServer(s grpc.ServiceRegistrar, srv AskleeServer) {
	s.RegisterService(&ServiceDesc, srv)
}
