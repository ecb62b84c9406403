package api

import (
	"context"

	"google.golang.org/grpc"
)

// AskleeClient is the client API for the Asklee service.
type AskleeClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UpdateProfileResponse, error)
	GetUserPage(ctx context.Context, in *GetUserPageRequest, opts ...grpc.CallOption) (*GetUserPageResponse, error)
	AskQuestion(ctx context.Context, in *AskQuestionRequest, opts ...grpc.CallOption) (*AskQuestionResponse, error)
	UpdateQuestion(ctx context.Context, in *UpdateQuestionRequest, opts ...grpc.CallOption) (*UpdateQuestionResponse, error)
	DeleteQuestion(ctx context.Context, in *DeleteQuestionRequest, opts ...grpc.CallOption) (*DeleteQuestionResponse, error)
	GetQuestion(ctx context.Context, in *GetQuestionRequest, opts ...grpc.CallOption) (*GetQuestionResponse, error)
	PostAnswer(ctx context.Context, in *PostAnswerRequest, opts ...grpc.CallOption) (*PostAnswerResponse, error)
	UpdateAnswer(ctx context.Context, in *UpdateAnswerRequest, opts ...grpc.CallOption) (*UpdateAnswerResponse, error)
	DeleteAnswer(ctx context.Context, in *DeleteAnswerRequest, opts ...grpc.CallOption) (*DeleteAnswerResponse, error)
	VoteQuestion(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*VoteResponse, error)
	VoteAnswer(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*VoteResponse, error)
	ListTags(ctx context.Context, in *ListTagsRequest, opts ...grpc.CallOption) (*ListTagsResponse, error)
	QuestionsByTag(ctx context.Context, in *QuestionsByTagRequest, opts ...grpc.CallOption) (*QuestionsResponse, error)
	Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*QuestionsResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type askleeClient struct {
	cc grpc.ClientConnInterface
}

func NewAskleeClient(cc grpc.ClientConnInterface) AskleeClient {
	return &askleeClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *askleeClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, "Register", in, opts)
}

func (c *askleeClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, "Login", in, opts)
}

func (c *askleeClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, "RefreshToken", in, opts)
}

func (c *askleeClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, "Logout", in, opts)
}

func (c *askleeClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UpdateProfileResponse, error) {
	return invoke[UpdateProfileResponse](ctx, c.cc, "UpdateProfile", in, opts)
}

func (c *askleeClient) GetUserPage(ctx context.Context, in *GetUserPageRequest, opts ...grpc.CallOption) (*GetUserPageResponse, error) {
	return invoke[GetUserPageResponse](ctx, c.cc, "GetUserPage", in, opts)
}

func (c *askleeClient) AskQuestion(ctx context.Context, in *AskQuestionRequest, opts ...grpc.CallOption) (*AskQuestionResponse, error) {
	return invoke[AskQuestionResponse](ctx, c.cc, "AskQuestion", in, opts)
}

func (c *askleeClient) UpdateQuestion(ctx context.Context, in *UpdateQuestionRequest, opts ...grpc.CallOption) (*UpdateQuestionResponse, error) {
	return invoke[UpdateQuestionResponse](ctx, c.cc, "UpdateQuestion", in, opts)
}

func (c *askleeClient) DeleteQuestion(ctx context.Context, in *DeleteQuestionRequest, opts ...grpc.CallOption) (*DeleteQuestionResponse, error) {
	return invoke[DeleteQuestionResponse](ctx, c.cc, "DeleteQuestion", in, opts)
}

func (c *askleeClient) GetQuestion(ctx context.Context, in *GetQuestionRequest, opts ...grpc.CallOption) (*GetQuestionResponse, error) {
	return invoke[GetQuestionResponse](ctx, c.cc, "GetQuestion", in, opts)
}

func (c *askleeClient) PostAnswer(ctx context.Context, in *PostAnswerRequest, opts ...grpc.CallOption) (*PostAnswerResponse, error) {
	return invoke[PostAnswerResponse](ctx, c.cc, "PostAnswer", in, opts)
}

func (c *askleeClient) UpdateAnswer(ctx context.Context, in *UpdateAnswerRequest, opts ...grpc.CallOption) (*UpdateAnswerResponse, error) {
	return invoke[UpdateAnswerResponse](ctx, c.cc, "UpdateAnswer", in, opts)
}

func (c *askleeClient) DeleteAnswer(ctx context.Context, in *DeleteAnswerRequest, opts ...grpc.CallOption) (*DeleteAnswerResponse, error) {
	return invoke[DeleteAnswerResponse](ctx, c.cc, "DeleteAnswer", in, opts)
}

func (c *askleeClient) VoteQuestion(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*VoteResponse, error) {
	return invoke[VoteResponse](ctx, c.cc, "VoteQuestion", in, opts)
}

func (c *askleeClient) VoteAnswer(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*VoteResponse, error) {
	return invoke[VoteResponse](ctx, c.cc, "VoteAnswer", in, opts)
}

func (c *askleeClient) ListTags(ctx context.Context, in *ListTagsRequest, opts ...grpc.CallOption) (*ListTagsResponse, error) {
	return invoke[ListTagsResponse](ctx, c.cc, "ListTags", in, opts)
}

func (c *askleeClient) QuestionsByTag(ctx context.Context, in *QuestionsByTagRequest, opts ...grpc.CallOption) (*QuestionsResponse, error) {
	return invoke[QuestionsResponse](ctx, c.cc, "QuestionsByTag", in, opts)
}

func (c *askleeClient) Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*QuestionsResponse, error) {
	return invoke[QuestionsResponse](ctx, c.cc, "Search", in, opts)
}

func (c *askleeClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, "Ping", in, opts)
}
