package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/emmett/aivoice/internal/aivoice"
	"github.com/emmett/aivoice/internal/session"
)

// EditorServiceName is the full gRPC name of the editor service.
const EditorServiceName = "aivoice.v1.Editor"

// EditorServer is the server API of aivoice.v1.Editor. Messages are
// protobuf well-known types so no generated code is needed.
type EditorServer interface {
	GetStatus(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	GetVersion(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	GetVoiceNames(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetVoicePresetNames(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetText(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	SetText(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	SetCurrentVoicePreset(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	GetVoicePreset(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	SetVoicePreset(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	AddVoicePreset(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	GetPlayTime(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
	Play(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Stop(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	SaveAudioToFile(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	Connect(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Disconnect(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

// EditorServiceDesc describes aivoice.v1.Editor for grpc.Server.RegisterService.
var EditorServiceDesc = grpc.ServiceDesc{
	ServiceName: EditorServiceName,
	HandlerType: (*EditorServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetStatus", EditorServer.GetStatus),
		unary("GetVersion", EditorServer.GetVersion),
		unary("GetVoiceNames", EditorServer.GetVoiceNames),
		unary("GetVoicePresetNames", EditorServer.GetVoicePresetNames),
		unary("GetText", EditorServer.GetText),
		unary("SetText", EditorServer.SetText),
		unary("SetCurrentVoicePreset", EditorServer.SetCurrentVoicePreset),
		unary("GetVoicePreset", EditorServer.GetVoicePreset),
		unary("SetVoicePreset", EditorServer.SetVoicePreset),
		unary("AddVoicePreset", EditorServer.AddVoicePreset),
		unary("GetPlayTime", EditorServer.GetPlayTime),
		unary("Play", EditorServer.Play),
		unary("Stop", EditorServer.Stop),
		unary("SaveAudioToFile", EditorServer.SaveAudioToFile),
		unary("Connect", EditorServer.Connect),
		unary("Disconnect", EditorServer.Disconnect),
	},
	Metadata: "aivoice/v1/editor.proto",
}

// RegisterEditorServer registers srv on s.
func RegisterEditorServer(s grpc.ServiceRegistrar, srv EditorServer) {
	s.RegisterService(&EditorServiceDesc, srv)
}

func unary[Req any, PReq interface {
	*Req
	proto.Message
}, Resp proto.Message](name string, call func(EditorServer, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(EditorServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + EditorServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(EditorServer), ctx, req.(PReq))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// EditorService implements EditorServer over a session
type EditorService struct {
	session *session.Session
}

// NewEditorService creates a new editor service
func NewEditorService(sess *session.Session) *EditorService {
	return &EditorService{session: sess}
}

// ctrl reconnects if needed and returns the control.
func (s *EditorService) ctrl() (*aivoice.Control, error) {
	if err := s.session.EnsureConnected(); err != nil {
		return nil, toStatus(err)
	}
	return s.session.Control(), nil
}

func (s *EditorService) GetStatus(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	st, err := s.session.Control().Status()
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.String(st.String()), nil
}

func (s *EditorService) GetVersion(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return stringCall(s, (*aivoice.Control).Version)
}

func (s *EditorService) GetVoiceNames(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	return listCall(s, (*aivoice.Control).VoiceNames)
}

func (s *EditorService) GetVoicePresetNames(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	return listCall(s, (*aivoice.Control).VoicePresetNames)
}

func (s *EditorService) GetText(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return stringCall(s, (*aivoice.Control).Text)
}

func (s *EditorService) SetText(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return voidCall(s, func(c *aivoice.Control) error { return c.SetText(in.GetValue()) })
}

func (s *EditorService) SetCurrentVoicePreset(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return voidCall(s, func(c *aivoice.Control) error { return c.SetCurrentVoicePresetName(in.GetValue()) })
}

func (s *EditorService) GetVoicePreset(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return stringCall(s, func(c *aivoice.Control) (string, error) { return c.GetVoicePresetJSON(in.GetValue()) })
}

func (s *EditorService) SetVoicePreset(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	p, err := aivoice.ParseVoicePreset(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return voidCall(s, func(c *aivoice.Control) error { return c.SetVoicePreset(p) })
}

func (s *EditorService) AddVoicePreset(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	p, err := aivoice.ParseVoicePreset(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return voidCall(s, func(c *aivoice.Control) error { return c.AddVoicePreset(p) })
}

func (s *EditorService) GetPlayTime(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	c, err := s.ctrl()
	if err != nil {
		return nil, err
	}
	ms, err := c.GetPlayTime()
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.Int64(int64(ms)), nil
}

func (s *EditorService) Play(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	return voidCall(s, (*aivoice.Control).Play)
}

func (s *EditorService) Stop(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	return voidCall(s, (*aivoice.Control).Stop)
}

func (s *EditorService) SaveAudioToFile(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if in.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "path is empty")
	}
	return voidCall(s, func(c *aivoice.Control) error { return c.SaveAudioToFile(in.GetValue()) })
}

func (s *EditorService) Connect(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if err := s.session.Control().Connect(); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *EditorService) Disconnect(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if err := s.session.Control().Disconnect(); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func stringCall(s *EditorService, fn func(*aivoice.Control) (string, error)) (*wrapperspb.StringValue, error) {
	c, err := s.ctrl()
	if err != nil {
		return nil, err
	}
	v, err := fn(c)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.String(v), nil
}

func listCall(s *EditorService, fn func(*aivoice.Control) ([]string, error)) (*structpb.ListValue, error) {
	c, err := s.ctrl()
	if err != nil {
		return nil, err
	}
	names, err := fn(c)
	if err != nil {
		return nil, toStatus(err)
	}
	values := make([]*structpb.Value, 0, len(names))
	for _, n := range names {
		values = append(values, structpb.NewStringValue(n))
	}
	return &structpb.ListValue{Values: values}, nil
}

func voidCall(s *EditorService, fn func(*aivoice.Control) error) (*emptypb.Empty, error) {
	c, err := s.ctrl()
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

// toStatus maps binding errors onto gRPC codes. Host errors become Unknown
// with the host's message intact.
func toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	var conv *aivoice.ConversionError
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, aivoice.ErrLibraryNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, aivoice.ErrClosed), errors.Is(err, aivoice.ErrUnsupportedPlatform):
		return status.Error(codes.Unavailable, err.Error())
	case errors.As(err, &conv):
		return status.Error(codes.Internal, err.Error())
	default:
		return status.Error(codes.Unknown, err.Error())
	}
}
