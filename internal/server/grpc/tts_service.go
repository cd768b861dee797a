package grpc

import (
	"strconv"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/emmett/aivoice/internal/tts"
)

// TTSServiceName is the full gRPC name of the synthesis service.
const TTSServiceName = "aivoice.v1.TTS"

// Header keys sent before the first audio chunk.
const (
	HeaderSampleRate = "x-sample-rate"
	HeaderChannels   = "x-channels"
)

// TTSServer is the server API of aivoice.v1.TTS.
type TTSServer interface {
	// Synthesize takes a Struct with "text", "voice" and "speed" and streams
	// 16-bit little-endian PCM.
	Synthesize(*structpb.Struct, grpc.ServerStreamingServer[wrapperspb.BytesValue]) error
}

// TTSServiceDesc describes aivoice.v1.TTS.
var TTSServiceDesc = grpc.ServiceDesc{
	ServiceName: TTSServiceName,
	HandlerType: (*TTSServer)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Synthesize",
			Handler:       synthesizeHandler,
			ServerStreams: true,
		},
	},
	Metadata: "aivoice/v1/tts.proto",
}

// RegisterTTSServer registers srv on s.
func RegisterTTSServer(s grpc.ServiceRegistrar, srv TTSServer) {
	s.RegisterService(&TTSServiceDesc, srv)
}

func synthesizeHandler(srv any, stream grpc.ServerStream) error {
	in := new(structpb.Struct)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(TTSServer).Synthesize(in, &grpc.GenericServerStream[structpb.Struct, wrapperspb.BytesValue]{ServerStream: stream})
}

// TTSService implements the gRPC TTS service
type TTSService struct {
	engine tts.Engine
	mu     sync.Mutex
}

// NewTTSService creates a new TTS service
func NewTTSService(engine tts.Engine) *TTSService {
	return &TTSService{engine: engine}
}

// Synthesize handles text-to-speech synthesis with streaming audio output
func (s *TTSService) Synthesize(in *structpb.Struct, stream grpc.ServerStreamingServer[wrapperspb.BytesValue]) error {
	ctx := stream.Context()

	fields := in.GetFields()
	req := tts.SynthesizeRequest{
		Text:  fields["text"].GetStringValue(),
		Voice: fields["voice"].GetStringValue(),
		Speed: float32(fields["speed"].GetNumberValue()),
	}
	if req.Text == "" {
		return status.Error(codes.InvalidArgument, "text is required")
	}

	// the host renders one text at a time
	s.mu.Lock()
	defer s.mu.Unlock()

	headerSent := false
	err := s.engine.Synthesize(ctx, req, func(chunk tts.AudioChunk) error {
		if !headerSent {
			md := metadata.Pairs(
				HeaderSampleRate, strconv.Itoa(chunk.SampleRate),
				HeaderChannels, strconv.Itoa(chunk.Channels),
			)
			if err := stream.SendHeader(md); err != nil {
				return err
			}
			headerSent = true
		}
		return stream.Send(wrapperspb.Bytes(chunk.Data))
	})
	if err != nil {
		return toStatus(err)
	}
	return nil
}
