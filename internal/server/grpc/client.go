package grpc

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/emmett/aivoice/internal/audio"
)

// Client calls a remote aivoice gRPC server.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out any) error {
	return c.cc.Invoke(ctx, "/"+EditorServiceName+"/"+method, in, out)
}

func (c *Client) getString(ctx context.Context, method string, in any) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.invoke(ctx, method, in, out); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

func (c *Client) getList(ctx context.Context, method string) ([]string, error) {
	out := new(structpb.ListValue)
	if err := c.invoke(ctx, method, &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(out.GetValues()))
	for _, v := range out.GetValues() {
		names = append(names, v.GetStringValue())
	}
	return names, nil
}

func (c *Client) void(ctx context.Context, method string, in any) error {
	return c.invoke(ctx, method, in, new(emptypb.Empty))
}

func (c *Client) GetStatus(ctx context.Context) (string, error) {
	return c.getString(ctx, "GetStatus", &emptypb.Empty{})
}

func (c *Client) GetVersion(ctx context.Context) (string, error) {
	return c.getString(ctx, "GetVersion", &emptypb.Empty{})
}

func (c *Client) GetVoiceNames(ctx context.Context) ([]string, error) {
	return c.getList(ctx, "GetVoiceNames")
}

func (c *Client) GetVoicePresetNames(ctx context.Context) ([]string, error) {
	return c.getList(ctx, "GetVoicePresetNames")
}

func (c *Client) GetText(ctx context.Context) (string, error) {
	return c.getString(ctx, "GetText", &emptypb.Empty{})
}

func (c *Client) SetText(ctx context.Context, text string) error {
	return c.void(ctx, "SetText", wrapperspb.String(text))
}

func (c *Client) SetCurrentVoicePreset(ctx context.Context, name string) error {
	return c.void(ctx, "SetCurrentVoicePreset", wrapperspb.String(name))
}

// GetVoicePreset returns the preset as the host's JSON string.
func (c *Client) GetVoicePreset(ctx context.Context, name string) (string, error) {
	return c.getString(ctx, "GetVoicePreset", wrapperspb.String(name))
}

func (c *Client) SetVoicePreset(ctx context.Context, presetJSON string) error {
	return c.void(ctx, "SetVoicePreset", wrapperspb.String(presetJSON))
}

func (c *Client) AddVoicePreset(ctx context.Context, presetJSON string) error {
	return c.void(ctx, "AddVoicePreset", wrapperspb.String(presetJSON))
}

func (c *Client) GetPlayTime(ctx context.Context) (int64, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.invoke(ctx, "GetPlayTime", &emptypb.Empty{}, out); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}

func (c *Client) Play(ctx context.Context) error {
	return c.void(ctx, "Play", &emptypb.Empty{})
}

func (c *Client) Stop(ctx context.Context) error {
	return c.void(ctx, "Stop", &emptypb.Empty{})
}

func (c *Client) SaveAudioToFile(ctx context.Context, path string) error {
	return c.void(ctx, "SaveAudioToFile", wrapperspb.String(path))
}

func (c *Client) Connect(ctx context.Context) error {
	return c.void(ctx, "Connect", &emptypb.Empty{})
}

func (c *Client) Disconnect(ctx context.Context) error {
	return c.void(ctx, "Disconnect", &emptypb.Empty{})
}

// Synthesize opens the synthesis stream.
func (c *Client) Synthesize(ctx context.Context, text, voice string, speed float32) (grpc.ServerStreamingClient[wrapperspb.BytesValue], error) {
	in, err := structpb.NewStruct(map[string]any{
		"text":  text,
		"voice": voice,
		"speed": float64(speed),
	})
	if err != nil {
		return nil, err
	}

	stream, err := c.cc.NewStream(ctx, &TTSServiceDesc.Streams[0], "/"+TTSServiceName+"/Synthesize")
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[structpb.Struct, wrapperspb.BytesValue]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// SynthesizeClip collects a whole synthesis stream into a clip.
func (c *Client) SynthesizeClip(ctx context.Context, text, voice string, speed float32) (*audio.Clip, error) {
	stream, err := c.Synthesize(ctx, text, voice, speed)
	if err != nil {
		return nil, err
	}

	clip := &audio.Clip{}
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		clip.PCM = append(clip.PCM, chunk.GetValue()...)
	}

	md, err := stream.Header()
	if err != nil {
		return nil, err
	}
	if clip.SampleRate, err = headerInt(md, HeaderSampleRate); err != nil {
		return nil, err
	}
	if clip.Channels, err = headerInt(md, HeaderChannels); err != nil {
		return nil, err
	}
	return clip, nil
}

func headerInt(md metadata.MD, key string) (int, error) {
	values := md.Get(key)
	if len(values) == 0 {
		return 0, fmt.Errorf("missing %s header", key)
	}
	return strconv.Atoi(values[0])
}
