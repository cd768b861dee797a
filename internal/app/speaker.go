package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/emmett/aivoice/internal/audio"
	"github.com/emmett/aivoice/internal/logging"
	"github.com/emmett/aivoice/internal/session"
	"github.com/emmett/aivoice/internal/tts"
)

// SpeakRequest is one utterance.
type SpeakRequest struct {
	Text   string
	Preset string
	Speed  float32
}

// Speaker plays text either through the editor's own audio output or, when
// an engine and player are set, by rendering it and playing the PCM locally.
type Speaker struct {
	session *session.Session
	engine  tts.Engine
	player  audio.Player
	log     *logrus.Entry
}

// NewSpeaker plays through the editor.
func NewSpeaker(sess *session.Session) *Speaker {
	return &Speaker{session: sess, log: logging.Component("speaker")}
}

// NewLocalSpeaker renders with engine and plays on player.
func NewLocalSpeaker(engine tts.Engine, player audio.Player) *Speaker {
	return &Speaker{engine: engine, player: player, log: logging.Component("speaker")}
}

// Speak blocks until the utterance has been played or ctx is done.
func (s *Speaker) Speak(ctx context.Context, req SpeakRequest) error {
	if s.engine == nil {
		if req.Speed > 0 {
			s.log.Warn("speed is only applied to local playback")
		}
		return s.session.Speak(ctx, session.SpeakRequest{Text: req.Text, Preset: req.Preset, Wait: true})
	}
	return s.speakLocal(ctx, req)
}

func (s *Speaker) speakLocal(ctx context.Context, req SpeakRequest) error {
	synthReq := tts.SynthesizeRequest{Text: req.Text, Voice: req.Preset, Speed: req.Speed}
	if r, ok := s.engine.(tts.Renderer); ok {
		clip, err := r.Render(ctx, synthReq)
		if err != nil {
			return err
		}
		if len(clip.PCM) == 0 {
			return nil
		}
		return audio.PlayClip(ctx, s.player, clip)
	}

	started := false
	defer func() {
		if started {
			s.player.Stop()
		}
	}()

	err := s.engine.Synthesize(ctx, synthReq, func(chunk tts.AudioChunk) error {
		if !started {
			format := audio.Format{SampleRate: uint32(chunk.SampleRate), Channels: uint32(chunk.Channels), BitDepth: audio.BitDepth}
			if err := s.player.Start(ctx, format); err != nil {
				return fmt.Errorf("failed to start playback: %w", err)
			}
			started = true
		}
		return s.player.Write(ctx, chunk.Data)
	})
	if err != nil {
		return err
	}
	if !started {
		return nil
	}
	return s.player.Drain(ctx)
}
