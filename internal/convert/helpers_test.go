package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/linuxmatters/wav2mp3/internal/audio"
	"github.com/linuxmatters/wav2mp3/internal/encoder"
)

var errInjected = errors.New("injected write error: no space left on device")

// fakeEncoder appends raw PCM bytes to the output file and can be told to
// fail on a given Write call
type fakeEncoder struct {
	path      string
	failOn    int // 1-based Write call that fails; 0 never fails
	writes    int
	aborted   bool
	closed    bool
	closeErr  error
	bytesSent int
}

func (e *fakeEncoder) Write(pcm []int16) error {
	e.writes++
	f, err := os.OpenFile(e.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, len(pcm)*2)
	if _, err := f.Write(buf); err != nil {
		return err
	}
	e.bytesSent += len(buf)

	if e.writes == e.failOn {
		return errInjected
	}
	return nil
}

func (e *fakeEncoder) Close() error {
	e.closed = true
	return e.closeErr
}

func (e *fakeEncoder) Abort() error {
	e.aborted = true
	return nil
}

func (e *fakeEncoder) Name() string { return "fake" }

// fakeFactory records the encoder it hands out
type fakeFactory struct {
	enc      *fakeEncoder
	failOn   int
	closeErr error
	startErr error
	cfg      encoder.Config
}

func (f *fakeFactory) New(ctx context.Context, cfg encoder.Config) (encoder.Encoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if f.startErr != nil {
		return nil, f.startErr
	}
	f.cfg = cfg
	f.enc = &fakeEncoder{path: cfg.OutputPath, failOn: f.failOn, closeErr: f.closeErr}
	return f.enc, nil
}

func okProbe(path string) (*audio.MP3Info, error) {
	return &audio.MP3Info{SampleRate: 44100, NumFrames: 44100, Duration: time.Second}, nil
}

// failingTagger always fails, as a read-only directory would
type failingTagger struct{}

func (failingTagger) Write(string, map[string]string) error {
	return errors.New("permission denied")
}

// recordLogger keeps every message for assertions
type recordLogger struct {
	infos  []string
	errors []string
}

func (l *recordLogger) Info(format string, args ...any) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordLogger) Error(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

var fixedNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// newTestConverter wires fakes for everything except the WAV decoder and tagger
func newTestConverter(log Logger, factory *fakeFactory, opts ...Option) *Converter {
	base := []Option{
		WithEncoderFactory(factory.New),
		WithProbe(okProbe),
		WithClock(fixedClock),
	}
	return New(log, append(base, opts...)...)
}
