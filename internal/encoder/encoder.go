package encoder

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/linuxmatters/wav2mp3/internal/config"
)

// Config holds the encoder configuration
type Config struct {
	OutputPath string // Path to output MP3 file
	SampleRate int    // Input sample rate in Hz
	Channels   int    // Input channels: 1 (mono) or 2 (stereo)
	Quality    int    // LAME VBR quality, 0 (best) to 9
}

// Encoder turns interleaved 16-bit PCM into an MP3 file
type Encoder interface {
	// Write encodes interleaved samples
	Write(pcm []int16) error

	// Close flushes the encoder and waits for the output to be complete
	Close() error

	// Abort stops the encoder without finishing the output
	Abort() error

	// Name identifies the encoder for logging
	Name() string
}

// waitDelay bounds how long Close waits for pipes after the process exits
const waitDelay = 10 * time.Second

// ProcessEncoder streams PCM into an external encoder process over stdin
type ProcessEncoder struct {
	config Config
	tool   Tool
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr *tailBuffer
	buf    []byte
	done   bool
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.OutputPath == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", c.SampleRate)
	}
	if c.Channels < 1 || c.Channels > config.MaxChannels {
		return fmt.Errorf("%w: %d channels (MP3 carries mono or stereo)", ErrUnsupportedChannels, c.Channels)
	}
	if c.Quality < 0 || c.Quality > 9 {
		return fmt.Errorf("invalid VBR quality: %d (must be 0-9)", c.Quality)
	}
	return nil
}

// New starts an encoder process for tool. Cancelling ctx kills the process.
func New(ctx context.Context, tool *Tool, cfg Config) (*ProcessEncoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tool == nil || tool.Path == "" {
		return nil, ErrNoEncoder
	}

	var args []string
	switch tool.Backend {
	case BackendLAME:
		args = lameArgs(cfg)
	case BackendFFmpeg:
		args = ffmpegArgs(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, tool.Backend)
	}

	cmd := exec.CommandContext(ctx, tool.Path, args...)
	cmd.WaitDelay = waitDelay

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s stdin: %w", tool.Name, err)
	}

	stderr := newTailBuffer(config.StderrTailBytes)
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", tool.Name, err)
	}

	return &ProcessEncoder{
		config: cfg,
		tool:   *tool,
		cmd:    cmd,
		stdin:  stdin,
		stderr: stderr,
	}, nil
}

// Write encodes interleaved samples
func (e *ProcessEncoder) Write(pcm []int16) error {
	if e.done {
		return ErrEncoderClosed
	}

	size := len(pcm) * 2
	if cap(e.buf) < size {
		e.buf = make([]byte, size)
	}
	e.buf = e.buf[:size]
	for i, s := range pcm {
		binary.LittleEndian.PutUint16(e.buf[i*2:], uint16(s))
	}

	if _, err := e.stdin.Write(e.buf); err != nil {
		// A broken pipe means the process died; its exit status says why
		if waitErr := e.wait(); waitErr != nil {
			return waitErr
		}
		return fmt.Errorf("failed to write PCM to %s: %w", e.tool.Name, err)
	}
	return nil
}

// Close signals end of input and waits for the encoder to finish the file
func (e *ProcessEncoder) Close() error {
	if e.done {
		return nil
	}
	if err := e.stdin.Close(); err != nil && !errors.Is(err, io.ErrClosedPipe) {
		e.Abort()
		return fmt.Errorf("failed to close %s stdin: %w", e.tool.Name, err)
	}
	return e.wait()
}

// Abort kills the encoder process
func (e *ProcessEncoder) Abort() error {
	if e.done {
		return nil
	}
	e.stdin.Close()
	if e.cmd.Process != nil {
		e.cmd.Process.Kill()
	}
	e.done = true
	e.cmd.Wait()
	return nil
}

// Name returns the encoder executable name
func (e *ProcessEncoder) Name() string {
	return e.tool.Name
}

// wait reaps the process and folds its stderr into any failure
func (e *ProcessEncoder) wait() error {
	e.done = true
	if err := e.cmd.Wait(); err != nil {
		if msg := e.stderr.String(); msg != "" {
			return fmt.Errorf("%s failed: %w: %s", e.tool.Name, err, msg)
		}
		return fmt.Errorf("%s failed: %w", e.tool.Name, err)
	}
	return nil
}

// lameArgs builds the lame command line for raw signed 16-bit little-endian input on stdin
func lameArgs(cfg Config) []string {
	mode := "j" // joint stereo
	if cfg.Channels == 1 {
		mode = "m"
	}
	return []string{
		"--quiet",
		"-r",
		"-s", formatKHz(cfg.SampleRate),
		"--bitwidth", strconv.Itoa(config.OutputBitDepth),
		"--signed",
		"--little-endian",
		"-m", mode,
		"-V", strconv.Itoa(cfg.Quality),
		"-",
		cfg.OutputPath,
	}
}

// ffmpegArgs builds the ffmpeg command line. ffmpeg's own tag writing is
// disabled; tags are embedded after encoding.
func ffmpegArgs(cfg Config) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-f", "s16le",
		"-ar", strconv.Itoa(cfg.SampleRate),
		"-ac", strconv.Itoa(cfg.Channels),
		"-i", "pipe:0",
		"-vn",
		"-codec:a", "libmp3lame",
		"-q:a", strconv.Itoa(cfg.Quality),
		"-id3v2_version", "0",
		"-write_id3v1", "0",
		"-f", "mp3",
		cfg.OutputPath,
	}
}

// formatKHz renders a sample rate the way lame's -s flag expects (44100 -> "44.1")
func formatKHz(sampleRate int) string {
	return strconv.FormatFloat(float64(sampleRate)/1000, 'f', -1, 64)
}

// tailBuffer keeps the last max bytes written to it
type tailBuffer struct {
	max int
	buf []byte
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.max; over > 0 {
		b.buf = b.buf[over:]
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	return strings.TrimSpace(string(b.buf))
}
