package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/linuxmatters/wav2mp3/internal/audio"
	"github.com/linuxmatters/wav2mp3/internal/config"
	"github.com/linuxmatters/wav2mp3/internal/encoder"
	"github.com/linuxmatters/wav2mp3/internal/tagger"
)

// EncoderFactory starts an MP3 encoder writing to cfg.OutputPath
type EncoderFactory func(ctx context.Context, cfg encoder.Config) (encoder.Encoder, error)

// TagWriter embeds a tag map into an encoded file
type TagWriter interface {
	Write(path string, tags map[string]string) error
}

// ProbeFunc checks an encoded file and measures it
type ProbeFunc func(path string) (*audio.MP3Info, error)

// ProgressFunc receives the number of frames encoded so far and the total
type ProgressFunc func(done, total int64)

// Result describes a finished conversion
type Result struct {
	InputPath  string
	OutputPath string
	Tags       Tags         // Tag map actually written
	Format     audio.Format // Decoded input format
	Encoder    string       // Encoder tool that produced the output
	Duration   time.Duration
}

// Converter turns one WAV file into a tagged MP3 file
type Converter struct {
	log         Logger
	newEncoder  EncoderFactory
	tags        TagWriter
	probe       ProbeFunc
	now         func() time.Time
	progress    ProgressFunc
	allowArtist bool
}

// Option configures a Converter
type Option func(*Converter)

// WithBackend selects the encoder backend (default encoder.BackendAuto)
func WithBackend(backend encoder.Backend) Option {
	return func(c *Converter) {
		c.newEncoder = func(ctx context.Context, cfg encoder.Config) (encoder.Encoder, error) {
			return encoder.Open(ctx, backend, cfg)
		}
	}
}

// WithEncoderFactory replaces encoder selection entirely
func WithEncoderFactory(f EncoderFactory) Option {
	return func(c *Converter) { c.newEncoder = f }
}

// WithTagger replaces the ID3 tag writer
func WithTagger(w TagWriter) Option {
	return func(c *Converter) { c.tags = w }
}

// WithProbe replaces the output check
func WithProbe(p ProbeFunc) Option {
	return func(c *Converter) { c.probe = p }
}

// WithClock sets the clock used for the default year tag
func WithClock(now func() time.Time) Option {
	return func(c *Converter) { c.now = now }
}

// WithProgress registers a progress callback, called after every chunk
func WithProgress(f ProgressFunc) Option {
	return func(c *Converter) { c.progress = f }
}

// WithMinimal pins the artist tag to the tool literal, ignoring overrides
func WithMinimal() Option {
	return func(c *Converter) { c.allowArtist = false }
}

// New creates a Converter reporting to log
func New(log Logger, opts ...Option) *Converter {
	if log == nil {
		log = NopLogger{}
	}
	c := &Converter{
		log:         log,
		tags:        tagger.New(),
		probe:       audio.ProbeMP3,
		now:         time.Now,
		allowArtist: true,
	}
	WithBackend(encoder.BackendAuto)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert validates req, transcodes the WAV file to MP3 next to it and
// embeds the tag map. The output file either appears complete or not at
// all. Every failure is logged before it is returned as an *Error.
func (c *Converter) Convert(ctx context.Context, req Request) (*Result, error) {
	result, err := c.convert(ctx, req)
	if err != nil {
		if KindOf(err) == KindInterrupted {
			c.log.Info("%v", err)
		} else {
			c.log.Error("%v", err)
		}
		return nil, err
	}

	c.log.Info("Conversion completed: %s", filepath.Base(result.OutputPath))
	return result, nil
}

func (c *Converter) convert(ctx context.Context, req Request) (*Result, error) {
	inputPath := CleanPath(req.InputPath)
	if inputPath == "" {
		return nil, newError(KindNotFound, req.InputPath, nil)
	}
	inputPath, err := filepath.Abs(inputPath)
	if err != nil {
		return nil, newError(KindUnexpected, inputPath, err)
	}

	if _, err := os.Stat(inputPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(KindNotFound, inputPath, err)
		}
		return nil, newError(KindUnexpected, inputPath, err)
	}

	if !IsWAVPath(inputPath) {
		return nil, newError(KindWrongFormat, inputPath, nil)
	}

	outputPath := OutputPath(inputPath)
	tags := BuildTags(inputPath, req.Overrides, c.now(), c.allowArtist)

	c.log.Info("Converting %s to MP3...", filepath.Base(inputPath))

	decoder, err := audio.NewWAVDecoder(inputPath)
	if err != nil {
		return nil, c.fail(ctx, inputPath, fmt.Errorf("decoding %s: %w", filepath.Base(inputPath), err))
	}
	defer decoder.Close()

	partPath, err := createPartFile(outputPath)
	if err != nil {
		return nil, c.fail(ctx, inputPath, err)
	}
	committed := false
	defer func() {
		if !committed {
			os.Remove(partPath)
		}
	}()

	encName, err := c.encode(ctx, decoder, partPath)
	if err != nil {
		return nil, c.fail(ctx, inputPath, err)
	}

	info, err := c.probe(partPath)
	if err != nil {
		return nil, c.fail(ctx, inputPath, fmt.Errorf("checking encoded output: %w", err))
	}

	if err := c.tags.Write(partPath, tags); err != nil {
		return nil, c.fail(ctx, inputPath, err)
	}

	// Last chance to honour an interrupt before the output becomes visible
	if err := ctx.Err(); err != nil {
		return nil, newError(KindInterrupted, inputPath, err)
	}

	if err := os.Rename(partPath, outputPath); err != nil {
		return nil, c.fail(ctx, inputPath, fmt.Errorf("moving output into place: %w", err))
	}
	committed = true

	return &Result{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Tags:       tags,
		Format:     decoder.Format(),
		Encoder:    encName,
		Duration:   info.Duration,
	}, nil
}

// encode streams every frame from src into a new encoder writing partPath
func (c *Converter) encode(ctx context.Context, src audio.PCMSource, partPath string) (string, error) {
	enc, err := c.newEncoder(ctx, encoder.Config{
		OutputPath: partPath,
		SampleRate: src.SampleRate(),
		Channels:   src.NumChannels(),
		Quality:    config.VBRQuality,
	})
	if err != nil {
		return "", fmt.Errorf("starting encoder: %w", err)
	}

	c.log.Info("Encoding with %s (VBR quality %d, %d Hz, %d ch)",
		enc.Name(), config.VBRQuality, src.SampleRate(), src.NumChannels())

	total := src.NumFrames()
	var done int64
	for {
		if err := ctx.Err(); err != nil {
			enc.Abort()
			return "", err
		}

		chunk, err := src.ReadChunk(config.ChunkFrames)
		if err == io.EOF {
			break
		}
		if err != nil {
			enc.Abort()
			return "", fmt.Errorf("decoding: %w", err)
		}

		if err := enc.Write(chunk); err != nil {
			enc.Abort()
			return "", fmt.Errorf("encoding: %w", err)
		}

		done += int64(len(chunk) / src.NumChannels())
		if c.progress != nil {
			c.progress(done, total)
		}
	}

	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("finishing encode: %w", err)
	}
	return enc.Name(), nil
}

// fail wraps a pipeline error, reclassifying it when the run was interrupted
func (c *Converter) fail(ctx context.Context, inputPath string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return newError(KindInterrupted, inputPath, ctxErr)
	}
	return newError(KindCodecFailure, inputPath, err)
}

// createPartFile reserves a hidden sibling of outputPath for the encoder to
// write into, so a failed run never leaves a truncated file at outputPath
func createPartFile(outputPath string) (string, error) {
	dir, base := filepath.Split(outputPath)
	f, err := os.CreateTemp(dir, "."+base+".*"+config.PartSuffix)
	if err != nil {
		return "", fmt.Errorf("creating output file: %w", err)
	}
	name := f.Name()
	f.Close()

	// CreateTemp uses 0600; the finished file should be as readable as one the encoder created
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("creating output file: %w", err)
	}
	return name, nil
}
