package audio

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/linuxmatters/wav2mp3/internal/audiotest"
)

func TestNewWAVDecoder(t *testing.T) {
	dir := t.TempDir()
	path := audiotest.WriteWAV(t, dir, "tone.wav", audiotest.DefaultSpec())

	decoder, err := NewWAVDecoder(path)
	if err != nil {
		t.Fatalf("Failed to create WAV decoder: %v", err)
	}
	defer decoder.Close()

	if decoder.SampleRate() != 44100 {
		t.Errorf("Expected sample rate 44100, got %d", decoder.SampleRate())
	}
	if decoder.NumChannels() != 2 {
		t.Errorf("Expected 2 channels, got %d", decoder.NumChannels())
	}
	if decoder.BitDepth() != 16 {
		t.Errorf("Expected bit depth 16, got %d", decoder.BitDepth())
	}
	if decoder.NumFrames() != 44100 {
		t.Errorf("Expected 44100 frames, got %d", decoder.NumFrames())
	}

	format := decoder.Format()
	if format.SampleRate != 44100 || format.NumChannels != 2 || format.NumFrames != 44100 {
		t.Errorf("Format() = %+v, does not match accessors", format)
	}
}

func TestNewWAVDecoderNonexistentFile(t *testing.T) {
	_, err := NewWAVDecoder("nonexistent.wav")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestNewWAVDecoderInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := audiotest.WriteFile(t, dir, "junk.wav", []byte("this is definitely not RIFF data"))

	_, err := NewWAVDecoder(path)
	if !errors.Is(err, ErrInvalidWAV) {
		t.Errorf("Expected ErrInvalidWAV, got %v", err)
	}
}

func TestWAVDecoderReadsAllFrames(t *testing.T) {
	dir := t.TempDir()
	spec := audiotest.DefaultSpec()
	spec.Frames = 10000
	path := audiotest.WriteWAV(t, dir, "tone.wav", spec)

	decoder, err := NewWAVDecoder(path)
	if err != nil {
		t.Fatalf("Failed to create WAV decoder: %v", err)
	}
	defer decoder.Close()

	chunkSize := 4096
	totalSamples := 0
	chunks := 0
	for {
		chunk, err := decoder.ReadChunk(chunkSize)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Error reading chunk %d: %v", chunks, err)
		}
		if len(chunk) > chunkSize*spec.Channels {
			t.Errorf("Chunk %d larger than requested: %d > %d", chunks, len(chunk), chunkSize*spec.Channels)
		}
		if len(chunk)%spec.Channels != 0 {
			t.Errorf("Chunk %d is not frame aligned: %d samples", chunks, len(chunk))
		}
		totalSamples += len(chunk)
		chunks++
	}

	if want := spec.Frames * spec.Channels; totalSamples != want {
		t.Errorf("Expected %d samples in total, got %d", want, totalSamples)
	}
	if chunks != 3 {
		t.Errorf("Expected 3 chunks for 10000 frames at 4096, got %d", chunks)
	}

	// Further reads keep returning EOF
	if _, err := decoder.ReadChunk(chunkSize); err != io.EOF {
		t.Errorf("Expected io.EOF after end of data, got %v", err)
	}
}

// TestWAVDecoderRescalesBitDepths verifies that every supported source width
// lands on the same 16-bit scale, catching sign and shift mistakes.
func TestWAVDecoderRescalesBitDepths(t *testing.T) {
	for _, bitDepth := range []int{8, 16, 24, 32} {
		t.Run(map[int]string{8: "8bit", 16: "16bit", 24: "24bit", 32: "32bit"}[bitDepth], func(t *testing.T) {
			dir := t.TempDir()
			spec := audiotest.WAVSpec{
				SampleRate: 22050,
				Channels:   1,
				BitDepth:   bitDepth,
				Frames:     2205,
				Frequency:  100,
			}
			path := audiotest.WriteWAV(t, dir, "tone.wav", spec)

			decoder, err := NewWAVDecoder(path)
			if err != nil {
				t.Fatalf("Failed to create WAV decoder: %v", err)
			}
			defer decoder.Close()

			chunk, err := decoder.ReadChunk(spec.Frames)
			if err != nil {
				t.Fatalf("Failed to read chunk: %v", err)
			}
			if len(chunk) != spec.Frames {
				t.Fatalf("Expected %d samples, got %d", spec.Frames, len(chunk))
			}

			// Half-scale sine peaks near +/-16384 at 16 bits
			var peak, trough int16
			for _, s := range chunk {
				if s > peak {
					peak = s
				}
				if s < trough {
					trough = s
				}
			}
			if peak < 15000 || peak > 17000 {
				t.Errorf("Peak %d out of expected range for half-scale sine", peak)
			}
			if trough > -15000 || trough < -17000 {
				t.Errorf("Trough %d out of expected range for half-scale sine", trough)
			}

			// First sample of a sine is zero
			if chunk[0] < -256 || chunk[0] > 256 {
				t.Errorf("First sample %d should be near zero", chunk[0])
			}
		})
	}
}

func TestToInt16(t *testing.T) {
	testCases := []struct {
		name     string
		value    int
		bitDepth int
		want     int16
	}{
		{"8-bit midpoint", 128, 8, 0},
		{"8-bit minimum", 0, 8, -32768},
		{"8-bit maximum", 255, 8, 32512},
		{"16-bit passthrough", -1234, 16, -1234},
		{"24-bit maximum", 8388607, 24, 32767},
		{"24-bit minimum", -8388608, 24, -32768},
		{"32-bit maximum", 2147483647, 32, 32767},
		{"32-bit minimum", -2147483648, 32, -32768},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := toInt16(tc.value, tc.bitDepth); got != tc.want {
				t.Errorf("toInt16(%d, %d) = %d, want %d", tc.value, tc.bitDepth, got, tc.want)
			}
		})
	}
}

func TestWAVDecoderCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := audiotest.WriteWAV(t, dir, "tone.wav", audiotest.DefaultSpec())

	decoder, err := NewWAVDecoder(path)
	if err != nil {
		t.Fatalf("Failed to create WAV decoder: %v", err)
	}
	if err := decoder.Close(); err != nil {
		t.Fatalf("First Close failed: %v", err)
	}
	if err := decoder.Close(); err != nil {
		t.Errorf("Second Close should be a no-op, got %v", err)
	}
}

func TestNewWAVDecoderExtensibleSubFormat(t *testing.T) {
	testCases := []struct {
		name      string
		bitDepth  int
		subFormat uint16
		wantErr   error
	}{
		{"pcm 16-bit", 16, audiotest.SubFormatPCM, nil},
		{"pcm 24-bit", 24, audiotest.SubFormatPCM, nil},
		{"float 32-bit", 32, audiotest.SubFormatFloat, ErrNotPCM},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			spec := audiotest.DefaultSpec()
			spec.BitDepth = tc.bitDepth
			spec.Frames = 4410
			path := audiotest.WriteExtensibleWAV(t, dir, "ext.wav", spec, tc.subFormat)

			decoder, err := NewWAVDecoder(path)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Failed to create WAV decoder: %v", err)
			}
			defer decoder.Close()

			// Reading through the decoder's own handle must still start at the PCM data
			chunk, err := decoder.ReadChunk(spec.Frames)
			if err != nil {
				t.Fatalf("Failed to read chunk: %v", err)
			}
			if len(chunk) != spec.Frames*spec.Channels {
				t.Errorf("Expected %d samples, got %d", spec.Frames*spec.Channels, len(chunk))
			}
			if chunk[0] < -256 || chunk[0] > 256 {
				t.Errorf("First sample %d should be near zero", chunk[0])
			}
		})
	}
}
