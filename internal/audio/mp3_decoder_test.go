package audio

import (
	"errors"
	"testing"

	"github.com/linuxmatters/wav2mp3/internal/audiotest"
)

func TestProbeMP3NonexistentFile(t *testing.T) {
	if _, err := ProbeMP3("nonexistent.mp3"); err == nil {
		t.Error("Expected error for nonexistent file, got nil")
	}
}

func TestProbeMP3RejectsNonMP3(t *testing.T) {
	dir := t.TempDir()
	// Silence keeps 0xFF bytes out of the payload so no false frame sync is found
	spec := audiotest.DefaultSpec()
	spec.Frequency = 0
	path := audiotest.WriteWAV(t, dir, "silence.mp3", spec)

	_, err := ProbeMP3(path)
	if err == nil {
		t.Fatal("Expected error probing a WAV file as MP3, got nil")
	}
	if !errors.Is(err, ErrInvalidMP3) {
		t.Errorf("Expected ErrInvalidMP3, got %v", err)
	}
}

func TestProbeMP3RejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := audiotest.WriteFile(t, dir, "empty.mp3", nil)

	if _, err := ProbeMP3(path); !errors.Is(err, ErrInvalidMP3) {
		t.Errorf("Expected ErrInvalidMP3 for empty file, got %v", err)
	}
}
