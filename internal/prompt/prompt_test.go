package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/linuxmatters/wav2mp3/internal/config"
	"github.com/linuxmatters/wav2mp3/internal/convert"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"talk.wav", false},
		{"'/music/my talk.wav'", false},
		{"", true},
		{"   ", true},
		{`""`, true},
		{"''", true},
	}

	for _, tt := range tests {
		err := validatePath(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("validatePath(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestMapErrorInterrupts(t *testing.T) {
	for _, cause := range []error{huh.ErrUserAborted, context.Canceled} {
		err := mapError(cause)
		if convert.KindOf(err) != convert.KindInterrupted {
			t.Errorf("mapError(%v) kind = %v, want interrupted", cause, convert.KindOf(err))
		}
		if convert.ExitCode(err) != 0 {
			t.Errorf("Aborting the prompt should exit 0, got %d", convert.ExitCode(err))
		}
	}
}

func TestMapErrorUnexpected(t *testing.T) {
	cause := errors.New("could not open a new TTY")
	err := mapError(cause)

	if convert.KindOf(err) != convert.KindUnexpected {
		t.Errorf("Kind = %v, want unexpected", convert.KindOf(err))
	}
	if !errors.Is(err, cause) {
		t.Error("Cause should be preserved")
	}
	if convert.ExitCode(err) != 1 {
		t.Errorf("ExitCode = %d, want 1", convert.ExitCode(err))
	}
}

func TestAnswersOverrides(t *testing.T) {
	got := Answers{Path: "talk.wav", Album: "Spring Term", Comments: "Room 4"}.Overrides()

	if len(got) != 2 {
		t.Fatalf("Expected 2 overrides, got %v", got)
	}
	if got[config.TagAlbum] != "Spring Term" || got[config.TagComments] != "Room 4" {
		t.Errorf("Unexpected overrides %v", got)
	}
	if _, ok := got[config.TagGenre]; ok {
		t.Error("Blank genre should not override the default")
	}
}
