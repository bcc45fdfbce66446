// Package prompt asks for the conversion inputs interactively when none
// were given on the command line.
package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/wav2mp3/internal/cli"
	"github.com/linuxmatters/wav2mp3/internal/config"
	"github.com/linuxmatters/wav2mp3/internal/convert"
)

// Answers holds what the user typed
type Answers struct {
	Path     string
	Album    string
	Genre    string
	Comments string
}

// Overrides turns the optional answers into tag overrides. Blank answers
// are left out so the converter's defaults apply.
func (a Answers) Overrides() convert.Tags {
	tags := convert.Tags{}
	if a.Album != "" {
		tags[config.TagAlbum] = a.Album
	}
	if a.Genre != "" {
		tags[config.TagGenre] = a.Genre
	}
	if a.Comments != "" {
		tags[config.TagComments] = a.Comments
	}
	return tags
}

// Prompter asks for a WAV path and, unless Minimal is set, the optional tags
type Prompter struct {
	Minimal bool
}

// Ask runs the form. Aborting it (Esc, Ctrl-C) or cancelling ctx returns a
// convert.Error of kind KindInterrupted.
func (p Prompter) Ask(ctx context.Context) (Answers, error) {
	var a Answers

	if err := p.form(&a).RunWithContext(ctx); err != nil {
		return Answers{}, mapError(err)
	}

	a.Path = convert.CleanPath(a.Path)
	return a, nil
}

func (p Prompter) form(a *Answers) *huh.Form {
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("WAV file").
				Description("Path to the recording. Drag and drop works; quotes are stripped.").
				Placeholder("seminar_01.wav").
				Value(&a.Path).
				Validate(validatePath),
		),
	}

	if !p.Minimal {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Album").
				Description("Leave blank for " + config.DefaultAlbum).
				Value(&a.Album),
			huh.NewInput().
				Title("Genre").
				Value(&a.Genre),
			huh.NewText().
				Title("Comments").
				CharLimit(1000).
				Value(&a.Comments),
		))
	}

	return huh.NewForm(groups...).WithTheme(theme())
}

// validatePath only rejects blank input; existence and format are checked by
// the converter so they are reported the same way as command-line paths
func validatePath(s string) error {
	if convert.CleanPath(s) == "" {
		return fmt.Errorf("a file path is required")
	}
	return nil
}

func mapError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return &convert.Error{Kind: convert.KindInterrupted, Err: err}
	}
	return &convert.Error{Kind: convert.KindUnexpected, Err: fmt.Errorf("prompt: %w", err)}
}

func theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(cli.TapeAmber).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(cli.DustGray)
	t.Focused.Base = lipgloss.NewStyle().BorderForeground(cli.TapeRust)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(cli.TapeRust)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(cli.DustGray)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(cli.DustGray)

	return t
}
