package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/wav2mp3/internal/cli"
	"github.com/linuxmatters/wav2mp3/internal/config"
	"github.com/linuxmatters/wav2mp3/internal/convert"
	"github.com/linuxmatters/wav2mp3/internal/encoder"
	"github.com/linuxmatters/wav2mp3/internal/prompt"
	"github.com/linuxmatters/wav2mp3/internal/ui"
	"github.com/mattn/go-isatty"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var CLI struct {
	Input        string `arg:"" name:"input" help:"Input WAV file (prompted for when omitted)" optional:""`
	Title        string `help:"Title tag" placeholder:"TEXT" group:"tags"`
	Artist       string `help:"Artist tag, ignored with --minimal" placeholder:"TEXT" group:"tags"`
	Album        string `help:"Album tag" placeholder:"TEXT" group:"tags"`
	Year         string `help:"Year tag" placeholder:"YYYY" group:"tags"`
	Genre        string `help:"Genre tag" placeholder:"TEXT" group:"tags"`
	Comments     string `help:"Comments tag" placeholder:"TEXT" group:"tags"`
	Encoder      string `help:"MP3 encoder: auto, lame or ffmpeg" default:"auto" enum:"auto,lame,ffmpeg" env:"WAV2MP3_ENCODER" placeholder:"NAME" group:"encoder"`
	ListEncoders bool   `help:"List MP3 encoders found on this system" group:"encoder"`
	Minimal      bool   `help:"Only ask for the file path and write the fixed tag set" group:"display"`
	NoProgress   bool   `help:"Disable the progress display" group:"display"`
	Version      bool   `help:"Show version information"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name(config.ToolName),
		kong.Description(cli.Tagline),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	os.Exit(run())
}

func run() int {
	if CLI.Version {
		cli.PrintVersion(version)
		return 0
	}

	if CLI.ListEncoders {
		fmt.Print(encoder.EncoderStatus())
		return 0
	}

	backend, err := encoder.ParseBackend(CLI.Encoder)
	if err != nil {
		cli.PrintError(err.Error())
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printer := cli.NewPrinter()
	interactive := isTerminal(os.Stdin) && isTerminal(os.Stdout)

	req := convert.Request{InputPath: CLI.Input, Overrides: flagOverrides()}
	if req.InputPath == "" {
		if !interactive {
			cli.PrintError("<input> is required when not running in a terminal")
			return 1
		}

		cli.PrintBanner()
		answers, err := prompt.Prompter{Minimal: CLI.Minimal}.Ask(ctx)
		if err != nil {
			if convert.KindOf(err) == convert.KindInterrupted {
				printer.Info("%v", err)
			} else {
				printer.Error("%v", err)
			}
			return convert.ExitCode(err)
		}

		req.InputPath = answers.Path
		for k, v := range answers.Overrides() {
			// Flags given alongside the prompt still win
			if _, ok := req.Overrides[k]; !ok {
				req.Overrides[k] = v
			}
		}
	}

	opts := []convert.Option{convert.WithBackend(backend)}
	if CLI.Minimal {
		opts = append(opts, convert.WithMinimal())
	}

	start := time.Now()
	var result *convert.Result
	if interactive && !CLI.NoProgress {
		result, err = convertWithProgress(ctx, req, opts)
	} else {
		result, err = convert.New(printer, opts...).Convert(ctx, req)
	}
	if err != nil {
		return convert.ExitCode(err)
	}

	summary := cli.Summary{
		Output:   result.OutputPath,
		Encoder:  result.Encoder,
		Duration: result.Duration,
		Elapsed:  time.Since(start),
		Tags:     result.Tags,
	}
	if info, err := os.Stat(result.OutputPath); err == nil {
		summary.Size = info.Size()
	}
	cli.PrintSummary(summary)

	return 0
}

// convertWithProgress runs the conversion in a goroutine while the
// Bubbletea progress UI owns the terminal
func convertWithProgress(ctx context.Context, req convert.Request, opts []convert.Option) (*convert.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := ui.NewModel(convert.CleanPath(req.InputPath), cancel)
	// Signals are handled by the caller's context so the converter can clean up
	p := tea.NewProgram(model, tea.WithoutSignalHandler())

	opts = append(opts, convert.WithProgress(func(done, total int64) {
		p.Send(ui.Progress{Done: done, Total: total})
	}))
	conv := convert.New(ui.NewLogger(p), opts...)

	var result *convert.Result
	var convErr error
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		result, convErr = conv.Convert(ctx, req)
		p.Send(ui.Finished{})
	}()

	if _, err := p.Run(); err != nil {
		// The UI failed; stop the conversion and report its outcome
		cancel()
		<-finished
		cli.PrintError(fmt.Sprintf("running UI: %v", err))
		if convErr == nil {
			convErr = &convert.Error{Kind: convert.KindUnexpected, Err: err}
		}
		return nil, convErr
	}

	<-finished
	if model.Interrupted() && convErr == nil {
		// Ctrl-C arrived after the output was already in place
		cli.NewPrinter().Info("Conversion finished before the interrupt took effect")
	}
	return result, convErr
}

// flagOverrides collects the tag flags that were given
func flagOverrides() convert.Tags {
	tags := convert.Tags{}
	set := func(key, value string) {
		if value != "" {
			tags[key] = value
		}
	}
	set(config.TagTitle, CLI.Title)
	set(config.TagArtist, CLI.Artist)
	set(config.TagAlbum, CLI.Album)
	set(config.TagYear, CLI.Year)
	set(config.TagGenre, CLI.Genre)
	set(config.TagComments, CLI.Comments)
	return tags
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
