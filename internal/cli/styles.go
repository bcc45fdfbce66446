package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/wav2mp3/internal/config"
	"github.com/linuxmatters/wav2mp3/internal/convert"
)

// Color palette
var (
	primaryColor = TapeRust
	successColor = lipgloss.Color("#00AA00") // Green
	mutedColor   = DustGray
	textColor    = lipgloss.Color("#FFFFFF") // White
)

// Styles
var (
	// Title style - bold rust with tape emoji
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// Subtitle style - muted gray
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Success message style
	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// Key-value pair styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	// Box style for framed content
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)
)

// Banner is the tool name as shown in titles
const Banner = "WAV to MP3 📼"

// Tagline describes the tool in one line
const Tagline = "Convert seminar recordings from .wav to tagged VBR .mp3."

// Printer writes styled status lines. It satisfies convert.Logger, so the
// converter can report through it directly.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

// NewPrinter returns a Printer for the process's standard streams
func NewPrinter() *Printer {
	return &Printer{Out: os.Stdout, Err: os.Stderr}
}

// Info prints an informational line
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.Out, "%s %s\n", KeyStyle.Render("•"), fmt.Sprintf(format, args...))
}

// Error prints an error line to the error stream
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintf(p.Err, "%s %s\n", ErrorStyle.Render("Error:"), fmt.Sprintf(format, args...))
}

// PrintBanner prints the application banner
func PrintBanner() {
	fmt.Println(TitleStyle.Render(Banner))
	fmt.Println(SubtitleStyle.Render(Tagline))
	fmt.Println()
}

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render(Banner))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// FormatDuration formats a duration nicely
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	d = d.Round(time.Second)
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}

// FormatSpeed formats encoding speed
func FormatSpeed(speed float64) string {
	return fmt.Sprintf("%.1fx realtime", speed)
}

// FormatBytes formats bytes into human-readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Summary is what the success report shows about a finished conversion
type Summary struct {
	Output   string
	Encoder  string
	Duration time.Duration // Audio length
	Elapsed  time.Duration // Wall time spent converting
	Size     int64
	Tags     convert.Tags
}

// RenderSummary formats s as a boxed report
func RenderSummary(s Summary) string {
	var b strings.Builder

	b.WriteString(SuccessStyle.Render("✓ Conversion Complete!"))
	b.WriteString("\n\n")

	writeRow(&b, "Output:   ", s.Output)
	writeRow(&b, "Encoder:  ", fmt.Sprintf("%s (VBR V%d)", s.Encoder, config.VBRQuality))
	writeRow(&b, "Length:   ", FormatDuration(s.Duration))
	if s.Elapsed > 0 && s.Duration > 0 {
		writeRow(&b, "Speed:    ", FormatSpeed(s.Duration.Seconds()/s.Elapsed.Seconds()))
	}
	writeRow(&b, "File Size:", FormatBytes(s.Size))

	b.WriteString("\n")
	b.WriteString(KeyStyle.Render(fmt.Sprintf("ID3v2.%d Tags:", config.ID3Version)))
	for _, entry := range s.Tags.Sorted() {
		key, v := entry[0], entry[1]
		if v == "" {
			continue
		}
		b.WriteString("\n  ")
		b.WriteString(KeyStyle.Render(fmt.Sprintf("%-9s", key+":")))
		b.WriteString(" ")
		b.WriteString(ValueStyle.Render(v))
	}

	return BoxStyle.Render(b.String())
}

// PrintSummary prints the success report for a finished conversion
func PrintSummary(s Summary) {
	fmt.Println(RenderSummary(s))
}

func writeRow(b *strings.Builder, key, value string) {
	b.WriteString(KeyStyle.Render(key))
	b.WriteString(" ")
	b.WriteString(ValueStyle.Render(value))
	b.WriteString("\n")
}
