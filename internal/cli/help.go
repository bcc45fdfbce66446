package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/wav2mp3/internal/config"
)

// Help styles - tape theme
var (
	helpTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(TapeAmber)
	helpDescStyle    = lipgloss.NewStyle().Foreground(TapeCream).Italic(true)
	helpSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(TapeCream).MarginTop(1)
	helpFlagStyle    = lipgloss.NewStyle().Foreground(TapeAmber).Bold(true)
	helpArgStyle     = lipgloss.NewStyle().Foreground(TapeRust).Bold(true)
	helpNoteStyle    = lipgloss.NewStyle().Foreground(DustGray).Italic(true)
)

// Flag groups, keyed by the kong `group` tag
const (
	GroupTags    = "tags"
	GroupEncoder = "encoder"
	GroupDisplay = "display"
)

var groupTitles = []struct{ key, title string }{
	{GroupTags, fmt.Sprintf("ID3v2.%d tags:", config.ID3Version)},
	{GroupEncoder, "Encoding:"},
	{GroupDisplay, "Display:"},
	{"", "Other:"},
}

// tagDefaults describes what each tag flag falls back to when omitted
var tagDefaults = map[string]string{
	config.TagTitle:  "input file name",
	config.TagArtist: config.ToolArtist,
	config.TagAlbum:  config.DefaultAlbum,
	config.TagYear:   "current year",
}

// StyledHelpPrinter renders help for the wav2mp3 command: arguments, flags
// grouped by purpose with each tag's fallback value, and the exit status
func StyledHelpPrinter(options kong.HelpOptions) kong.HelpPrinter {
	return func(options kong.HelpOptions, ctx *kong.Context) error {
		fmt.Fprint(ctx.Stdout, RenderHelp(ctx.Model.Node))
		return nil
	}
}

// RenderHelp formats the help text for node
func RenderHelp(node *kong.Node) string {
	var sb strings.Builder

	sb.WriteString(helpTitleStyle.Render(Banner))
	sb.WriteString("\n")
	sb.WriteString(helpDescStyle.Render(Tagline))
	sb.WriteString("\n")

	sb.WriteString(helpSectionStyle.Render("Usage:"))
	fmt.Fprintf(&sb, "\n  %s [<input>] [flags]\n", node.Name)

	if len(node.Positional) > 0 {
		sb.WriteString(helpSectionStyle.Render("Arguments:"))
		sb.WriteString("\n")
		for _, arg := range node.Positional {
			fmt.Fprintf(&sb, "  %s  %s\n", helpArgStyle.Render(arg.Summary()), arg.Help)
		}
	}

	grouped := map[string][]string{}
	for _, f := range node.Flags {
		if f.Hidden || f.Name == "help" {
			continue
		}
		key := ""
		if f.Group != nil {
			key = f.Group.Key
		}
		grouped[key] = append(grouped[key], flagLine(f))
	}
	grouped[""] = append(grouped[""], helpFlagStyle.Render("-h, --help")+"  Show this help.")

	for _, g := range groupTitles {
		lines := grouped[g.key]
		if len(lines) == 0 {
			continue
		}
		sb.WriteString(helpSectionStyle.Render(g.title))
		sb.WriteString("\n")
		for _, line := range lines {
			sb.WriteString("  " + line + "\n")
		}
	}

	sb.WriteString(helpSectionStyle.Render("Exit status:"))
	sb.WriteString("\n  0 on success or when interrupted, 1 on any other failure\n\n")

	return sb.String()
}

// flagLine renders one flag with its placeholder, help, fallback and env var
func flagLine(f *kong.Flag) string {
	name := "--" + f.Name
	if f.Short != 0 {
		name = fmt.Sprintf("-%c, %s", f.Short, name)
	}
	if !f.IsBool() {
		name += "=" + strings.ToUpper(f.FormatPlaceHolder())
	}

	line := helpFlagStyle.Render(name) + "  " + f.Help

	var notes []string
	if def, ok := tagDefaults[f.Name]; ok {
		notes = append(notes, "default: "+def)
	} else if f.HasDefault && f.Default != "" && !f.IsBool() {
		notes = append(notes, "default: "+f.Default)
	}
	for _, env := range f.Envs {
		notes = append(notes, "$"+env)
	}
	if len(notes) > 0 {
		line += " " + helpNoteStyle.Render("("+strings.Join(notes, ", ")+")")
	}
	return line
}
