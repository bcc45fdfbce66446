package encoder

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Backend names an MP3 encoder implementation
type Backend string

const (
	BackendAuto   Backend = "auto"   // Auto-detect best available
	BackendLAME   Backend = "lame"   // LAME command line encoder
	BackendFFmpeg Backend = "ffmpeg" // FFmpeg with libmp3lame
)

// Tool represents a detected encoder executable
type Tool struct {
	Name        string  // Executable name (e.g., "lame")
	Backend     Backend // Backend it implements
	Path        string  // Resolved path on PATH
	Available   bool    // Whether the tool is present and can encode MP3
	Description string  // Human-readable description
}

// toolSpec defines an encoder configuration for the priority list
type toolSpec struct {
	name    string
	backend Backend
	desc    string
}

// encoderPriority defines the encoder preference order
// Priority: lame > ffmpeg
// Both drive libmp3lame; the lame binary needs no container or codec probing
var encoderPriority = []toolSpec{
	{"lame", BackendLAME, "LAME MP3 encoder"},
	{"ffmpeg", BackendFFmpeg, "FFmpeg (libmp3lame)"},
}

// probeTimeout bounds capability probes of detected tools
const probeTimeout = 5 * time.Second

// Seams for tests
var (
	lookPath  = exec.LookPath
	probeTool = probeToolCapability
)

// ParseBackend converts a command line value into a Backend
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "", BackendAuto:
		return BackendAuto, nil
	case BackendLAME, BackendFFmpeg:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q (want auto, lame or ffmpeg)", ErrUnknownBackend, s)
	}
}

// DetectEncoders reports every known encoder and whether it is usable
func DetectEncoders() []Tool {
	tools := make([]Tool, 0, len(encoderPriority))
	for _, spec := range encoderPriority {
		tool := Tool{
			Name:        spec.name,
			Backend:     spec.backend,
			Description: spec.desc,
		}
		if path, err := lookPath(spec.name); err == nil {
			tool.Path = path
			tool.Available = probeTool(spec.backend, path)
		}
		tools = append(tools, tool)
	}
	return tools
}

// SelectBestEncoder returns the encoder to use for the requested backend.
// BackendAuto picks the first available tool in priority order.
func SelectBestEncoder(backend Backend) (*Tool, error) {
	for _, tool := range DetectEncoders() {
		if backend != BackendAuto && tool.Backend != backend {
			continue
		}
		if tool.Available {
			return &tool, nil
		}
		if backend != BackendAuto {
			return nil, fmt.Errorf("%w: %s is not installed or cannot encode MP3", ErrNoEncoder, tool.Name)
		}
	}
	if backend != BackendAuto {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	return nil, ErrNoEncoder
}

// EncoderStatus returns a human-readable status of all encoders
func EncoderStatus() string {
	var sb strings.Builder
	sb.WriteString("MP3 encoders:\n")
	for _, tool := range DetectEncoders() {
		status := "not available"
		if tool.Available {
			status = "available at " + tool.Path
		} else if tool.Path != "" {
			status = "found at " + tool.Path + " but cannot encode MP3"
		}
		sb.WriteString(fmt.Sprintf("  %-8s %s: %s\n", tool.Name, tool.Description, status))
	}
	return sb.String()
}

// probeToolCapability checks that a found executable can produce MP3.
// ffmpeg builds without libmp3lame are common, so ask it for its encoder list.
func probeToolCapability(backend Backend, path string) bool {
	if backend != BackendFFmpeg {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "-hide_banner", "-encoders").Output()
	if err != nil {
		return false
	}
	return strings.Contains(string(out), "libmp3lame")
}

// Open selects the best available tool for backend and starts it
func Open(ctx context.Context, backend Backend, cfg Config) (Encoder, error) {
	tool, err := SelectBestEncoder(backend)
	if err != nil {
		return nil, err
	}
	return New(ctx, tool, cfg)
}
