package convert

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/linuxmatters/wav2mp3/internal/config"
)

// Request is one conversion: an input path plus optional tag overrides
type Request struct {
	InputPath string
	Overrides Tags
}

// Tags maps tag keys (config.TagKeys) to values
type Tags map[string]string

// CleanPath strips surrounding whitespace and any wrapping double or
// single quotes a user pasted along with the path
func CleanPath(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	s = strings.Trim(s, `'`)
	return s
}

// IsWAVPath reports whether path has a .wav extension, ignoring case
func IsWAVPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), config.InputExt)
}

// OutputPath derives the MP3 path: same directory and base name, .mp3 extension
func OutputPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + config.OutputExt
}

// BuildTags returns the tag map for inputPath: defaults first, then every
// recognised override with a non-blank value. When allowArtist is false the
// artist always carries the tool literal.
func BuildTags(inputPath string, overrides Tags, now time.Time, allowArtist bool) Tags {
	base := filepath.Base(inputPath)
	tags := Tags{
		config.TagTitle:  strings.TrimSuffix(base, filepath.Ext(base)),
		config.TagArtist: config.ToolArtist,
		config.TagAlbum:  config.DefaultAlbum,
		config.TagYear:   now.Format("2006"),
	}

	for key, value := range overrides {
		value = strings.TrimSpace(value)
		if value == "" || !config.IsTagKey(key) {
			continue
		}
		if key == config.TagArtist && !allowArtist {
			continue
		}
		tags[key] = value
	}
	return tags
}

// Sorted returns the tag entries in display order
func (t Tags) Sorted() [][2]string {
	entries := make([][2]string, 0, len(t))
	for _, key := range config.TagKeys {
		if v, ok := t[key]; ok {
			entries = append(entries, [2]string{key, v})
		}
	}
	return entries
}
