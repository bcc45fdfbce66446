package tagger

import (
	"fmt"

	"github.com/bogem/id3v2"
	"github.com/linuxmatters/wav2mp3/internal/config"
)

// Tagger writes ID3 tags to MP3 files.
type Tagger struct {
	version  byte
	language string
}

// New creates a Tagger that writes ID3v2.3 tags.
func New() *Tagger {
	return &Tagger{
		version:  config.ID3Version,
		language: config.CommentLanguage,
	}
}

// Write replaces any existing tag in the file at path with one holding the
// non-empty values of tags. Unknown keys are ignored.
func (t *Tagger) Write(path string, tags map[string]string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open %s for tagging: %w", path, err)
	}
	defer tag.Close()

	tag.DeleteAllFrames()
	tag.SetVersion(t.version)
	tag.SetDefaultEncoding(id3v2.EncodingUTF16)

	// Text frames (TIT2, TPE1, TALB, TYER, TCON)
	if v := tags[config.TagTitle]; v != "" {
		tag.SetTitle(v)
	}
	if v := tags[config.TagArtist]; v != "" {
		tag.SetArtist(v)
	}
	if v := tags[config.TagAlbum]; v != "" {
		tag.SetAlbum(v)
	}
	if v := tags[config.TagYear]; v != "" {
		tag.SetYear(v)
	}
	if v := tags[config.TagGenre]; v != "" {
		tag.SetGenre(v)
	}

	// Comments (COMM)
	if v := tags[config.TagComments]; v != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF16,
			Language:    t.language,
			Description: "",
			Text:        v,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save ID3 tag: %w", err)
	}
	return nil
}

// Read returns the recognised tag values present in the file at path,
// along with the ID3v2 minor version of its tag.
func Read(path string) (map[string]string, byte, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read ID3 tag from %s: %w", path, err)
	}
	defer tag.Close()

	tags := make(map[string]string)
	set := func(key, value string) {
		if value != "" {
			tags[key] = value
		}
	}

	set(config.TagTitle, tag.Title())
	set(config.TagArtist, tag.Artist())
	set(config.TagAlbum, tag.Album())
	set(config.TagYear, tag.Year())
	set(config.TagGenre, tag.Genre())

	for _, f := range tag.GetFrames(tag.CommonID("Comments")) {
		if cf, ok := f.(id3v2.CommentFrame); ok && cf.Text != "" {
			tags[config.TagComments] = cf.Text
			break
		}
	}

	return tags, tag.Version(), nil
}
