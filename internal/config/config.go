package config

// Tool identity
const (
	// ToolName is the binary name shown in help and version output
	ToolName = "wav2mp3"

	// ToolArtist is written to the artist tag unless the caller overrides it
	ToolArtist = "WAV to MP3 Converter"

	// DefaultAlbum is used when no album is supplied
	DefaultAlbum = "Seminarios Convertidos"
)

// File extensions
const (
	InputExt  = ".wav"
	OutputExt = ".mp3"

	// PartSuffix marks the hidden sibling the encoder writes into before
	// the finished file is renamed into place
	PartSuffix = ".part"
)

// Encoder settings
const (
	// VBRQuality is the LAME variable bitrate level (0 = highest quality)
	VBRQuality = 0

	// ID3Version is the ID3v2 minor version written to the output (2.3)
	ID3Version = 3

	// CommentLanguage is the ISO-639-2 language code on COMM frames
	CommentLanguage = "spa"

	// OutputBitDepth is the PCM sample width fed to the encoder
	OutputBitDepth = 16

	// MaxChannels is the widest channel layout an MP3 stream can carry
	MaxChannels = 2
)

// Streaming settings
const (
	// ChunkFrames is the number of sample frames decoded and encoded per step
	ChunkFrames = 8192

	// StderrTailBytes caps how much encoder stderr is attached to errors
	StderrTailBytes = 2048
)

// Tag keys recognised in the tag map
const (
	TagTitle    = "title"
	TagArtist   = "artist"
	TagAlbum    = "album"
	TagYear     = "year"
	TagGenre    = "genre"
	TagComments = "comments"
)

// TagKeys lists the recognised tag keys in display order
var TagKeys = []string{TagTitle, TagArtist, TagAlbum, TagYear, TagGenre, TagComments}

// IsTagKey reports whether key is one of the recognised tag keys
func IsTagKey(key string) bool {
	for _, k := range TagKeys {
		if k == key {
			return true
		}
	}
	return false
}
