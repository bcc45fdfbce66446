package audio

import "errors"

var (
	ErrInvalidWAV          = errors.New("invalid WAV file")
	ErrNotPCM              = errors.New("WAV sub-format is not integer PCM")
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
	ErrNoChannels          = errors.New("WAV file declares no audio channels")
	ErrInvalidMP3          = errors.New("encoded output is not a decodable MP3 stream")
)
