package encoder

import "errors"

var (
	ErrNoEncoder           = errors.New("no MP3 encoder found (install lame or ffmpeg)")
	ErrUnknownBackend      = errors.New("unknown encoder backend")
	ErrUnsupportedChannels = errors.New("unsupported channel layout")
	ErrEncoderClosed       = errors.New("encoder already closed")
)
