package audio

// PCMSource is the decode side of the conversion pipeline: interleaved
// 16-bit PCM in fixed-size chunks
type PCMSource interface {
	// ReadChunk reads up to numFrames sample frames as interleaved int16
	// Returns io.EOF when no frames remain
	ReadChunk(numFrames int) ([]int16, error)

	// SampleRate returns the audio sample rate in Hz
	SampleRate() int

	// NumChannels returns the number of audio channels (1=mono, 2=stereo)
	NumChannels() int

	// NumFrames returns the total number of sample frames in the stream
	NumFrames() int64

	// Close closes the decoder and releases resources
	Close() error
}

// Format describes a decoded PCM stream
type Format struct {
	SampleRate  int
	NumChannels int
	BitDepth    int
	NumFrames   int64
}
