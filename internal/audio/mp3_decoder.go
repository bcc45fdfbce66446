package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/go-mp3"
)

// go-mp3 always outputs interleaved 16-bit stereo: 4 bytes per frame
const mp3BytesPerFrame = 4

// MP3Info describes an encoded MP3 stream
type MP3Info struct {
	SampleRate int
	NumFrames  int64
	Duration   time.Duration
}

// ProbeMP3 decodes the headers of an MP3 file to confirm the encoder
// produced a playable stream and to measure its length
func ProbeMP3(filename string) (*MP3Info, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMP3, err)
	}

	sampleRate := decoder.SampleRate()
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidMP3, sampleRate)
	}

	// Length is the decoded byte count; it needs a seekable source, which a file is
	length := decoder.Length()
	if length < 0 {
		return nil, fmt.Errorf("%w: unknown stream length", ErrInvalidMP3)
	}

	numFrames := length / mp3BytesPerFrame
	return &MP3Info{
		SampleRate: sampleRate,
		NumFrames:  numFrames,
		Duration:   time.Duration(float64(numFrames) / float64(sampleRate) * float64(time.Second)),
	}, nil
}
