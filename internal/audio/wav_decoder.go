package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
)

// WAV format tags accepted as integer PCM
const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// Extensible fmt chunk layout: 16 common bytes, cbSize, valid bits,
// channel mask, then the SubFormat GUID whose first two bytes are the tag
const extensibleFmtSize = 40

// WAVDecoder implements PCMSource for WAV files
type WAVDecoder struct {
	decoder    *wav.Decoder
	file       *os.File
	sampleRate int
	bitDepth   int
	numChans   int
	numFrames  int64
	position   int64
	intBuf     *audio.IntBuffer
}

// NewWAVDecoder opens a WAV file and positions it at the start of the PCM data
func NewWAVDecoder(filename string) (*WAVDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		f.Close()
		return nil, ErrInvalidWAV
	}

	switch decoder.WavAudioFormat {
	case wavFormatPCM:
	case wavFormatExtensible:
		// go-audio skips the extension, so the real sample format is read here
		sub, err := extensibleSubFormat(filename)
		if err != nil {
			f.Close()
			return nil, err
		}
		if sub != wavFormatPCM {
			f.Close()
			return nil, fmt.Errorf("%w: extensible sub-format 0x%04X", ErrNotPCM, sub)
		}
	default:
		f.Close()
		return nil, fmt.Errorf("%w: format tag 0x%04X", ErrNotPCM, decoder.WavAudioFormat)
	}

	switch decoder.BitDepth {
	case 8, 16, 24, 32:
	default:
		f.Close()
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, decoder.BitDepth)
	}

	if decoder.NumChans == 0 {
		f.Close()
		return nil, ErrNoChannels
	}

	// Get format info without reading all samples
	if err := decoder.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to seek to PCM data: %w", err)
	}

	// PCMLen gives us the length of PCM data in bytes
	bytesPerFrame := int64(decoder.BitDepth/8) * int64(decoder.NumChans)
	numFrames := decoder.PCMLen() / bytesPerFrame

	return &WAVDecoder{
		decoder:    decoder,
		file:       f,
		sampleRate: int(decoder.SampleRate),
		bitDepth:   int(decoder.BitDepth),
		numChans:   int(decoder.NumChans),
		numFrames:  numFrames,
	}, nil
}

// extensibleSubFormat returns the format tag held in the SubFormat GUID of
// a WAVE_FORMAT_EXTENSIBLE fmt chunk. It reads through its own handle so the
// decoder's position is untouched.
func extensibleSubFormat(filename string) (uint16, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	parser := riff.New(f)
	if err := parser.ParseHeaders(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidWAV, err)
	}

	for {
		chunk, err := parser.NextChunk()
		if err != nil {
			return 0, fmt.Errorf("%w: no fmt chunk", ErrInvalidWAV)
		}
		if chunk.ID != riff.FmtID {
			chunk.Drain()
			continue
		}
		if chunk.Size < extensibleFmtSize {
			return 0, fmt.Errorf("%w: extensible fmt chunk is %d bytes", ErrInvalidWAV, chunk.Size)
		}

		var header struct {
			Common      [16]byte
			CbSize      uint16
			ValidBits   uint16
			ChannelMask uint32
			SubFormat   uint16
		}
		if err := chunk.ReadLE(&header); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidWAV, err)
		}
		return header.SubFormat, nil
	}
}

// ReadChunk reads the next chunk of frames as interleaved 16-bit PCM
func (d *WAVDecoder) ReadChunk(numFrames int) ([]int16, error) {
	if d.position >= d.numFrames {
		return nil, io.EOF
	}

	// Don't read past the declared data chunk (trailing chunks are not audio)
	if d.position+int64(numFrames) > d.numFrames {
		numFrames = int(d.numFrames - d.position)
	}

	bufSize := numFrames * d.numChans
	if d.intBuf == nil || cap(d.intBuf.Data) < bufSize {
		d.intBuf = &audio.IntBuffer{
			Data: make([]int, bufSize),
			Format: &audio.Format{
				NumChannels: d.numChans,
				SampleRate:  d.sampleRate,
			},
			SourceBitDepth: d.bitDepth,
		}
	}
	d.intBuf.Data = d.intBuf.Data[:bufSize]

	n, err := d.decoder.PCMBuffer(d.intBuf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read PCM buffer: %w", err)
	}

	if n == 0 {
		// The header promised more frames than the file holds
		if d.position < d.numFrames {
			return nil, fmt.Errorf("truncated WAV data: read %d of %d frames", d.position, d.numFrames)
		}
		return nil, io.EOF
	}

	// Drop a trailing partial frame so channels stay aligned
	n -= n % d.numChans

	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		samples[i] = toInt16(d.intBuf.Data[i], d.bitDepth)
	}

	d.position += int64(n / d.numChans)
	return samples, nil
}

// toInt16 rescales a decoded integer sample to signed 16-bit
func toInt16(v, bitDepth int) int16 {
	switch bitDepth {
	case 8:
		// 8-bit WAV is unsigned with a 128 midpoint
		return int16((v - 128) << 8)
	case 24:
		return int16(v >> 8)
	case 32:
		return int16(v >> 16)
	default:
		return int16(v)
	}
}

// Format returns the decoded stream format
func (d *WAVDecoder) Format() Format {
	return Format{
		SampleRate:  d.sampleRate,
		NumChannels: d.numChans,
		BitDepth:    d.bitDepth,
		NumFrames:   d.numFrames,
	}
}

// SampleRate returns the sample rate
func (d *WAVDecoder) SampleRate() int {
	return d.sampleRate
}

// NumChannels returns the number of audio channels
func (d *WAVDecoder) NumChannels() int {
	return d.numChans
}

// BitDepth returns the source sample width in bits
func (d *WAVDecoder) BitDepth() int {
	return d.bitDepth
}

// NumFrames returns the total frame count declared by the data chunk
func (d *WAVDecoder) NumFrames() int64 {
	return d.numFrames
}

// Close closes the decoder and releases resources
func (d *WAVDecoder) Close() error {
	if d.file != nil {
		err := d.file.Close()
		d.file = nil
		return err
	}
	return nil
}
