// Package audiotest synthesises WAV fixtures for tests so no binary
// test data needs to be checked in.
package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVSpec describes a synthetic WAV file
type WAVSpec struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int
	Frequency  float64 // sine frequency in Hz; 0 writes silence
}

// DefaultSpec is one second of 440 Hz stereo at CD quality
func DefaultSpec() WAVSpec {
	return WAVSpec{
		SampleRate: 44100,
		Channels:   2,
		BitDepth:   16,
		Frames:     44100,
		Frequency:  440,
	}
}

// Samples generates the interleaved integer samples for spec at its bit depth.
// 8-bit samples are unsigned, as they are stored in the file.
func Samples(spec WAVSpec) []int {
	maxVal := float64(audio.IntMaxSignedValue(spec.BitDepth))
	data := make([]int, spec.Frames*spec.Channels)
	for i := 0; i < spec.Frames; i++ {
		v := 0.0
		if spec.Frequency > 0 {
			v = 0.5 * math.Sin(2*math.Pi*spec.Frequency*float64(i)/float64(spec.SampleRate))
		}
		s := int(v * maxVal)
		if spec.BitDepth == 8 {
			s += 128
		}
		for ch := 0; ch < spec.Channels; ch++ {
			data[i*spec.Channels+ch] = s
		}
	}
	return data
}

// WriteWAV writes a synthetic PCM WAV file named name inside dir and returns its path
func WriteWAV(t testing.TB, dir, name string, spec WAVSpec) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, spec.SampleRate, spec.BitDepth, spec.Channels, 1)
	buf := &audio.IntBuffer{
		Data: Samples(spec),
		Format: &audio.Format{
			NumChannels: spec.Channels,
			SampleRate:  spec.SampleRate,
		},
		SourceBitDepth: spec.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("Failed to write WAV samples: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Failed to finalise WAV header: %v", err)
	}
	return path
}

// WAV format tags for the SubFormat GUID of an extensible header
const (
	SubFormatPCM   uint16 = 0x0001
	SubFormatFloat uint16 = 0x0003
)

// ksDataFormatGUIDTail is the fixed remainder of every KSDATAFORMAT_SUBTYPE GUID
var ksDataFormatGUIDTail = [14]byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

// WriteExtensibleWAV writes spec's samples behind a WAVE_FORMAT_EXTENSIBLE
// header whose SubFormat GUID carries subFormat. go-audio's encoder only
// writes plain PCM headers, so the container is assembled by hand.
func WriteExtensibleWAV(t testing.TB, dir, name string, spec WAVSpec, subFormat uint16) string {
	t.Helper()

	bytesPerSample := spec.BitDepth / 8
	var data bytes.Buffer
	for _, v := range Samples(spec) {
		switch bytesPerSample {
		case 1:
			data.WriteByte(byte(v))
		case 2:
			binary.Write(&data, binary.LittleEndian, int16(v))
		case 3:
			data.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16)})
		default:
			binary.Write(&data, binary.LittleEndian, int32(v))
		}
	}

	blockAlign := spec.Channels * bytesPerSample
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(4+8+40+8+data.Len()))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	for _, field := range []any{
		uint32(40),
		uint16(0xFFFE),
		uint16(spec.Channels),
		uint32(spec.SampleRate),
		uint32(spec.SampleRate * blockAlign),
		uint16(blockAlign),
		uint16(spec.BitDepth),
		uint16(22), // cbSize
		uint16(spec.BitDepth),
		uint32(0), // channel mask
		subFormat,
		ksDataFormatGUIDTail,
	} {
		binary.Write(&buf, binary.LittleEndian, field)
	}

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(data.Len()))
	buf.Write(data.Bytes())

	return WriteFile(t, dir, name, buf.Bytes())
}

// WriteFile writes arbitrary bytes, for malformed-input fixtures
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// ListDir returns the names of the entries in dir
func ListDir(t testing.TB, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
