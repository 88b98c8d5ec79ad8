// Package audio merges voice-dictation clips into a single upload: WAV
// decoding, downmix to mono, linear resampling to a common rate, and
// re-encoding as 16-bit PCM WAV.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrNoClips is returned when a merge is requested with nothing
// recorded. An empty dictation must fail loudly, never degrade to a
// zero-length WAV.
var ErrNoClips = errors.New("no audio clips to merge")

const (
	wavHeaderSize = 44

	formatPCM   = 1
	formatFloat = 3
)

// PCM is decoded linear audio. Samples are interleaved float64 in
// [-1, 1].
type PCM struct {
	SampleRate int
	Channels   int
	Samples    []float64
}

// Duration returns the clip length in seconds.
func (p *PCM) Duration() float64 {
	if p.SampleRate == 0 || p.Channels == 0 {
		return 0
	}
	return float64(len(p.Samples)) / float64(p.Channels) / float64(p.SampleRate)
}

// DecodeWAV parses a RIFF/WAVE payload into linear PCM. Integer PCM at
// 8, 16, 24 or 32 bits and 32-bit float are supported, which covers
// everything the recording page produces.
func DecodeWAV(data []byte) (*PCM, error) {
	if len(data) < wavHeaderSize {
		return nil, fmt.Errorf("wav too short: %d bytes", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE file")
	}

	var (
		format        int
		channels      int
		sampleRate    int
		bitsPerSample int
		raw           []byte
	)

	// Walk the chunk list; fmt must precede data.
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if body+size > len(data) {
			size = len(data) - body
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("fmt chunk too short: %d bytes", size)
			}
			format = int(binary.LittleEndian.Uint16(data[body : body+2]))
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
		case "data":
			raw = data[body : body+size]
		}

		// Chunks are word-aligned.
		pos = body + size
		if size%2 == 1 {
			pos++
		}
		if raw != nil && format != 0 {
			break
		}
	}

	if format == 0 || raw == nil {
		return nil, fmt.Errorf("wav missing fmt or data chunk")
	}
	if channels < 1 || sampleRate < 1 {
		return nil, fmt.Errorf("invalid wav format: %d channels at %d Hz", channels, sampleRate)
	}

	samples, err := decodeSamples(raw, format, bitsPerSample)
	if err != nil {
		return nil, err
	}

	return &PCM{SampleRate: sampleRate, Channels: channels, Samples: samples}, nil
}

func decodeSamples(raw []byte, format, bits int) ([]float64, error) {
	switch {
	case format == formatPCM && bits == 16:
		n := len(raw) / 2
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			v := int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
			out[i] = float64(v) / 32768
		}
		return out, nil

	case format == formatPCM && bits == 8:
		// 8-bit WAV is unsigned.
		out := make([]float64, len(raw))
		for i, b := range raw {
			out[i] = (float64(b) - 128) / 128
		}
		return out, nil

	case format == formatPCM && bits == 24:
		n := len(raw) / 3
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			v := int32(raw[i*3]) | int32(raw[i*3+1])<<8 | int32(raw[i*3+2])<<16
			// Sign extend from 24 bits.
			v = v << 8 >> 8
			out[i] = float64(v) / 8388608
		}
		return out, nil

	case format == formatPCM && bits == 32:
		n := len(raw) / 4
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			v := int32(binary.LittleEndian.Uint32(raw[i*4 : i*4+4]))
			out[i] = float64(v) / 2147483648
		}
		return out, nil

	case format == formatFloat && bits == 32:
		n := len(raw) / 4
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4 : i*4+4])))
		}
		return out, nil
	}

	return nil, fmt.Errorf("unsupported wav encoding: format %d, %d bits", format, bits)
}

// EncodeWAV writes samples as a standard 44-byte-header 16-bit PCM WAV.
// Samples are clamped to [-1, 1] before conversion so out-of-range
// floats can't wrap around.
func EncodeWAV(samples []float64, sampleRate, channels int) []byte {
	dataSize := len(samples) * 2
	out := make([]byte, wavHeaderSize+dataSize)

	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+dataSize))
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], formatPCM)
	binary.LittleEndian.PutUint16(out[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	byteRate := sampleRate * channels * 2
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	blockAlign := channels * 2
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], 16)

	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(dataSize))

	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := int16(math.Round(s * 32767))
		binary.LittleEndian.PutUint16(out[wavHeaderSize+i*2:wavHeaderSize+i*2+2], uint16(v))
	}

	return out
}
