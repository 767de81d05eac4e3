// Package audio wraps raw PCM from the speech model into a WAV container.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVDataURIPrefix prefixes every data URI produced by DataURI.
const WAVDataURIPrefix = "data:audio/wav;base64,"

// wavFormatPCM is the WAVE_FORMAT_PCM tag.
const wavFormatPCM = 1

// Format describes little-endian signed PCM.
type Format struct {
	Channels   int
	SampleRate int
	BitDepth   int
}

// SpeechFormat is what the TTS model returns: mono, 24 kHz, 16-bit.
var SpeechFormat = Format{Channels: 1, SampleRate: 24000, BitDepth: 16}

// ErrEmptyPCM is returned when there is nothing to encode.
var ErrEmptyPCM = errors.New("audio: empty PCM payload")

// EncodeWAV wraps 16-bit little-endian PCM in a WAV container.
func EncodeWAV(pcm []byte, f Format) ([]byte, error) {
	if len(pcm) == 0 {
		return nil, ErrEmptyPCM
	}
	if f.BitDepth != 16 {
		return nil, fmt.Errorf("audio: unsupported bit depth %d", f.BitDepth)
	}
	if f.Channels <= 0 || f.SampleRate <= 0 {
		return nil, fmt.Errorf("audio: invalid format %+v", f)
	}
	frameSize := f.Channels * 2
	if len(pcm)%frameSize != 0 {
		return nil, fmt.Errorf("audio: PCM length %d is not a multiple of frame size %d", len(pcm), frameSize)
	}

	samples := make([]int, len(pcm)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(pcm[2*i:])))
	}

	out := &seekBuffer{}
	enc := wav.NewEncoder(out, f.SampleRate, f.BitDepth, f.Channels, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: f.Channels, SampleRate: f.SampleRate},
		Data:           samples,
		SourceBitDepth: f.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("audio: write wav frames: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("audio: finalize wav: %w", err)
	}
	return out.Bytes(), nil
}

// DataURI encodes wav bytes as a base64 data URI.
func DataURI(wavBytes []byte) string {
	return WAVDataURIPrefix + base64.StdEncoding.EncodeToString(wavBytes)
}

// SpeechDataURI is EncodeWAV with SpeechFormat followed by DataURI.
func SpeechDataURI(pcm []byte) (string, error) {
	w, err := EncodeWAV(pcm, SpeechFormat)
	if err != nil {
		return "", err
	}
	return DataURI(w), nil
}
