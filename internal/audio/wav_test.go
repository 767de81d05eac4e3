package audio

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pcm16(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

func TestEncodeWAVRoundTrip(t *testing.T) {
	in := []int16{0, 1000, -1000, 32767, -32768}

	out, err := EncodeWAV(pcm16(in...), SpeechFormat)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(out[:4]))
	assert.Equal(t, "WAVE", string(out[8:12]))

	dec := wav.NewDecoder(bytes.NewReader(out))
	require.True(t, dec.IsValidFile())
	assert.EqualValues(t, 1, dec.NumChans)
	assert.EqualValues(t, 24000, dec.SampleRate)
	assert.EqualValues(t, 16, dec.BitDepth)

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	require.Len(t, buf.Data, len(in))
	for i, s := range in {
		assert.Equal(t, int(s), buf.Data[i], "sample %d", i)
	}
}

func TestEncodeWAVRejectsBadInput(t *testing.T) {
	_, err := EncodeWAV(nil, SpeechFormat)
	assert.ErrorIs(t, err, ErrEmptyPCM)

	_, err = EncodeWAV([]byte{1, 2, 3}, SpeechFormat)
	assert.Error(t, err)

	_, err = EncodeWAV(pcm16(1, 2), Format{Channels: 1, SampleRate: 24000, BitDepth: 24})
	assert.Error(t, err)
}

func TestSpeechDataURI(t *testing.T) {
	uri, err := SpeechDataURI(pcm16(1, 2, 3, 4))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, WAVDataURIPrefix))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, WAVDataURIPrefix))
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(raw[:4]))
}

func TestSeekBufferOverwrite(t *testing.T) {
	b := &seekBuffer{}
	_, _ = b.Write([]byte("hello world"))
	_, err := b.Seek(0, 0)
	require.NoError(t, err)
	_, _ = b.Write([]byte("J"))
	_, err = b.Seek(0, 2)
	require.NoError(t, err)
	_, _ = b.Write([]byte("!"))

	assert.Equal(t, "Jello world!", string(b.Bytes()))

	_, err = b.Seek(-1, 0)
	assert.Error(t, err)
}
