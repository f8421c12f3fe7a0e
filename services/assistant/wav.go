package assistant

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	MaxAudioSeconds = 60
	MaxAudioBytes   = 5 * 1024 * 1024
)

// ErrInvalidAudio marks recordings the recognizer cannot accept.
var ErrInvalidAudio = errors.New("invalid audio")

type waveHeader struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataTag       [4]byte
	DataSize      uint32
}

// parseWaveHeader reads a canonical 44-byte PCM WAV header and checks it is
// 16-bit linear PCM no longer than MaxAudioSeconds.
func parseWaveHeader(data []byte) (*waveHeader, error) {
	if len(data) < 44 {
		return nil, fmt.Errorf("%w: WAV header too short", ErrInvalidAudio)
	}

	var h waveHeader
	if err := binary.Read(bytes.NewReader(data[:44]), binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAudio, err)
	}

	switch {
	case string(h.RiffTag[:]) != "RIFF" || string(h.WaveTag[:]) != "WAVE":
		return nil, fmt.Errorf("%w: not a RIFF/WAVE file", ErrInvalidAudio)
	case h.AudioFormat != 1 || h.BitsPerSample != 16:
		return nil, fmt.Errorf("%w: expected 16-bit PCM, got format %d with %d bits", ErrInvalidAudio, h.AudioFormat, h.BitsPerSample)
	case h.NumChannels == 0 || h.SampleRate == 0 || h.ByteRate == 0:
		return nil, fmt.Errorf("%w: empty channel or rate fields", ErrInvalidAudio)
	}

	if seconds := h.DataSize / h.ByteRate; seconds > MaxAudioSeconds {
		return nil, fmt.Errorf("%w: recording is %ds, limit is %ds", ErrInvalidAudio, seconds, MaxAudioSeconds)
	}
	return &h, nil
}
