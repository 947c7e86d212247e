package storage

import (
	"math"
	"testing"
	"time"

	"github.com/poiesic/grantmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", []byte{}, ErrTruncatedData},
		{"trailing bytes", []byte{1, 2, 3}, ErrTruncatedData},
		{"unterminated varint", []byte{0x80}, ErrSerializationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalID(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMarshalUnmarshalVector(t *testing.T) {
	tests := []struct {
		name string
		vec  []float32
	}{
		{"empty", []float32{}},
		{"simple", []float32{0.1, -0.2, 3}},
		{"special values", []float32{0, float32(math.Inf(1)), math.MaxFloat32, math.SmallestNonzeroFloat32}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalVector(tt.vec)
			assert.Len(t, data, 1+len(tt.vec)*4)

			decoded, err := UnmarshalVector(data)
			require.NoError(t, err)
			assert.Equal(t, tt.vec, decoded)
		})
	}
}

func TestUnmarshalVector_Invalid(t *testing.T) {
	valid := MarshalVector([]float32{1, 2})

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTruncatedData},
		{"cut short", valid[:len(valid)-1], ErrSerializationFailed},
		{"trailing bytes", append(append([]byte{}, valid...), 0), ErrTruncatedData},
		{"length past data", []byte{0x7f, 1, 2, 3, 4}, ErrSerializationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalVector(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMarshalUnmarshalCheckpoint(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	in := &core.Checkpoint{
		Corpus:      "grants",
		Source:      "data/grants.csv",
		Model:       "bge-base-en-v1.5",
		Records:     12,
		Fingerprint: core.Fingerprint([]string{"a", "b"}),
		UpdatedAt:   now,
	}

	out, err := UnmarshalCheckpoint(MarshalCheckpoint(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestUnmarshalCheckpoint_Invalid(t *testing.T) {
	data := MarshalCheckpoint(&core.Checkpoint{Corpus: "buyers", Model: "m", Records: 3})

	_, err := UnmarshalCheckpoint(data[:len(data)-2])
	assert.ErrorIs(t, err, ErrSerializationFailed)

	_, err = UnmarshalCheckpoint(nil)
	assert.ErrorIs(t, err, ErrTruncatedData)
}
