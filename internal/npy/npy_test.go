package npy

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	data := make([]float32, 24)
	for i := range data {
		data[i] = float32(i) * 0.5
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []int{2, 3, 4}, data))

	shape, got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, shape)
	assert.Equal(t, data, got)
}

func TestHeaderAlignment(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []int{5}, make([]float32, 5)))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, []byte("\x93NUMPY")))

	hlen := int(binary.LittleEndian.Uint16(raw[8:10]))
	assert.Equal(t, 0, (10+hlen)%64, "header must pad to a 64-byte boundary")
	assert.Equal(t, byte('\n'), raw[10+hlen-1])

	// One-element shapes keep the tuple comma.
	assert.Contains(t, string(raw[10:10+hlen]), "(5,)")
}

func TestReadFloat64(t *testing.T) {
	// A hand-built v1.0 header around <f8 data, as numpy itself writes it.
	dict := "{'descr': '<f8', 'fortran_order': False, 'shape': (2, 2), }"
	pad := (64 - (10+len(dict)+1)%64) % 64
	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.Write([]byte{1, 0})
	hlen := uint16(len(dict) + pad + 1)
	binary.Write(&buf, binary.LittleEndian, hlen)
	buf.WriteString(dict)
	buf.Write(bytes.Repeat([]byte{' '}, pad))
	buf.WriteByte('\n')
	binary.Write(&buf, binary.LittleEndian, []float64{1, 2, 3, 4})

	shape, got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, shape)
	assert.Equal(t, []float32{1, 2, 3, 4}, got)
}

func TestReadRejectsFortranOrder(t *testing.T) {
	dict := "{'descr': '<f4', 'fortran_order': True, 'shape': (4,), }"
	pad := (64 - (10+len(dict)+1)%64) % 64
	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.Write([]byte{1, 0})
	hlen := uint16(len(dict) + pad + 1)
	binary.Write(&buf, binary.LittleEndian, hlen)
	buf.WriteString(dict)
	buf.Write(bytes.Repeat([]byte{' '}, pad))
	buf.WriteByte('\n')
	binary.Write(&buf, binary.LittleEndian, make([]float32, 4))

	_, _, err := Read(&buf)
	require.ErrorContains(t, err, "fortran")
}

func TestReadBadMagic(t *testing.T) {
	_, _, err := Read(bytes.NewReader([]byte("not a npy file at all")))
	require.Error(t, err)
}

func TestWriteInt64(t *testing.T) {
	var buf bytes.Buffer
	meta := []int64{0, 3, 10, 13}
	require.NoError(t, WriteInt64(&buf, []int{1, 2, 2}, meta))

	raw := buf.Bytes()
	hlen := int(binary.LittleEndian.Uint16(raw[8:10]))
	header := string(raw[10 : 10+hlen])
	assert.Contains(t, header, "'<i8'")
	assert.Contains(t, header, "(1, 2, 2)")

	body := raw[10+hlen:]
	require.Len(t, body, 4*8)
	got := make([]int64, 4)
	require.NoError(t, binary.Read(bytes.NewReader(body), binary.LittleEndian, got))
	assert.Equal(t, meta, got)
}

func TestShapeMismatch(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []int{2, 2}, make([]float32, 3))
	require.Error(t, err)
}
