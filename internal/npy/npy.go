// Package npy reads and writes NumPy .npy files, enough of the format for
// swath input and tile output: little-endian C-order arrays of f4, f8, i8
// and u1 elements.
package npy

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

var magic = []byte("\x93NUMPY")

// header describes one .npy array.
type header struct {
	descr        string
	fortranOrder bool
	shape        []int
}

// elems returns the element count implied by the shape.
func (h header) elems() int {
	n := 1
	for _, d := range h.shape {
		n *= d
	}
	return n
}

// Read decodes a .npy stream into a flat float32 buffer plus its shape.
// f8 and u1 element types are converted to float32 on the way in.
func Read(r io.Reader) ([]int, []float32, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, nil, err
	}
	if h.fortranOrder {
		return nil, nil, fmt.Errorf("npy: fortran-order arrays are not supported")
	}

	n := h.elems()
	out := make([]float32, n)

	switch h.descr {
	case "<f4":
		if err := binary.Read(r, binary.LittleEndian, out); err != nil {
			return nil, nil, fmt.Errorf("npy: read f4 data: %w", err)
		}
	case "<f8":
		buf := make([]float64, n)
		if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
			return nil, nil, fmt.Errorf("npy: read f8 data: %w", err)
		}
		for i, v := range buf {
			out[i] = float32(v)
		}
	case "|u1", "|b1":
		buf := make([]uint8, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, nil, fmt.Errorf("npy: read u1 data: %w", err)
		}
		for i, v := range buf {
			out[i] = float32(v)
		}
	default:
		return nil, nil, fmt.Errorf("npy: unsupported dtype %q", h.descr)
	}

	return h.shape, out, nil
}

// ReadFile decodes a .npy file.
func ReadFile(path string) ([]int, []float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Read(f)
}

// Write encodes a flat float32 buffer with the given shape as an <f4 array.
func Write(w io.Writer, shape []int, data []float32) error {
	if err := checkLen(shape, len(data)); err != nil {
		return err
	}
	if err := writeHeader(w, "<f4", shape); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

// WriteInt64 encodes a flat int64 buffer with the given shape as an <i8
// array. Tile metadata is persisted this way.
func WriteInt64(w io.Writer, shape []int, data []int64) error {
	if err := checkLen(shape, len(data)); err != nil {
		return err
	}
	if err := writeHeader(w, "<i8", shape); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

// WriteFile encodes data to a .npy file as <f4.
func WriteFile(path string, shape []int, data []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, shape, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteInt64File encodes data to a .npy file as <i8.
func WriteInt64File(path string, shape []int, data []int64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteInt64(f, shape, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func checkLen(shape []int, n int) error {
	want := 1
	for _, d := range shape {
		want *= d
	}
	if n != want {
		return fmt.Errorf("npy: data length %d does not match shape %v", n, shape)
	}
	return nil
}

// readHeader parses the magic, version and header dict.
func readHeader(r io.Reader) (header, error) {
	var h header

	pre := make([]byte, 8)
	if _, err := io.ReadFull(r, pre); err != nil {
		return h, fmt.Errorf("npy: read preamble: %w", err)
	}
	if string(pre[:6]) != string(magic) {
		return h, fmt.Errorf("npy: bad magic")
	}
	major := pre[6]

	var hlen int
	switch major {
	case 1:
		var l uint16
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return h, fmt.Errorf("npy: read header length: %w", err)
		}
		hlen = int(l)
	case 2, 3:
		var l uint32
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return h, fmt.Errorf("npy: read header length: %w", err)
		}
		hlen = int(l)
	default:
		return h, fmt.Errorf("npy: unsupported version %d.%d", pre[6], pre[7])
	}

	raw := make([]byte, hlen)
	if _, err := io.ReadFull(r, raw); err != nil {
		return h, fmt.Errorf("npy: read header: %w", err)
	}

	return parseHeader(string(raw))
}

// parseHeader pulls descr, fortran_order and shape out of the python dict
// literal that forms the .npy header.
func parseHeader(s string) (header, error) {
	var h header

	descr, err := dictValue(s, "descr")
	if err != nil {
		return h, err
	}
	h.descr = strings.Trim(descr, "'\"")

	order, err := dictValue(s, "fortran_order")
	if err != nil {
		return h, err
	}
	h.fortranOrder = strings.HasPrefix(order, "True")

	shape, err := dictValue(s, "shape")
	if err != nil {
		return h, err
	}
	open := strings.Index(shape, "(")
	clos := strings.Index(shape, ")")
	if open < 0 || clos < open {
		return h, fmt.Errorf("npy: malformed shape %q", shape)
	}
	for _, part := range strings.Split(shape[open+1:clos], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return h, fmt.Errorf("npy: malformed shape %q: %w", shape, err)
		}
		h.shape = append(h.shape, d)
	}

	return h, nil
}

// dictValue returns the raw text following 'key': up to the next top-level
// comma or closing brace.
func dictValue(s, key string) (string, error) {
	for _, quoted := range []string{"'" + key + "'", `"` + key + `"`} {
		idx := strings.Index(s, quoted)
		if idx < 0 {
			continue
		}
		rest := s[idx+len(quoted):]
		colon := strings.Index(rest, ":")
		if colon < 0 {
			break
		}
		rest = strings.TrimSpace(rest[colon+1:])

		depth := 0
		for i, c := range rest {
			switch c {
			case '(', '[':
				depth++
			case ')', ']':
				depth--
			case ',', '}':
				if depth == 0 {
					return strings.TrimSpace(rest[:i]), nil
				}
			}
		}
		return strings.TrimSpace(rest), nil
	}
	return "", fmt.Errorf("npy: header key %q not found", key)
}

// writeHeader emits the magic, version 1.0 and a 64-byte aligned header dict.
func writeHeader(w io.Writer, descr string, shape []int) error {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	tuple := strings.Join(dims, ", ")
	if len(shape) == 1 {
		tuple += ","
	}
	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': (%s), }", descr, tuple)

	// Pad with spaces so magic+version+length+dict+newline is a multiple
	// of 64 bytes.
	total := len(magic) + 2 + 2 + len(dict) + 1
	pad := (64 - total%64) % 64
	if len(dict)+1+pad > math.MaxUint16 {
		return fmt.Errorf("npy: header too large")
	}

	buf := make([]byte, 0, total+pad)
	buf = append(buf, magic...)
	buf = append(buf, 1, 0)
	hlen := uint16(len(dict) + pad + 1)
	buf = append(buf, byte(hlen), byte(hlen>>8))
	buf = append(buf, dict...)
	buf = append(buf, strings.Repeat(" ", pad)...)
	buf = append(buf, '\n')

	_, err := w.Write(buf)
	return err
}
