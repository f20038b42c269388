package fbx

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Binary FBX layout: the magic, two reserved bytes, a little-endian uint32
// version, then a flat list of node records terminated by a null record.
// From version 7500 the per-record length fields widen from 32 to 64 bits.
const (
	binaryHeaderLen   = len("Kaydara FBX Binary  \x00") + 2 + 4
	wideOffsetVersion = 7500

	// maxArrayBytes caps the decoded size of one array attribute. The
	// declared element count is untrusted input: a compressed array can
	// claim far more elements than its payload could ever hold.
	maxArrayBytes = 256 << 20
)

type binaryReader struct {
	data []byte
	off  int
	wide bool
}

func parseBinary(data []byte) (*Document, error) {
	if len(data) < binaryHeaderLen {
		return nil, fmt.Errorf("binary fbx: truncated header")
	}
	version := int(binary.LittleEndian.Uint32(data[binaryHeaderLen-4:]))

	r := &binaryReader{
		data: data,
		off:  binaryHeaderLen,
		wide: version >= wideOffsetVersion,
	}

	doc := &Document{
		Version: version,
		Format:  FormatBinary,
	}
	for {
		node, err := r.readNode()
		if err != nil {
			return nil, fmt.Errorf("binary fbx: %w", err)
		}
		if node == nil {
			break
		}
		doc.Roots = append(doc.Roots, node)
	}
	return doc, nil
}

// readNode reads one node record. A null record (end offset zero) marks
// the end of a sibling list and returns nil.
func (r *binaryReader) readNode() (*Node, error) {
	endOffset, err := r.readLength()
	if err != nil {
		return nil, err
	}
	numProps, err := r.readLength()
	if err != nil {
		return nil, err
	}
	propListLen, err := r.readLength()
	if err != nil {
		return nil, err
	}
	nameLen, err := r.readByte()
	if err != nil {
		return nil, err
	}

	if endOffset == 0 {
		// Null record.
		return nil, nil
	}
	if endOffset > uint64(len(r.data)) || endOffset < uint64(r.off) {
		return nil, fmt.Errorf("node end offset %d out of range", endOffset)
	}

	name, err := r.readBytes(int(nameLen))
	if err != nil {
		return nil, err
	}
	node := &Node{Name: string(name)}

	propEnd := r.off + int(propListLen)
	if propEnd > len(r.data) {
		return nil, fmt.Errorf("property list for %q out of range", node.Name)
	}
	for i := uint64(0); i < numProps; i++ {
		attr, err := r.readAttribute()
		if err != nil {
			return nil, fmt.Errorf("property %d of %q: %w", i, node.Name, err)
		}
		node.Attributes = append(node.Attributes, attr)
	}
	if r.off != propEnd {
		return nil, fmt.Errorf("property list length mismatch in %q", node.Name)
	}

	// Whatever remains before the end offset is the nested node list,
	// terminated by a null record.
	for uint64(r.off) < endOffset {
		child, err := r.readNode()
		if err != nil {
			return nil, err
		}
		if child == nil {
			break
		}
		node.Children = append(node.Children, child)
	}
	if uint64(r.off) != endOffset {
		return nil, fmt.Errorf("node %q does not end at its end offset", node.Name)
	}
	return node, nil
}

func (r *binaryReader) readAttribute() (Attribute, error) {
	code, err := r.readByte()
	if err != nil {
		return Attribute{}, err
	}
	switch code {
	case 'C':
		b, err := r.readByte()
		if err != nil {
			return Attribute{}, err
		}
		return BoolAttr(b&1 == 1), nil
	case 'Y':
		raw, err := r.readBytes(2)
		if err != nil {
			return Attribute{}, err
		}
		return Int16Attr(int16(binary.LittleEndian.Uint16(raw))), nil
	case 'I':
		raw, err := r.readBytes(4)
		if err != nil {
			return Attribute{}, err
		}
		return Int32Attr(int32(binary.LittleEndian.Uint32(raw))), nil
	case 'L':
		raw, err := r.readBytes(8)
		if err != nil {
			return Attribute{}, err
		}
		return Int64Attr(int64(binary.LittleEndian.Uint64(raw))), nil
	case 'F':
		raw, err := r.readBytes(4)
		if err != nil {
			return Attribute{}, err
		}
		return Float32Attr(math.Float32frombits(binary.LittleEndian.Uint32(raw))), nil
	case 'D':
		raw, err := r.readBytes(8)
		if err != nil {
			return Attribute{}, err
		}
		return Float64Attr(math.Float64frombits(binary.LittleEndian.Uint64(raw))), nil
	case 'S':
		raw, err := r.readBlob()
		if err != nil {
			return Attribute{}, err
		}
		return StringAttr(string(raw)), nil
	case 'R':
		raw, err := r.readBlob()
		if err != nil {
			return Attribute{}, err
		}
		return BytesAttr(raw), nil
	case 'b', 'i', 'l', 'f', 'd':
		return r.readArray(code)
	}
	return Attribute{}, fmt.Errorf("unknown attribute code %q", code)
}

func (r *binaryReader) readArray(code byte) (Attribute, error) {
	count, err := r.readUint32()
	if err != nil {
		return Attribute{}, err
	}
	encoding, err := r.readUint32()
	if err != nil {
		return Attribute{}, err
	}
	byteLen, err := r.readUint32()
	if err != nil {
		return Attribute{}, err
	}

	payload, err := r.readBytes(int(byteLen))
	if err != nil {
		return Attribute{}, err
	}

	elemSize := map[byte]int{'b': 1, 'i': 4, 'l': 8, 'f': 4, 'd': 8}[code]
	if int64(count)*int64(elemSize) > maxArrayBytes {
		return Attribute{}, fmt.Errorf("array of %d elements exceeds the %d byte cap", count, maxArrayBytes)
	}
	want := int(count) * elemSize

	switch encoding {
	case 0:
		if len(payload) != want {
			return Attribute{}, fmt.Errorf("array payload length %d, want %d", len(payload), want)
		}
	case 1:
		zr, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return Attribute{}, fmt.Errorf("array inflate: %w", err)
		}
		defer zr.Close()
		inflated := make([]byte, want)
		if _, err := io.ReadFull(zr, inflated); err != nil {
			return Attribute{}, fmt.Errorf("array inflate: %w", err)
		}
		payload = inflated
	default:
		return Attribute{}, fmt.Errorf("unknown array encoding %d", encoding)
	}

	switch code {
	case 'b':
		out := make([]bool, count)
		for i := range out {
			out[i] = payload[i]&1 == 1
		}
		return BoolArrayAttr(out), nil
	case 'i':
		out := make([]int32, count)
		for i := range out {
			out[i] = int32(binary.LittleEndian.Uint32(payload[i*4:]))
		}
		return Int32ArrayAttr(out), nil
	case 'l':
		out := make([]int64, count)
		for i := range out {
			out[i] = int64(binary.LittleEndian.Uint64(payload[i*8:]))
		}
		return Int64ArrayAttr(out), nil
	case 'f':
		out := make([]float32, count)
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[i*4:]))
		}
		return Float32ArrayAttr(out), nil
	default:
		out := make([]float64, count)
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[i*8:]))
		}
		return Float64ArrayAttr(out), nil
	}
}

// readLength reads one record length field: 32 bits before version 7500,
// 64 bits after.
func (r *binaryReader) readLength() (uint64, error) {
	if r.wide {
		raw, err := r.readBytes(8)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(raw), nil
	}
	v, err := r.readUint32()
	return uint64(v), err
}

func (r *binaryReader) readUint32() (uint32, error) {
	raw, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(raw), nil
}

func (r *binaryReader) readByte() (byte, error) {
	if r.off >= len(r.data) {
		return 0, io.ErrUnexpectedEOF
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

func (r *binaryReader) readBlob() ([]byte, error) {
	n, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	return r.readBytes(int(n))
}

func (r *binaryReader) readBytes(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.data) {
		return nil, io.ErrUnexpectedEOF
	}
	out := r.data[r.off : r.off+n]
	r.off += n
	return out, nil
}
