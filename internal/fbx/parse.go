package fbx

import (
	"bytes"
	"errors"
	"fmt"
)

// binaryMagic is the fixed prefix of every binary FBX file, including the
// trailing NUL.
var binaryMagic = []byte("Kaydara FBX Binary  \x00")

// ErrNotFBX reports that the input matches neither container form.
var ErrNotFBX = errors.New("not an FBX file")

// DetectFormat sniffs the container form from the file's leading bytes.
func DetectFormat(data []byte) (Format, error) {
	if bytes.HasPrefix(data, binaryMagic) {
		return FormatBinary, nil
	}
	// The ASCII form has no magic. Accept anything that starts with a
	// comment or a node name; binary garbage fails the parse instead.
	for _, b := range data {
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			continue
		case b == ';' || b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z'):
			return FormatASCII, nil
		default:
			return "", ErrNotFBX
		}
	}
	return "", ErrNotFBX
}

// Parse reads an FBX document from raw file contents, dispatching on the
// container form.
func Parse(data []byte) (*Document, error) {
	format, err := DetectFormat(data)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatBinary:
		return parseBinary(data)
	case FormatASCII:
		return parseASCII(data)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}
