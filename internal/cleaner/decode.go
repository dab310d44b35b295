package cleaner

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Veraticus/numbercruncher/internal/common"
)

// Supported input encodings.
const (
	EncodingAuto        = "auto"
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingLatin1      = "latin1"
)

// Decode converts raw file bytes to UTF-8. In auto mode a UTF-8 or UTF-16
// byte order mark selects the decoder; without one the input must already be
// valid UTF-8. Binary content is rejected.
func Decode(data []byte, encoding string) ([]byte, error) {
	var t transform.Transformer
	switch strings.ToLower(encoding) {
	case EncodingAuto, "":
		t = unicode.BOMOverride(transform.Nop)
	case EncodingUTF8, "utf8":
		t = unicode.BOMOverride(unicode.UTF8.NewDecoder())
	case EncodingWindows1252, "cp1252":
		t = charmap.Windows1252.NewDecoder()
	case EncodingLatin1, "iso-8859-1":
		t = charmap.ISO8859_1.NewDecoder()
	default:
		return nil, fmt.Errorf("%w: unsupported encoding %q", common.ErrInvalidConfig, encoding)
	}

	out, _, err := transform.Bytes(t, data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", common.ErrLoadFailed, encoding, err)
	}
	if !utf8.Valid(out) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8 (set input.encoding)", common.ErrLoadFailed)
	}
	if bytes.IndexByte(out, 0) >= 0 {
		return nil, fmt.Errorf("%w: input contains binary data", common.ErrLoadFailed)
	}
	return out, nil
}
