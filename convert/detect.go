package convert

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

func (e srcEncoding) String() string {
	switch e {
	case encUTF8:
		return "utf8"
	case encUTF16BigEndian:
		return "utf16be"
	case encUTF16LittleEndian:
		return "utf16le"
	case encUTF32BigEndian:
		return "utf32be"
	case encUTF32LittleEndian:
		return "utf32le"
	default:
		return "unknown"
	}
}

// headerSize is how much of the file is looked at when detecting its type.
const headerSize = 1024

var typeCSS = filetype.NewType("css", "text/css")

func init() {
	filetype.AddMatcher(typeCSS, cssMatcher)
}

// cssMatcher accepts plain text without BOM: valid UTF-8 with no control
// characters other than CSS whitespace.
func cssMatcher(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	// header may cut the last rune
	for i := 0; i < utf8.UTFMax && !utf8.Valid(buf); i++ {
		buf = buf[:len(buf)-1]
	}
	if !utf8.Valid(buf) {
		return false
	}
	for _, b := range buf {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' && b != '\f' {
			return false
		}
	}
	return true
}

func isUTF8BOM3(buf []byte) bool {
	return buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// detectUTF looks for byte order mark. UTF-32 LE must be checked before
// UTF-16 LE as they share first two bytes.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case len(buf) >= 4 && isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case len(buf) >= 4 && isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case len(buf) >= 3 && isUTF8BOM3(buf):
		return encUTF8
	case len(buf) >= 2 && isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case len(buf) >= 2 && isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// selectReader returns reader producing UTF-8 without BOM.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	case encUTF16BigEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF16LittleEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF32BigEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder())
	case encUTF32LittleEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder())
	}
	panic(fmt.Sprintf("unexpected source encoding %d", enc))
}

func readHeader(r io.Reader) ([]byte, error) {
	buf := make([]byte, headerSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

func headerOfFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readHeader(f)
}

// classifyHeader decides whether header belongs to stylesheet.
func classifyHeader(buf []byte) (bool, srcEncoding) {
	if len(buf) == 0 {
		// empty stylesheet is still a stylesheet
		return true, encUnknown
	}
	if enc := detectUTF(buf); enc != encUnknown {
		return true, enc
	}
	kind, err := filetype.Match(buf)
	if err != nil {
		return false, encUnknown
	}
	return kind == typeCSS, encUnknown
}

func hasStylesheetExt(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".css")
}

func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	buf, err := headerOfFile(path)
	if err != nil {
		return false, err
	}
	kind, err := filetype.Match(buf)
	if err != nil {
		// empty file
		return false, nil
	}
	return kind == matchers.TypeZip, nil
}

func isStylesheetFile(path string) (bool, srcEncoding, error) {
	if !hasStylesheetExt(path) {
		return false, encUnknown, nil
	}
	buf, err := headerOfFile(path)
	if err != nil {
		return false, encUnknown, err
	}
	ok, enc := classifyHeader(buf)
	return ok, enc, nil
}

func isStylesheetInArchive(f *zip.File) (bool, srcEncoding, error) {
	if !hasStylesheetExt(f.Name) {
		return false, encUnknown, nil
	}
	r, err := f.Open()
	if err != nil {
		return false, encUnknown, err
	}
	defer r.Close()

	buf, err := readHeader(r)
	if err != nil {
		return false, encUnknown, err
	}
	ok, enc := classifyHeader(buf)
	return ok, enc, nil
}

// peekStream detects encoding of non seekable input and returns reader
// replaying consumed header.
func peekStream(r io.Reader) (io.Reader, srcEncoding, error) {
	buf, err := readHeader(r)
	if err != nil {
		return nil, encUnknown, err
	}
	enc := detectUTF(buf)
	return selectReader(io.MultiReader(bytes.NewReader(buf), r), enc), enc, nil
}
