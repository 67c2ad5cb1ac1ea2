// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"golang.org/x/text/encoding"
)

// WalkFunc is called for each file visited by Walk. The archive argument is
// path to archive passed to Walk, name is the entry name decoded to UTF-8. If
// an error is returned, processing stops.
type WalkFunc func(archive, name string, file *zip.File) error

type options struct {
	match    func(name string) bool
	codePage encoding.Encoding
}

type Option func(*options)

// WithMatch limits visited entries to those accepted by fn.
func WithMatch(fn func(name string) bool) Option {
	return func(o *options) {
		o.match = fn
	}
}

// WithCodePage forces encoding for entry names not flagged as UTF-8.
func WithCodePage(enc encoding.Encoding) Option {
	return func(o *options) {
		o.codePage = enc
	}
}

// Walk visits files in the archive with names starting with prefix in natural
// order of their names. Entries with absolute paths or ".." components make
// the whole archive rejected.
func Walk(archive, prefix string, walkFn WalkFunc, opts ...Option) error {
	o := options{match: func(string) bool { return true }}
	for _, opt := range opts {
		opt(&o)
	}

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	byName := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		name, err := o.decodeName(f)
		if err != nil {
			return fmt.Errorf("zip entry %q: %w", f.Name, err)
		}
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) || !o.match(name) {
			continue
		}
		if _, dup := byName[name]; !dup {
			names = append(names, name)
		}
		byName[name] = f
	}
	sort.Sort(natural.StringSlice(names))

	for _, name := range names {
		if err := walkFn(archive, name, byName[name]); err != nil {
			return err
		}
	}
	return nil
}

func (o *options) decodeName(f *zip.File) (string, error) {
	if o.codePage == nil || !f.NonUTF8 {
		return f.Name, nil
	}
	return o.codePage.NewDecoder().String(f.Name)
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
