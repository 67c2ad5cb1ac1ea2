//go:build !windows

package config

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// CleanFileName removes characters not allowed in file names. Leading dots
// are dropped so results never become hidden files.
func CleanFileName(in string) string {
	out := strings.TrimLeft(cleanName(in, string(os.PathSeparator)+string(os.PathListSeparator)), ".")
	if len(out) == 0 {
		return badFileName
	}
	return out
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
