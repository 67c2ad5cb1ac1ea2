package config

import "strings"

const badFileName = "_bad_file_name_"

func cleanName(in, banned string) string {
	out := strings.Map(func(sym rune) rune {
		if sym == 0 || strings.ContainsRune(banned, sym) {
			return -1
		}
		return sym
	}, in)
	if len(out) == 0 {
		return badFileName
	}
	return out
}
