package convert

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"cssbem/config"
	"cssbem/state"
)

// buildOutputPath returns output file path for the source. "src" is path
// relative to the processed root (or base name of a single file). Output name
// is either derived from source name or expanded from configured template,
// which may introduce subdirectories. Every path segment coming from the name
// is cleaned and if requested transliterated.
func buildOutputPath(src, dst string, values Values, env *state.LocalEnv) string {
	outDir := determineOutputDir(src, dst, env)
	out := &env.Cfg.Output

	if out.NameTemplate != "" {
		expanded, err := expandTemplate(config.OutputNameTemplateFieldName, out.NameTemplate, values)
		if err != nil {
			env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		} else if segments := splitPath(filepath.FromSlash(expanded)); len(segments) > 0 {
			parts := make([]string, 0, len(segments)+1)
			parts = append(parts, outDir)
			for i, segment := range segments {
				segment = cleanPathSegment(segment, out.Transliterate)
				if i == len(segments)-1 {
					segment += out.Extension
				}
				parts = append(parts, segment)
			}
			return filepath.Join(parts...)
		}
		// fallback to default name
	}

	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(outDir, cleanPathSegment(base, out.Transliterate)+out.Extension)
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

// splitPath returns non empty path elements.
func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(filepath.ToSlash(path), "/") {
		if s = strings.TrimSpace(s); s != "" && s != "." && s != ".." {
			segments = append(segments, s)
		}
	}
	return segments
}

func cleanPathSegment(segment string, transliterate bool) string {
	if transliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
