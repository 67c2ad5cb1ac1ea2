package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"cssbem/archive"
	"cssbem/bem"
	"cssbem/css"
	"cssbem/state"
)

// stdio is the source name meaning "read STDIN, write STDOUT".
const stdio = "-"

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}

	if cmd.IsSet("style") {
		style, err := bem.ParseStyle(cmd.String("style"))
		if err != nil {
			return fmt.Errorf("bad --style value: %w", err)
		}
		env.Cfg.Transform.Style = style
	}
	if cmd.IsSet("namespace") {
		env.Cfg.Transform.DefaultNamespace = cmd.String("namespace")
	}
	tr, err := env.Transformer()
	if err != nil {
		return fmt.Errorf("unable to prepare transformation: %w", err)
	}

	if src == stdio {
		if cmd.Args().Len() > 1 {
			log.Warn("Malformed command line, destination is ignored for STDIN", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
		}
		return processStream(ctx, os.Stdin, os.Stdout, tr, log)
	}

	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("style", env.Cfg.Transform.Style))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, tr, log)
}

// process determines the input type (directory, archive with optional path
// inside, or single stylesheet) and processes it accordingly.
func process(ctx context.Context, src, dst string, tr *bem.Transformer, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return processDir(ctx, head, dst, tr, log)
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			pathIn := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := processArchive(ctx, head, pathIn, "", dst, tr, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			return nil
		}

		sheet, enc, err := isStylesheetFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if !sheet || len(tail) != 0 {
			return fmt.Errorf("input was not recognized as stylesheet (%s)", head)
		}
		file, err := os.Open(head)
		if err != nil {
			return err
		}
		defer file.Close()
		return processSheet(ctx, selectReader(file, enc), filepath.Base(head), dst, tr, log)
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

// processDir walks directory tree finding stylesheets and archives and
// processes them in natural order of their paths. Problems with individual
// files do not stop processing, they are collected and returned together.
func processDir(ctx context.Context, dir, dst string, tr *bem.Transformer, log *zap.Logger) error {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if info.Mode().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sort.Sort(natural.StringSlice(files))

	var (
		count    int
		failures error
	)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return multierr.Append(failures, err)
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		handled, err := processDirEntry(ctx, path, rel, dst, tr, log)
		if handled {
			count++
		}
		if err != nil {
			failures = multierr.Append(failures, fmt.Errorf("%s: %w", rel, err))
		}
	}
	if failures == nil && count == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
	}
	return failures
}

// processDirEntry processes single file found in directory. It reports whether
// file was recognized as stylesheet or archive.
func processDirEntry(ctx context.Context, path, rel, dst string, tr *bem.Transformer, log *zap.Logger) (bool, error) {
	isArchive, err := isArchiveFile(path)
	if err != nil {
		log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
		return false, nil
	}
	if isArchive {
		if err := processArchive(ctx, path, "", filepath.Dir(rel), dst, tr, log); err != nil {
			log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			return true, err
		}
		return true, nil
	}

	sheet, enc, err := isStylesheetFile(path)
	if err != nil {
		log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
		return false, nil
	}
	if !sheet {
		log.Debug("Skipping file, not recognized as stylesheet or archive", zap.String("file", path))
		return false, nil
	}

	file, err := os.Open(path)
	if err != nil {
		log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		return true, err
	}
	defer file.Close()

	if err := processSheet(ctx, selectReader(file, enc), rel, dst, tr, log); err != nil {
		log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		return true, err
	}
	return true, nil
}

// processArchive processes stylesheets found inside archive under "pathIn".
// Output keeps archive relative directory "pathOut".
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, tr *bem.Transformer, log *zap.Logger) (err error) {
	env := state.EnvFromContext(ctx)

	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	var opts []archive.Option
	if env.CodePage != nil {
		opts = append(opts, archive.WithCodePage(env.CodePage))
	}

	var failures error
	err = archive.Walk(path, pathIn, func(archive, name string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		sheet, enc, err := isStylesheetInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", archive), zap.String("path", name), zap.Error(err))
			return nil
		}
		if !sheet {
			log.Debug("Skipping file, not recognized as stylesheet", zap.String("archive", archive), zap.String("file", name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive", zap.String("archive", archive), zap.String("file", name), zap.Error(err))
			failures = multierr.Append(failures, err)
			return nil
		}
		defer r.Close()

		if err := processSheet(ctx, selectReader(r, enc), filepath.Join(pathOut, filepath.FromSlash(name)), dst, tr, log); err != nil {
			log.Error("Unable to process file in archive", zap.String("archive", archive), zap.String("file", name), zap.Error(err))
			failures = multierr.Append(failures, fmt.Errorf("%s: %w", name, err))
		}
		return nil
	}, opts...)
	return multierr.Append(err, failures)
}

type result struct {
	sheet      *css.Stylesheet
	source     []byte
	tree       string // parsed tree before transformation
	components []string
}

func logWarnings(sheet *css.Stylesheet, src string, log *zap.Logger) {
	for _, w := range sheet.Warnings {
		log.Warn("Stylesheet problem", zap.String("file", src), zap.Int("line", w.Line), zap.String("text", w.Text))
	}
}

// transformSheet parses and rewrites single stylesheet reporting all
// warnings. Source data is returned even when transformation fails.
func transformSheet(r io.Reader, src string, tr *bem.Transformer, log *zap.Logger) (*result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read stylesheet: %w", err)
	}

	res := &result{source: data, sheet: css.NewParser(log).Parse(data, src)}
	res.tree = res.sheet.Dump()
	res.components = tr.Components(res.sheet)
	for _, imp := range res.sheet.AtRules("import") {
		log.Debug("Imported stylesheet is not processed", zap.String("file", src), zap.String("import", imp.Params), zap.Int("line", imp.Line))
	}

	err = tr.Transform(res.sheet)
	logWarnings(res.sheet, src, log)
	if err != nil {
		return res, fmt.Errorf("unable to transform stylesheet (%s): %w", src, err)
	}
	log.Debug("Stylesheet transformed", zap.String("file", src), zap.Int("rules", len(res.sheet.Rules())), zap.Strings("components", res.components))
	return res, nil
}

// processSheet transforms single stylesheet. "src" is path relative to the
// processed root including file name, "dst" is the destination directory.
func processSheet(ctx context.Context, r io.Reader, src, dst string, tr *bem.Transformer, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Info("Conversion starting", zap.String("from", src))
	defer func(start time.Time) {
		log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
	}(time.Now())

	res, err := transformSheet(r, src, tr, log)
	if res != nil && env.Rpt != nil {
		env.Rpt.StoreData(path.Join("source", filepath.ToSlash(src)), res.source)
		env.Rpt.StoreData(path.Join("tree", filepath.ToSlash(src)+".txt"), []byte(res.tree))
	}
	if err != nil {
		return err
	}

	outputName = buildOutputPath(src, dst, newValues(src, res.components, &env.Cfg.Transform), env)

	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := writeSheet(res.sheet, outputName); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	env.Rpt.Store(path.Join("result", filepath.ToSlash(src)), outputName)
	return nil
}

func writeSheet(sheet *css.Stylesheet, name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	_, err = sheet.WriteTo(f)
	return err
}

// processStream transforms STDIN to STDOUT.
func processStream(ctx context.Context, in io.Reader, out io.Writer, tr *bem.Transformer, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r, _, err := peekStream(in)
	if err != nil {
		return fmt.Errorf("unable to read STDIN: %w", err)
	}
	res, err := transformSheet(r, "STDIN", tr, log)
	if err != nil {
		return err
	}
	buf := new(bytes.Buffer)
	if _, err := res.sheet.WriteTo(buf); err != nil {
		return err
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("unable to write STDOUT: %w", err)
	}
	return nil
}
