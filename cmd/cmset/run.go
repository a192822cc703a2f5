package main

import (
	"io"
	"io/fs"
	stdmath "math"
	"math/big"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/graph-guard/cmset/pkg/cli"
	"github.com/graph-guard/cmset/pkg/scenario"
	"github.com/phuslu/log"
)

// run evaluates all scenarios found at c.ScenariosPath
// and logs every result line to w.
func run(w io.Writer, c cli.CommandRun) (ok bool) {
	l := log.Logger{
		Level:  log.ParseLevel(c.LogLevel),
		Writer: &log.IOWriter{Writer: w},
	}
	l.Context = log.NewContext(nil).
		Str("run", uuid.NewString()).Value()

	filesystem, filePath := scenarioFS(c.ScenariosPath)
	l.Debug().Str("path", c.ScenariosPath).Msg("loading scenarios")

	doc, err := scenario.Load(filesystem, filePath)
	if err != nil {
		l.Error().Err(err).Str("path", c.ScenariosPath).Msg("loading scenarios")
		return false
	}
	l.Debug().
		Int("positional", len(doc.Positional)).
		Int("keyed", len(doc.Keyed)).
		Msg("scenarios loaded")

	results, err := doc.Evaluate()
	if err != nil {
		l.Error().Err(err).Msg("evaluating scenarios")
		return false
	}

	for _, r := range results {
		for _, ln := range r.Lines {
			l.Info().
				Str("scenario", r.Name).
				Str("kind", string(r.Kind)).
				Str("label", ln.Label).
				Str("value", formatCount(ln.Value)).
				Msg("")
		}
	}
	l.Info().Int("scenarios", len(results)).Msg("done")
	return true
}

// scenarioFS splits p into a filesystem rooted at
// the directory containing p and the path relative to it.
func scenarioFS(p string) (fs.FS, string) {
	if s, err := os.Stat(p); err == nil && s.IsDir() {
		return os.DirFS(p), "."
	}
	return os.DirFS(filepath.Dir(p)), filepath.Base(p)
}

func formatCount(v uint64) string {
	if v > stdmath.MaxInt64 {
		return humanize.BigComma(new(big.Int).SetUint64(v))
	}
	return humanize.Comma(int64(v))
}
