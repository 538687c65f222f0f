package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/linklabel/internal/linkfix"
	"github.com/dgallion1/linklabel/internal/parser"
	"github.com/dgallion1/linklabel/internal/pipeline"
	"github.com/dgallion1/linklabel/internal/settings"
)

// TransformCmd implements the 'transform' command.
type TransformCmd struct {
	Paths       []string `arg:"" optional:"" type:"existingfile" help:"Files to transform; stdin when omitted"`
	Format      string   `short:"f" default:"auto" enum:"auto,html,markdown,text" help:"Input format (auto guesses from the file extension)"`
	Pattern     []string `short:"p" sep:"none" help:"Generic link text to match; replaces the stored list (repeatable)"`
	Disable     bool     `help:"Run with labeling disabled (output equals input)"`
	InPlace     bool     `short:"i" name:"in-place" help:"Rewrite HTML files in place instead of printing"`
	HiddenClass string   `name:"hidden-class" default:"linklabel-sr-only" help:"Class of the appended screen-reader span"`
	Jobs        int      `short:"j" default:"4" help:"Files transformed in parallel"`
}

func (t *TransformCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.labelConfig(context.Background(), g)
	if err != nil {
		return err
	}
	if len(t.Pattern) > 0 {
		cfg.Patterns = settings.Normalize(t.Pattern)
	}
	if t.Disable {
		cfg.Enabled = false
	}

	if t.Jobs < 1 {
		t.Jobs = 1
	}
	w := pipeline.NewWorker(linkfix.New(linkfix.Options{HiddenClass: t.HiddenClass}), nil, nil, g.Logger)

	if len(t.Paths) == 0 {
		if t.InPlace {
			return fmt.Errorf("--in-place needs file arguments")
		}
		src, err := io.ReadAll(g.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		format, err := t.format("")
		if err != nil {
			return err
		}
		res, err := w.TransformUnit(cfg, pipeline.Unit{ID: "stdin", Kind: pipeline.KindPost, Format: format, Content: string(src)})
		if err != nil {
			return err
		}
		_, err = io.WriteString(g.Stdout, res.HTML)
		return err
	}

	formats := make([]parser.Format, len(t.Paths))
	for i, path := range t.Paths {
		format, err := t.format(path)
		if err != nil {
			return err
		}
		if t.InPlace && format != parser.FormatHTML {
			return fmt.Errorf("%s: --in-place only supports html input, got %s", path, format)
		}
		formats[i] = format
	}

	// Files are transformed concurrently; output keeps argument order and
	// nothing is written back until every file has succeeded.
	results := make([]pipeline.UnitResult, len(t.Paths))
	var eg errgroup.Group
	eg.SetLimit(t.Jobs)
	for i, path := range t.Paths {
		eg.Go(func() error {
			res, err := transformFile(w, cfg, path, formats[i])
			results[i] = res
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for i, res := range results {
		if !t.InPlace {
			if _, err := io.WriteString(g.Stdout, res.HTML); err != nil {
				return err
			}
			continue
		}
		if !res.Changed {
			continue
		}
		if err := writeInPlace(t.Paths[i], res.HTML); err != nil {
			return err
		}
		fmt.Fprintf(g.Stdout, "%s: labeled %d link(s)\n", t.Paths[i], len(res.Labeled))
	}
	return nil
}

func transformFile(w *pipeline.Worker, cfg linkfix.Config, path string, format parser.Format) (pipeline.UnitResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return pipeline.UnitResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	res, err := w.TransformUnit(cfg, pipeline.Unit{ID: path, Kind: pipeline.KindPost, Format: format, Content: string(src)})
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

func writeInPlace(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (t *TransformCmd) format(path string) (parser.Format, error) {
	if t.Format == "" || t.Format == "auto" {
		if path == "" {
			return parser.FormatHTML, nil
		}
		return parser.FormatForFile(path), nil
	}
	return parser.ParseFormat(t.Format)
}
