package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/export"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/ink"
)

type renderCmd struct {
	*root
	fs     *flag.FlagSet
	in     string
	out    string
	width  int
	height int

	readFile func(string) ([]byte, error)
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r.subcommand("render"), fs: fs, readFile: os.ReadFile}
	fs.StringVar(&c.in, "in", "", "document to render")
	fs.StringVar(&c.out, "out", "", "output file, .png or .pdf")
	fs.IntVar(&c.width, "width", 1024, "PNG width in pixels")
	fs.IntVar(&c.height, "height", 768, "PNG height in pixels")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.in == "" || c.out == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *renderCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *renderCmd) Run() error {
	data, err := c.readFile(c.in)
	if err != nil {
		return fmt.Errorf("failed to read document %s: %w", c.in, err)
	}
	doc, err := ink.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode document %s: %w", c.in, err)
	}

	switch strings.ToLower(filepath.Ext(c.out)) {
	case ".png":
		err = export.PNGFile(c.out, doc, c.width, c.height)
	case ".pdf":
		err = export.PDFFile(c.out, doc)
	default:
		return fmt.Errorf("unsupported output format %q, use .png or .pdf", filepath.Ext(c.out))
	}
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", c.out, err)
	}

	if c.notifier != nil {
		c.notifier.Export(c.out, nil)
	}
	return nil
}
