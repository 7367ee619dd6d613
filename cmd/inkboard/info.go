package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/ink"
)

type infoCmd struct {
	*root
	fs *flag.FlagSet
	in string

	readFile func(string) ([]byte, error)
	stdout   io.Writer
}

func parseInfoCmd(args []string, r *root) (*infoCmd, error) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	c := &infoCmd{root: r.subcommand("info"), fs: fs, readFile: os.ReadFile, stdout: os.Stdout}
	fs.StringVar(&c.in, "in", "", "document to inspect")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.in == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *infoCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *infoCmd) Run() error {
	data, err := c.readFile(c.in)
	if err != nil {
		return fmt.Errorf("failed to read document %s: %w", c.in, err)
	}
	doc, err := ink.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode document %s: %w", c.in, err)
	}

	points := 0
	tools := map[ink.Tool]int{}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range doc.Strokes {
		points += len(s.Points)
		tools[s.Tool]++
		for _, p := range s.Points {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}

	fmt.Fprintf(c.stdout, "version: %d\n", doc.Version)
	fmt.Fprintf(c.stdout, "strokes: %d\n", len(doc.Strokes))
	fmt.Fprintf(c.stdout, "points: %d\n", points)
	fmt.Fprintf(c.stdout, "pen strokes: %d\n", tools[ink.ToolPen])
	fmt.Fprintf(c.stdout, "highlighter strokes: %d\n", tools[ink.ToolHighlighter])
	if len(doc.Strokes) > 0 && points > 0 {
		fmt.Fprintf(c.stdout, "extent: (%.3f, %.3f) to (%.3f, %.3f)\n", minX, minY, maxX, maxY)
	}
	return nil
}
