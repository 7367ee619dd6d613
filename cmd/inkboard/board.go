package main

import (
	"flag"

	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/board"
)

type boardCmd struct {
	*root
	fs   *flag.FlagSet
	path string
}

func parseBoardCmd(args []string, r *root) (*boardCmd, error) {
	fs := flag.NewFlagSet("board", flag.ExitOnError)
	b := &boardCmd{root: r.subcommand("board"), fs: fs}
	fs.Usage = usageFunc(b)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, &UsageError{of: b}
	}
	b.path = fs.Arg(0)
	return b, nil
}

func (b *boardCmd) FlagSet() *flag.FlagSet { return b.fs }

func (b *boardCmd) Run() error {
	board.New(b.config, b.notifier, b.path).Run()
	return nil
}
