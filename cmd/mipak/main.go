// Package main provides a command-line tool for packing and unpacking
// Math Invaders PAK archives.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/mentebinaria/mipak/pkg/pak"
)

var (
	packMode   bool
	unpackMode bool
	listMode   bool
	workDir    string
)

func init() {
	pflag.BoolVarP(&packMode, "pack", "p", false, "pack/create a new PAK file")
	pflag.BoolVarP(&unpackMode, "unpack", "u", false, "unpack a PAK file")
	pflag.BoolVarP(&listMode, "list", "t", false, "list the entries of a PAK file")
	pflag.StringVarP(&workDir, "dir", "d", "pak_files", "working directory: source root for pack, destination root for unpack")
}

func main() {
	pflag.Parse()

	cmd, err := newCommand(packMode, unpackMode, listMode, workDir, pflag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		pflag.Usage()
		os.Exit(1)
	}

	if err := cmd.run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type operation int

const (
	opPack operation = iota
	opUnpack
	opList
)

// command is one fully-specified invocation: the selected operation
// plus the archive path and working directory it applies to.
type command struct {
	op      operation
	dir     string
	archive string
}

// newCommand validates the flag combination and positional arguments
// into a runnable command. Exactly one of pack/unpack/list must be
// selected, with exactly one archive path.
func newCommand(pack, unpack, list bool, dir string, args []string) (command, error) {
	var cmd command
	selected := 0
	for _, mode := range []bool{pack, unpack, list} {
		if mode {
			selected++
		}
	}
	if selected == 0 {
		return cmd, fmt.Errorf("one of --pack, --unpack or --list is required")
	}
	if selected > 1 {
		return cmd, fmt.Errorf("--pack, --unpack and --list are mutually exclusive")
	}
	if len(args) != 1 {
		return cmd, fmt.Errorf("expected exactly one PAK file argument, got %d", len(args))
	}

	switch {
	case pack:
		cmd.op = opPack
	case unpack:
		cmd.op = opUnpack
	case list:
		cmd.op = opList
	}
	cmd.dir = dir
	cmd.archive = args[0]
	return cmd, nil
}

func (c command) run() error {
	switch c.op {
	case opPack:
		return c.runPack()
	case opUnpack:
		return c.runUnpack()
	default:
		return c.runList()
	}
}

func (c command) runPack() error {
	n, err := pak.Pack(c.dir, c.archive, pak.WithPackProgress(func(path string) {
		fmt.Printf("Packing %s\n", path)
	}))
	if err != nil {
		return err
	}
	fmt.Printf("%d files packed to %s\n", n, c.archive)
	return nil
}

func (c command) runUnpack() error {
	r, err := pak.OpenReader(c.archive)
	if err != nil {
		return err
	}
	defer r.Close()

	n, err := r.Extract(c.dir, pak.WithExtractProgress(func(path string) {
		fmt.Printf("Unpacking %s\n", path)
	}))
	if err != nil {
		return err
	}
	fmt.Printf("%d files unpacked from %s\n", n, c.archive)
	return nil
}

func (c command) runList() error {
	entries, err := pak.ReadFile(c.archive)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s 0x%x\n", e.Path, e.Offset)
	}
	return nil
}
