package main

import (
	"flag"
	"fmt"
	"io"
)

type rootArgs struct {
	cfgPath   string
	overrides []string
	debug     bool
	follow    string
	dataDir   bool
	version   bool
}

func parseRootArgs(args []string, usage io.Writer) (rootArgs, error) {
	fs := flag.NewFlagSet("livefeed", flag.ContinueOnError)
	fs.SetOutput(usage)
	var (
		root       rootArgs
		overrides  stringSlice
		bufferMax  int
		nameWidth  int
		transcribe bool
	)
	fs.StringVar(&root.cfgPath, "config", "", "Path to config file (default ~/.livefeed/config.toml)")
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	fs.IntVar(&bufferMax, "b", 0, "Number of messages kept in history")
	fs.IntVar(&nameWidth, "n", 0, "Width of the author name column")
	fs.BoolVar(&transcribe, "t", false, "Write a transcript of the session to the data dir")
	fs.BoolVar(&root.debug, "debug", false, "Show a simulated chat instead of a real feed")
	fs.StringVar(&root.follow, "follow", "", "Follow a JSON lines feed file")
	fs.BoolVar(&root.dataDir, "data-dir", false, "Print the transcript directory and exit")
	fs.BoolVar(&root.version, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return rootArgs{}, err
	}
	if fs.NArg() > 0 {
		return rootArgs{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if root.debug && root.follow != "" {
		return rootArgs{}, fmt.Errorf("-debug and -follow are mutually exclusive")
	}

	root.overrides = append(root.overrides, overrides...)
	root.overrides = append(root.overrides, flagOverrides(bufferMax, nameWidth, transcribe)...)
	return root, nil
}

// flagOverrides turns the shorthand flags into key=value overrides applied
// after the -c ones.
func flagOverrides(bufferMax, nameWidth int, transcribe bool) []string {
	var out []string
	if bufferMax > 0 {
		out = append(out, fmt.Sprintf("buffer_max=%d", bufferMax))
	}
	if nameWidth > 0 {
		out = append(out, fmt.Sprintf("name_column_width=%d", nameWidth))
	}
	if transcribe {
		out = append(out, "transcribe=true")
	}
	return out
}
