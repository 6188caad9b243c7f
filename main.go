// Wordfreq prints how many times each word of its input occurs, in
// lexicographic order (or reverse order with the `r` argument).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"runtime/debug"

	"fortio.org/cli"
	"fortio.org/log"
	"fortio.org/struct2env"
	"grol.io/wordfreq/freq"
)

func main() {
	os.Exit(Main())
}

type Config struct {
	// Maximum number of trie nodes, 0 for unlimited.
	MaxNodes int
}

var config = Config{}

func EnvHelp(w io.Writer) {
	res, _ := struct2env.StructToEnvVars(config)
	str := struct2env.ToShellWithPrefix("WORDFREQ_", res, true)
	fmt.Fprintln(w, "# Wordfreq environment variables:")
	fmt.Fprint(w, str)
}

var hookBefore, hookAfter func() int

func Main() int {
	cli.EnvHelpFuncs = append(cli.EnvHelpFuncs, EnvHelp)
	errs := struct2env.SetFromEnv("WORDFREQ_", &config)
	if len(errs) > 0 {
		log.Errf("Error setting config from env: %v", errs)
	}
	maxNodes := flag.Int("max-nodes", config.MaxNodes, "maximum number of trie `nodes`, 0 for unlimited")
	stats := flag.Bool("stats", false, "log word statistics on stderr once done")
	cli.ArgsHelp = "[r] < input\nCounts the words read from stdin, `r` to print them in reverse order"
	cli.MaxArgs = -1 // checked below, for a better error message.
	cli.Main()
	if *maxNodes < 0 {
		return log.FErrf("invalid -max-nodes %d, must be 0 (unlimited) or more", *maxNodes)
	}
	dir, err := freq.ParseArgs(flag.Args())
	if err != nil {
		return log.FErrf("%v; usage: %s [flags] [%s]", err, os.Args[0], freq.ReverseArg)
	}
	memlimit := debug.SetMemoryLimit(-1)
	if memlimit == math.MaxInt64 {
		log.LogVf("Memory limit not set, GOMEMLIMIT can be used to cap the trie size; e.g. GOMEMLIMIT=1GiB")
	}
	if hookBefore != nil {
		ret := hookBefore()
		if ret != 0 {
			return ret
		}
	}
	options := freq.Options{
		Direction: dir,
		MaxNodes:  *maxNodes,
		Stats:     *stats,
	}
	_, err = freq.Run(context.Background(), os.Stdin, os.Stdout, options)
	ret := 0
	if hookAfter != nil {
		ret = hookAfter()
	}
	if err != nil {
		return log.FErrf("Error counting words: %v", err)
	}
	return ret
}
