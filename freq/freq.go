// Package freq counts the words of a text stream and writes their frequencies
// in lexicographic order.
package freq // import "grol.io/wordfreq/freq"

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"fortio.org/log"
	"grol.io/wordfreq/trie"
)

// ReverseArg is the only argument accepted, selecting descending order.
const ReverseArg = "r"

var ErrUsage = errors.New("usage error")

type Options struct {
	Direction trie.Direction
	// Maximum number of trie nodes, 0 for unlimited.
	MaxNodes int
	// Log statistics at info level (verbose otherwise).
	Stats bool
}

type Stats struct {
	Words    uint64 // Total number of words read.
	Distinct int    // Lines written.
	Nodes    int    // Trie size.
}

// ParseArgs maps the command line arguments to an output order:
// none for ascending, "r" for descending.
func ParseArgs(args []string) (trie.Direction, error) {
	switch {
	case len(args) == 0:
		return trie.Ascending, nil
	case len(args) == 1 && args[0] == ReverseArg:
		return trie.Descending, nil
	case len(args) == 1:
		return trie.Ascending, fmt.Errorf("%w: unknown argument %q, only %q is supported", ErrUsage, args[0], ReverseArg)
	default:
		return trie.Ascending, fmt.Errorf("%w: too many arguments (%d)", ErrUsage, len(args))
	}
}

// Run reads all of in then writes one "word\tcount" line per distinct word to out.
// Nothing is written if reading fails. Lines written before an error during
// output stay complete.
func Run(ctx context.Context, in io.Reader, out io.Writer, options Options) (Stats, error) {
	var stats Stats
	t, err := trie.Build(ctx, in, trie.Options{MaxNodes: options.MaxNodes})
	if err != nil {
		return stats, err
	}
	stats.Nodes = t.Nodes()
	stats.Words = t.Total()
	defer t.Release()
	if t.IsEmpty() {
		log.LogVf("No words in input")
		return stats, nil
	}
	w := bufio.NewWriter(out)
	e := t.Emitter(options.Direction)
	var werr error
	for word, count := range e.All() {
		if _, werr = fmt.Fprintf(w, "%s\t%d\n", word, count); werr != nil {
			break
		}
		stats.Distinct++
	}
	if ferr := w.Flush(); werr == nil {
		werr = ferr
	}
	if werr != nil {
		return stats, fmt.Errorf("writing output: %w", werr)
	}
	if err = e.Err(); err != nil {
		return stats, err
	}
	logf := log.LogVf
	if options.Stats {
		logf = log.Infof
	}
	logf("%d words, %d distinct, %d trie nodes (%s)", stats.Words, stats.Distinct, stats.Nodes, options.Direction)
	return stats, nil
}
