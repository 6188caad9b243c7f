package freq_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"runtime/debug"
	"slices"
	"strconv"
	"strings"
	"testing"

	"fortio.org/sets"
	"github.com/google/go-cmp/cmp"
	"grol.io/wordfreq/freq"
	"grol.io/wordfreq/trie"
)

func run(t *testing.T, input string, dir trie.Direction) string {
	t.Helper()
	var out bytes.Buffer
	_, err := freq.Run(context.Background(), strings.NewReader(input), &out, freq.Options{Direction: dir})
	if err != nil {
		t.Fatalf("Run(%q) error: %v", input, err)
	}
	return out.String()
}

func TestRun(t *testing.T) {
	tests := []struct {
		input string
		dir   trie.Direction
		want  string
	}{
		{"the cat sat on the mat", trie.Ascending, "cat\t1\nmat\t1\non\t1\nsat\t1\nthe\t2\n"},
		{"the cat sat on the mat", trie.Descending, "the\t2\nsat\t1\non\t1\nmat\t1\ncat\t1\n"},
		{"a an and", trie.Ascending, "a\t1\nan\t1\nand\t1\n"},
		{"", trie.Ascending, ""},
		{"", trie.Descending, ""},
		{"Hello, HELLO! hello?", trie.Ascending, "hello\t3\n"},
		{"Cat cat CAT cAt\n", trie.Descending, "cat\t4\n"},
	}
	for _, tt := range tests {
		got := run(t, tt.input, tt.dir)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Run(%q, %s) mismatch (-want +got):\n%s", tt.input, tt.dir, diff)
		}
	}
}

func TestRunStats(t *testing.T) {
	var out bytes.Buffer
	stats, err := freq.Run(context.Background(), strings.NewReader("a an and an"), &out, freq.Options{Stats: true})
	if err != nil {
		t.Fatal(err)
	}
	want := freq.Stats{Words: 4, Distinct: 3, Nodes: 3}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestRunMaxNodes(t *testing.T) {
	var out bytes.Buffer
	_, err := freq.Run(context.Background(), strings.NewReader("abc abd"), &out, freq.Options{MaxNodes: 3})
	if !errors.Is(err, trie.ErrResourceExhausted) {
		t.Errorf("expected resource exhausted error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be written on build failure, got %q", out.String())
	}
}

type failingWriter struct {
	n int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.n <= 0 {
		return 0, errors.New("disk full")
	}
	f.n--
	return len(p), nil
}

func TestRunWriteError(t *testing.T) {
	_, err := freq.Run(context.Background(), strings.NewReader("x y z"), &failingWriter{}, freq.Options{})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected write error, got %v", err)
	}
}

// lowMemoryAtEOF drops the memory limit to 1 byte once its input is fully
// read, so the trie builds fine but printing it runs out of memory.
type lowMemoryAtEOF struct {
	r io.Reader
}

func (l lowMemoryAtEOF) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	if errors.Is(err, io.EOF) {
		debug.SetMemoryLimit(1)
	}
	return n, err
}

func TestRunEmitError(t *testing.T) {
	old := debug.SetMemoryLimit(-1)
	defer debug.SetMemoryLimit(old)
	// "a" is printed before the long word starting with "ab", which needs
	// more than 256 bytes of path.
	input := "short a " + strings.Repeat("ab", 200)
	var out bytes.Buffer
	stats, err := freq.Run(context.Background(), lowMemoryAtEOF{strings.NewReader(input)}, &out, freq.Options{})
	if !errors.Is(err, trie.ErrResourceExhausted) {
		t.Fatalf("expected resource exhausted error, got %v", err)
	}
	if got := out.String(); got != "a\t1\n" {
		t.Errorf("only complete lines written before the error should be output, got %q", got)
	}
	if stats.Distinct != 1 {
		t.Errorf("expected 1 line in stats, got %d", stats.Distinct)
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		args []string
		want trie.Direction
		err  bool
	}{
		{nil, trie.Ascending, false},
		{[]string{}, trie.Ascending, false},
		{[]string{"r"}, trie.Descending, false},
		{[]string{"R"}, trie.Ascending, true},
		{[]string{"-r"}, trie.Ascending, true},
		{[]string{"reverse"}, trie.Ascending, true},
		{[]string{"r", "r"}, trie.Ascending, true},
	}
	for _, tt := range tests {
		got, err := freq.ParseArgs(tt.args)
		if tt.err != (err != nil) {
			t.Errorf("ParseArgs(%q) error %v, expected error: %t", tt.args, err, tt.err)
			continue
		}
		if err != nil && !errors.Is(err, freq.ErrUsage) {
			t.Errorf("ParseArgs(%q) error %v should be a usage error", tt.args, err)
		}
		if got != tt.want {
			t.Errorf("ParseArgs(%q) = %s, want %s", tt.args, got, tt.want)
		}
	}
}

// randomText returns text with random words, casing and delimiters along with
// the expected (lowercase) counts.
func randomText(r *rand.Rand, numWords int) (string, map[string]uint64) {
	const delims = " \t\n,.;:!?-0123456789\"'()é"
	counts := make(map[string]uint64)
	var sb strings.Builder
	for range numWords {
		word := make([]byte, 1+r.IntN(6))
		for i := range word {
			word[i] = byte('a' + r.IntN(5)) // small alphabet for many shared prefixes.
			if r.IntN(3) == 0 {
				word[i] -= 'a' - 'A'
			}
		}
		counts[strings.ToLower(string(word))]++
		sb.Write(word)
		for range 1 + r.IntN(3) {
			sb.WriteByte(delims[r.IntN(len(delims))])
		}
	}
	return sb.String(), counts
}

func parse(t *testing.T, output string) ([]string, map[string]uint64) {
	t.Helper()
	var words []string
	counts := make(map[string]uint64)
	for line := range strings.Lines(output) {
		word, count, ok := strings.Cut(strings.TrimSuffix(line, "\n"), "\t")
		if !ok {
			t.Fatalf("bad line %q", line)
		}
		n, err := strconv.ParseUint(count, 10, 64)
		if err != nil {
			t.Fatalf("bad count in %q: %v", line, err)
		}
		words = append(words, word)
		counts[word] = n
	}
	return words, counts
}

func TestRunProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))
	for i := range 20 {
		input, expected := randomText(r, 1+r.IntN(200))
		for _, dir := range []trie.Direction{trie.Ascending, trie.Descending} {
			name := fmt.Sprintf("%d-%s", i, dir)
			words, counts := parse(t, run(t, input, dir))
			// Same set of words, each with its number of occurrences.
			wantSet := sets.New[string]()
			for w := range expected {
				wantSet.Add(w)
			}
			if diff := cmp.Diff(sets.Sort(wantSet), sets.Sort(sets.FromSlice(words))); diff != "" {
				t.Errorf("%s: words mismatch (-want +got):\n%s", name, diff)
			}
			if diff := cmp.Diff(expected, counts); diff != "" {
				t.Errorf("%s: counts mismatch (-want +got):\n%s", name, diff)
			}
			// Ordering law.
			sorted := slices.Sorted(slices.Values(words))
			if dir == trie.Descending {
				slices.Reverse(sorted)
			}
			if diff := cmp.Diff(sorted, words); diff != "" {
				t.Errorf("%s: order mismatch (-want +got):\n%s", name, diff)
			}
		}
	}
}
