package trie

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fortio.org/log"
)

const (
	// Nodes are accounted against the memory limit in batches of that many.
	nodeBatch = 1024
	readSize  = 64 * 1024
)

var errClosed = errors.New("builder already closed")

type Options struct {
	// Maximum number of nodes (root excluded), 0 for unlimited.
	MaxNodes int
}

// Builder counts words fed to it one byte at a time.
// The cursor is either at the root (between words) or inside a word.
type Builder struct {
	root     *Trie
	cursor   *Trie
	opts     Options
	nodes    int
	reserved int
	words    uint64
	closed   bool
}

func NewBuilder(opts Options) *Builder {
	root := NewTrie()
	return &Builder{root: root, cursor: root, opts: opts}
}

// Nodes returns how many nodes were created so far.
func (b *Builder) Nodes() int {
	return b.nodes
}

// Words returns how many words were counted so far.
func (b *Builder) Words() uint64 {
	return b.words
}

func (b *Builder) inWord() bool {
	return b.cursor != b.root
}

func (b *Builder) endWord() {
	if b.inWord() {
		b.cursor.count++
		b.words++
		b.cursor = b.root
	}
}

// fail releases everything allocated so far and returns err.
func (b *Builder) fail(err error) error {
	b.root.Release()
	b.cursor = b.root
	b.nodes = 0
	b.closed = true
	return err
}

func (b *Builder) grow() error {
	if b.opts.MaxNodes > 0 && b.nodes >= b.opts.MaxNodes {
		return fmt.Errorf("%w: more than %d nodes", ErrResourceExhausted, b.opts.MaxNodes)
	}
	if b.nodes >= b.reserved {
		if err := reserve(nodeBatch * NodeSize); err != nil {
			return err
		}
		b.reserved += nodeBatch
	}
	return nil
}

// WriteByte advances the cursor on letters and counts the word on anything else.
func (b *Builder) WriteByte(ch byte) error {
	if b.closed {
		return errClosed
	}
	l, ok := Letter(ch)
	if !ok {
		b.endWord()
		return nil
	}
	if b.cursor.children[l-'a'] == nil {
		if err := b.grow(); err != nil {
			return b.fail(err)
		}
		b.nodes++
	}
	b.cursor, _ = b.cursor.child(l)
	return nil
}

func (b *Builder) Write(p []byte) (int, error) {
	for i, ch := range p {
		if err := b.WriteByte(ch); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// Close counts a pending last word (input without trailing delimiter) and returns the trie.
func (b *Builder) Close() (*Trie, error) {
	if b.closed {
		return nil, errClosed
	}
	b.endWord()
	b.closed = true
	return b.root, nil
}

// Build reads all of r and returns the resulting trie.
// On error nothing is returned and all nodes are released.
func Build(ctx context.Context, r io.Reader, opts Options) (*Trie, error) {
	b := NewBuilder(opts)
	buf := make([]byte, readSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, b.fail(err)
		}
		n, err := r.Read(buf)
		if _, werr := b.Write(buf[:n]); werr != nil {
			return nil, werr
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, b.fail(fmt.Errorf("reading input: %w", err))
		}
	}
	log.LogVf("Read %d words, %d nodes", b.words, b.nodes)
	return b.Close()
}
