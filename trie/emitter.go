package trie

import (
	"fmt"
	"iter"
)

type Direction int

const (
	// Ascending emits a word before its extensions, children from 'a' to 'z'.
	Ascending Direction = iota
	// Descending emits extensions before the word, children from 'z' to 'a'.
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Path buffers up to that size don't get checked against the memory limit.
const pathCheckSize = 256

// Emitter walks a trie once, yielding each word with its count.
// Like bufio.Scanner, check Err() once the iteration is over.
type Emitter struct {
	root *Trie
	dir  Direction
	path []byte
	err  error
	used bool
}

func (t *Trie) Emitter(dir Direction) *Emitter {
	return &Emitter{root: t, dir: dir, path: make([]byte, 0, 32)}
}

// Err returns the error that stopped the iteration early, if any.
func (e *Emitter) Err() error {
	return e.err
}

// All returns the words and their counts in the emitter's direction.
// Only the first call yields anything.
func (e *Emitter) All() iter.Seq2[string, uint64] {
	return func(yield func(string, uint64) bool) {
		if e.used || e.root == nil {
			return
		}
		e.used = true
		e.walk(e.root, yield)
	}
}

// extend appends l to the path, checking memory when the buffer has to grow.
func (e *Emitter) extend(l byte) error {
	if n := len(e.path); n == cap(e.path) && n >= pathCheckSize {
		if err := reserve(2 * n); err != nil {
			return fmt.Errorf("%w (word of %d letters)", err, n+1)
		}
	}
	e.path = append(e.path, l)
	return nil
}

// walk does the depth first traversal for both directions. It returns false
// when the iteration must stop (consumer break or error).
func (e *Emitter) walk(n *Trie, yield func(string, uint64) bool) bool {
	ascending := e.dir == Ascending
	if ascending && n.count > 0 && !yield(string(e.path), n.count) {
		return false
	}
	for i := range NumLetters {
		idx := i
		if !ascending {
			idx = NumLetters - 1 - i
		}
		c := n.children[idx]
		if c == nil {
			continue
		}
		if err := e.extend(c.letter); err != nil {
			e.err = err
			e.root.Release()
			return false
		}
		ok := e.walk(c, yield)
		e.path = e.path[:len(e.path)-1]
		if !ok {
			return false
		}
	}
	if !ascending && n.count > 0 && !yield(string(e.path), n.count) {
		return false
	}
	return true
}

// Words is a shortcut for ranging over a new emitter, errors being ignored.
func (t *Trie) Words(dir Direction) iter.Seq2[string, uint64] {
	return t.Emitter(dir).All()
}
