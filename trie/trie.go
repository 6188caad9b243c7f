// Trie implements a word counting trie over the 26 lowercase latin letters.
// It is fast as it uses arrays instead of maps.
package trie // import "grol.io/wordfreq/trie"

import "errors"

// NumLetters is the size of the alphabet, 'a' to 'z'.
const NumLetters = 26

// ErrNotAWord is returned by Insert for strings that aren't a single run of letters.
var ErrNotAWord = errors.New("not a word")

type Trie struct {
	// Children of this node, indexed by letter-'a'.
	children [NumLetters]*Trie
	// Number of times the path to this node was a complete word.
	count uint64
	// Lowercase letter of this node, 0 for the root.
	letter byte
}

func NewTrie() *Trie {
	return &Trie{}
}

// Letter returns the lowercase letter for byte ch and whether it is one.
func Letter(ch byte) (byte, bool) {
	switch {
	case 'a' <= ch && ch <= 'z':
		return ch, true
	case 'A' <= ch && ch <= 'Z':
		return ch - 'A' + 'a', true
	}
	return 0, false
}

// child returns the child for (lowercase) letter l, creating it if needed.
// created is true when a new node was allocated.
func (t *Trie) child(l byte) (c *Trie, created bool) {
	idx := l - 'a'
	c = t.children[idx]
	if c == nil {
		c = &Trie{letter: l}
		t.children[idx] = c
		created = true
	}
	return c, created
}

// Insert adds one occurrence of word, case insensitively.
func (t *Trie) Insert(word string) error {
	if word == "" {
		return ErrNotAWord
	}
	// validate first so a bad word doesn't leave dangling prefixes behind.
	for i := range len(word) {
		if _, ok := Letter(word[i]); !ok {
			return ErrNotAWord
		}
	}
	n := t
	for i := range len(word) {
		l, _ := Letter(word[i])
		n, _ = n.child(l)
	}
	n.count++
	return nil
}

// prefix returns the node for word or nil if there is none.
func (t *Trie) prefix(word string) *Trie {
	for i := range len(word) {
		l, ok := Letter(word[i])
		if !ok || t == nil {
			return nil
		}
		t = t.children[l-'a']
	}
	return t
}

// Count returns how many times word was seen, 0 if never.
func (t *Trie) Count(word string) uint64 {
	if word == "" {
		return 0 // the root is never a word.
	}
	n := t.prefix(word)
	if n == nil {
		return 0
	}
	return n.count
}

func (t *Trie) IsEmpty() bool {
	return t == nil || t.children == [NumLetters]*Trie{}
}

// Release drops the whole subtree, the trie is empty afterwards.
func (t *Trie) Release() {
	if t == nil {
		return
	}
	t.children = [NumLetters]*Trie{}
	t.count = 0
}

// Len returns the number of distinct words.
func (t *Trie) Len() int {
	return t.fold(func(n *Trie, acc int) int {
		if n.count > 0 {
			return acc + 1
		}
		return acc
	})
}

// Nodes returns the number of nodes, not counting the root.
func (t *Trie) Nodes() int {
	if t == nil {
		return 0
	}
	return t.fold(func(_ *Trie, acc int) int { return acc + 1 }) - 1
}

// Total returns the sum of all the word counts.
func (t *Trie) Total() uint64 {
	var total uint64
	t.fold(func(n *Trie, acc int) int {
		total += n.count
		return acc
	})
	return total
}

func (t *Trie) fold(f func(*Trie, int) int) int {
	if t == nil {
		return 0
	}
	acc := f(t, 0)
	for _, c := range t.children {
		if c != nil {
			acc += c.fold(f)
		}
	}
	return acc
}
