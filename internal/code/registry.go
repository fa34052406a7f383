// Package code holds the fenced code blocks extracted from a slide and runs
// them through external interpreters and compilers.
package code

import (
	"errors"
	"fmt"
)

// ErrBlockNotFound reports a registry lookup outside the registered range.
var ErrBlockNotFound = errors.New("code block not found")

// Block is one fenced code block in document order.
type Block struct {
	Index int
	Lang  string
	Code  string
}

// Registry is the ordered store of a slide's code blocks, indexed from 1.
// A Registry belongs to a single render pass.
type Registry struct {
	blocks []Block
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a block and returns its index.
func (r *Registry) Add(lang, code string) int {
	idx := len(r.blocks) + 1
	r.blocks = append(r.blocks, Block{Index: idx, Lang: lang, Code: code})
	return idx
}

// Get returns the block at index i.
func (r *Registry) Get(i int) (Block, error) {
	if r == nil || i < 1 || i > len(r.blocks) {
		return Block{}, fmt.Errorf("%w: %d", ErrBlockNotFound, i)
	}
	return r.blocks[i-1], nil
}

// Len returns the number of registered blocks.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.blocks)
}

// Blocks returns a copy of the registered blocks.
func (r *Registry) Blocks() []Block {
	if r == nil {
		return nil
	}
	return append([]Block(nil), r.blocks...)
}
