package ipc

import (
	"fmt"

	"github.com/colvex/colvex/datatype"
	"github.com/colvex/colvex/errs"
	"github.com/colvex/colvex/section"
)

// cursor is the pair of front-only metadata queues consumed during one
// message decode. Pop order is the sole synchronization between the schema
// traversal and the body layout; no peeking, no random access.
type cursor struct {
	nodes   []section.FieldNode
	buffers []section.BufferDescriptor
}

func newCursor(nodes []section.FieldNode, buffers []section.BufferDescriptor) *cursor {
	return &cursor{nodes: nodes, buffers: buffers}
}

// popNode consumes the next field node. dtype is only used for error context.
func (c *cursor) popNode(dtype datatype.DataType) (section.FieldNode, error) {
	if len(c.nodes) == 0 {
		return section.FieldNode{}, fmt.Errorf("%w: no field node left for %s", errs.ErrNoFieldNodes, dtype)
	}

	node := c.nodes[0]
	c.nodes = c.nodes[1:]

	if node.Length < 0 || node.NullCount < 0 {
		return section.FieldNode{}, fmt.Errorf("%w: field node for %s has length %d, null count %d",
			errs.ErrCorrupted, dtype, node.Length, node.NullCount)
	}

	return node, nil
}

// popBuffer consumes the next buffer descriptor.
func (c *cursor) popBuffer() (section.BufferDescriptor, error) {
	if len(c.buffers) == 0 {
		return section.BufferDescriptor{}, errs.ErrNoBuffers
	}

	desc := c.buffers[0]
	c.buffers = c.buffers[1:]

	return desc, nil
}

// drained verifies both queues were consumed exactly. Leftovers mean the
// schema traversal and the message metadata disagree.
func (c *cursor) drained() error {
	if len(c.nodes) != 0 || len(c.buffers) != 0 {
		return fmt.Errorf("%w: %d field nodes, %d buffers left",
			errs.ErrQueueNotDrained, len(c.nodes), len(c.buffers))
	}

	return nil
}
