package ipc

import (
	"fmt"

	"github.com/colvex/colvex/errs"
	"github.com/colvex/colvex/internal/hash"
	"github.com/colvex/colvex/section"
)

// Message is one parsed but not yet decoded message: the header, the two
// metadata record runs, and the raw body. The body is validated against the
// header's checksum (when enabled) at parse time; buffer contents are only
// touched when a record or dictionary is read from the message.
type Message struct {
	Header  section.MessageHeader
	Nodes   []section.FieldNode
	Buffers []section.BufferDescriptor
	Body    []byte
}

// DecodeMessage parses a message from data. The returned message keeps
// references into data; callers must not modify it afterwards.
func DecodeMessage(data []byte) (*Message, error) {
	header, err := section.ParseMessageHeader(data)
	if err != nil {
		return nil, err
	}

	engine := header.Flag.GetEndianEngine()
	metaLen := uint64(section.HeaderSize) +
		uint64(header.NodeCount)*section.FieldNodeSize +
		uint64(header.BufferCount)*section.BufferDescriptorSize
	if uint64(len(data)) < metaLen+header.BodyLength {
		return nil, fmt.Errorf("%w: message has %d bytes, header declares %d",
			errs.ErrCorrupted, len(data), metaLen+header.BodyLength)
	}

	msg := &Message{
		Header:  header,
		Nodes:   make([]section.FieldNode, header.NodeCount),
		Buffers: make([]section.BufferDescriptor, header.BufferCount),
	}

	pos := section.HeaderSize
	for i := range msg.Nodes {
		msg.Nodes[i], err = section.ParseFieldNode(data[pos:pos+section.FieldNodeSize], engine)
		if err != nil {
			return nil, err
		}
		pos += section.FieldNodeSize
	}
	for i := range msg.Buffers {
		msg.Buffers[i], err = section.ParseBufferDescriptor(data[pos:pos+section.BufferDescriptorSize], engine)
		if err != nil {
			return nil, err
		}
		pos += section.BufferDescriptorSize
	}

	msg.Body = data[pos : uint64(pos)+header.BodyLength]

	if header.Flag.HasChecksum() {
		if sum := hash.Sum64(msg.Body); sum != header.Checksum {
			return nil, fmt.Errorf("%w: computed %#x, header declares %#x",
				errs.ErrChecksumMismatch, sum, header.Checksum)
		}
	}

	return msg, nil
}
