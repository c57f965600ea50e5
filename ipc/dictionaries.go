package ipc

import (
	"bytes"
	"fmt"

	"github.com/colvex/colvex/array"
	"github.com/colvex/colvex/datatype"
	"github.com/colvex/colvex/errs"
	"github.com/colvex/colvex/format"
)

// Dictionaries holds the value arrays registered by dictionary batch
// messages, keyed by dictionary id. A later batch with the same id replaces
// the earlier values. It is not safe for concurrent mutation.
type Dictionaries struct {
	m map[int64]array.Array
}

// NewDictionaries creates an empty registry.
func NewDictionaries() *Dictionaries {
	return &Dictionaries{m: make(map[int64]array.Array)}
}

// Register stores values under id, replacing any previous registration.
func (d *Dictionaries) Register(id int64, values array.Array) {
	d.m[id] = values
}

// Lookup returns the values registered under id.
func (d *Dictionaries) Lookup(id int64) (array.Array, bool) {
	values, ok := d.m[id]
	return values, ok
}

// Len returns the number of registered dictionaries.
func (d *Dictionaries) Len() int { return len(d.m) }

// ReadDictionary decodes one dictionary batch message and registers its
// values array in dicts under the message's dictionary id. The value type is
// resolved from the schema; a batch for an id the schema never references is
// rejected. Delta batches are recognized but not supported.
func ReadDictionary(msg *Message, schema *datatype.Schema, dicts *Dictionaries) error {
	if kind := msg.Header.Flag.GetKind(); kind != format.KindDictionaryBatch {
		return fmt.Errorf("%w: expected dictionary batch, got %s", errs.ErrInvalidMessageKind, kind)
	}
	if msg.Header.Flag.IsDelta() {
		return fmt.Errorf("%w: id %d", errs.ErrDeltaDictionary, msg.Header.DictionaryID)
	}

	id := msg.Header.DictionaryID
	valueType, ok := schema.DictionaryValueType(id)
	if !ok {
		return fmt.Errorf("%w: id %d not referenced by %s", errs.ErrDictionaryNotFound, id, schema)
	}

	ctx, err := newDecodeContext(msg, dicts, bytes.NewReader(msg.Body), 0)
	if err != nil {
		return err
	}

	values, err := read(ctx, datatype.NewField("values", valueType, true))
	if err != nil {
		return err
	}
	if err := ctx.cur.drained(); err != nil {
		return err
	}

	dicts.Register(id, values)

	return nil
}
