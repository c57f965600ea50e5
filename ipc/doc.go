// Package ipc decodes and encodes colvex messages: self-describing binary
// blocks carrying one record batch or one dictionary batch.
//
// A message is a fixed header, a run of field node records (one per array,
// in schema preorder), a run of buffer descriptor records (one per physical
// buffer, in slot order), and a byte body holding the buffers. Decoding walks
// the schema and consumes nodes and descriptors from two front-only queues;
// consumption order is the only synchronization between the schema traversal
// and the byte layout, so any miscount is detected as corruption.
//
// Decoding one message is synchronous and single-threaded: the queues and the
// body reader are threaded by reference through every recursive call.
// Distinct messages carry independent state and may be decoded concurrently.
// On failure the reader position within the failing message is unspecified;
// callers resume at the next message boundary.
package ipc
