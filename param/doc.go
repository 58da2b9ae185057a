// Package param provides the parameter machinery shared by audio-graph
// nodes: per-sample value smoothing, gain values, and the diff/patch
// transport that carries control-side parameter changes into the real-time
// rendering context.
//
// A node's parameter record is a plain comparable value. The control side
// owns a Handle; edits are diffed against the last delivered record and
// emitted as field-level patches over a bounded single-producer
// single-consumer Queue. The rendering side drains the queue once at the
// start of every block and applies the patches to its own copy of the
// record. Neither side ever blocks on the other and no locks are shared.
package param
