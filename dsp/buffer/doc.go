// Package buffer provides fixed-size per-channel sample storage for
// allocation-free render paths. Render functions accept raw []float32
// slices; Channels helps processors allocate per-channel state once at
// construction and reuse it for the lifetime of the node.
package buffer
