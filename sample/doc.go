// Package sample provides read-only multichannel audio resources and the
// conversion routines that turn stored PCM into the engine's float32
// samples.
//
// A Resource is immutable and safely shared: the audio thread reads it
// without synchronization, and swapping a node's resource replaces the
// reference rather than mutating the data. Storage may be interleaved or
// de-interleaved, in 16-bit signed, 16-bit unsigned, or 32-bit float PCM;
// each form converts with a fixed, bit-exact formula (PCMI16ToF32,
// PCMU16ToF32, identity for float data).
//
// Fill writes a sub-range of caller-owned output buffers from an arbitrary
// source frame offset. Mono and stereo sources take specialized copy loops;
// other channel counts use a general strided loop. All three produce
// bit-identical output for the same conversion function.
//
// ResourceF32 adds no-copy access to one channel's raw samples, which
// impulse-response loading needs: a convolution kernel wants the taps
// themselves, not a time-shifted fill.
//
// External storage formats implement Resource directly; FillInterleaved
// and FillDeinterleaved are exported so such implementations reuse the
// optimized copy strategies.
package sample
