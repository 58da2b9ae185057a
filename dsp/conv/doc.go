// Package conv provides the convolution engines behind the audio graph's
// convolution node.
//
// Three strategies cover the relevant trade-offs:
//
//   - Direct: time-domain O(N*M) convolution. Best for very short kernels
//     and used as the correctness reference in tests.
//   - StreamingOverlapAddT: FFT-based convolution of fixed-size blocks with
//     no added latency. Efficient for medium kernels when the caller can
//     commit to one block size.
//   - PartitionedT: non-uniformly partitioned overlap-add convolution for
//     long impulse responses. Accepts arbitrary chunk sizes and reports a
//     fixed latency of 2^minBlockOrder samples; partitions grow
//     exponentially so large FFTs run rarely while small ones keep the
//     latency low.
//
// All engines are generic over sample precision. Real-time render paths
// use the float32 front doors (NewStreamingOverlapAdd32, NewPartitioned32);
// offline analysis uses the float64 ones.
//
// For repeated convolution with the same kernel, create one engine and
// reuse it. Construction computes FFT plans and kernel spectra; per-block
// processing allocates nothing.
package conv
