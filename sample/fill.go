package sample

// FillInterleaved fills buffers[ch][from:to] from frame-major (interleaved)
// source data, converting each stored sample with convert. Mono and stereo
// sources dispatch to specialized loops; the strategies produce
// bit-identical output.
//
// Exported so external Resource implementations over interleaved storage
// reuse the copy strategies.
func FillInterleaved[T any](buffers [][]float32, from, to int, startFrame uint64, channels int, data []T, convert func(T) float32) {
	start := int(startFrame)
	frames := to - from

	if channels == 1 {
		// Mono: direct copy, nothing to de-interleave.
		dst := buffers[0][from:to]
		src := data[start : start+frames]

		for i, s := range src {
			dst[i] = convert(s)
		}

		return
	}

	if channels == 2 && len(buffers) >= 2 {
		// Stereo: write both channels in one pass over the source.
		dst0 := buffers[0][from:to]
		dst1 := buffers[1][from:to]
		src := data[start*2 : (start+frames)*2]

		for i := range frames {
			dst0[i] = convert(src[2*i])
			dst1[i] = convert(src[2*i+1])
		}

		return
	}

	// General case: one strided pass per destination channel.
	src := data[start*channels : (start+frames)*channels]

	for ch := range min(channels, len(buffers)) {
		dst := buffers[ch][from:to]
		for i := range frames {
			dst[i] = convert(src[i*channels+ch])
		}
	}
}

// FillDeinterleaved fills buffers[ch][from:to] from per-channel source
// slices, converting each stored sample with convert. A stereo source
// dispatches to a single-pass pair loop; the strategies produce
// bit-identical output.
//
// Exported so external Resource implementations over split-channel storage
// reuse the copy strategies.
func FillDeinterleaved[T any](buffers [][]float32, from, to int, startFrame uint64, channels [][]T, convert func(T) float32) {
	start := int(startFrame)
	frames := to - from

	if len(channels) == 2 && len(buffers) >= 2 {
		// Stereo: write both channels in one pass.
		dst0 := buffers[0][from:to]
		dst1 := buffers[1][from:to]
		src0 := channels[0][start : start+frames]
		src1 := channels[1][start : start+frames]

		for i := range frames {
			dst0[i] = convert(src0[i])
			dst1[i] = convert(src1[i])
		}

		return
	}

	for ch := range min(len(channels), len(buffers)) {
		dst := buffers[ch][from:to]
		src := channels[ch][start : start+frames]

		for i, s := range src {
			dst[i] = convert(s)
		}
	}
}
