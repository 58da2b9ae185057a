package buffer

// Channels is a fixed-size set of per-channel sample planes backed by one
// contiguous allocation. Processors use it for state that must hold a full
// block per channel, such as the one-block dry-signal delay of a
// latency-compensated effect. All storage is allocated by NewChannels;
// no method allocates afterwards.
type Channels struct {
	data     []float32
	channels int
	frames   int
}

// NewChannels returns a zero-filled channel buffer holding frames samples
// for each of the given channels. Non-positive dimensions yield an empty
// buffer.
func NewChannels(channels, frames int) *Channels {
	if channels < 0 {
		channels = 0
	}
	if frames < 0 {
		frames = 0
	}
	return &Channels{
		data:     make([]float32, channels*frames),
		channels: channels,
		frames:   frames,
	}
}

// ChannelCount returns the number of channel planes.
func (c *Channels) ChannelCount() int {
	return c.channels
}

// Frames returns the per-channel capacity in frames.
func (c *Channels) Frames() int {
	return c.frames
}

// Channel returns the plane for channel i. The slice aliases the internal
// storage; callers may read and write it freely.
func (c *Channels) Channel(i int) []float32 {
	return c.data[i*c.frames : (i+1)*c.frames]
}

// CopyFrom copies the first frames samples of each source channel into the
// corresponding plane. Source channels beyond ChannelCount are ignored, as
// are frames beyond the per-channel capacity.
func (c *Channels) CopyFrom(src [][]float32, frames int) {
	if frames > c.frames {
		frames = c.frames
	}
	n := len(src)
	if n > c.channels {
		n = c.channels
	}
	for ch := 0; ch < n; ch++ {
		copy(c.Channel(ch)[:frames], src[ch][:frames])
	}
}

// Zero clears every plane.
func (c *Channels) Zero() {
	for i := range c.data {
		c.data[i] = 0
	}
}
