package declick

import "testing"

func TestLowpassInactiveNoop(t *testing.T) {
	l := NewLowpass(48000, DefaultSwapFadeSeconds, 2)
	if l.Active() {
		t.Fatal("new lowpass declicker must start inactive")
	}

	buf := ones(64)
	l.Process([][]float32{buf, ones(64)}, 0, 64)
	for i, v := range buf {
		if v != 1 {
			t.Fatalf("buf[%d] = %v, want untouched 1", i, v)
		}
	}
}

func TestLowpassOpensFromSilence(t *testing.T) {
	// 480-frame fade so one 512-frame block covers the whole ramp.
	l := NewLowpass(48000, 0.01, 1)
	l.Begin()
	if !l.Active() {
		t.Fatal("Begin must activate the fade")
	}

	buf := ones(512)
	l.Process([][]float32{buf}, 0, 512)

	if buf[0] > 0.01 {
		t.Fatalf("buf[0] = %v, want near silence right after Begin", buf[0])
	}
	for i := 1; i < 512; i++ {
		if buf[i] < buf[i-1]-1e-6 {
			t.Fatalf("opening not monotonic at %d: %v < %v", i, buf[i], buf[i-1])
		}
	}
	if buf[511] != 1 {
		t.Fatalf("buf[511] = %v, want exact passthrough once open", buf[511])
	}
	if l.Active() {
		t.Fatal("fade must complete within the block")
	}
}

func TestLowpassContinuesAcrossBlocks(t *testing.T) {
	// 960-frame fade spans two 512-frame blocks.
	l := NewLowpass(48000, 0.02, 1)
	l.Begin()

	first := ones(512)
	l.Process([][]float32{first}, 0, 512)
	if !l.Active() {
		t.Fatal("fade must still be active after the first block")
	}

	second := ones(512)
	l.Process([][]float32{second}, 0, 512)
	if l.Active() {
		t.Fatal("fade must complete during the second block")
	}

	if second[0] < first[511]-1e-6 {
		t.Fatalf("fade regressed across blocks: %v -> %v", first[511], second[0])
	}
	if second[511] != 1 {
		t.Fatalf("second[511] = %v, want 1", second[511])
	}
}

func TestLowpassBeginRestarts(t *testing.T) {
	l := NewLowpass(48000, 0.01, 1)
	l.Begin()

	buf := ones(480)
	l.Process([][]float32{buf}, 0, 480)

	l.Begin()
	buf2 := ones(8)
	l.Process([][]float32{buf2}, 0, 8)
	if buf2[0] > 0.01 {
		t.Fatalf("buf2[0] = %v, want near silence after restart", buf2[0])
	}
}

func TestLowpassChannelsIndependent(t *testing.T) {
	l := NewLowpass(48000, 0.01, 2)
	l.Begin()

	left := ones(480)
	right := make([]float32, 480)
	for i := range right {
		right[i] = -1
	}
	l.Process([][]float32{left, right}, 0, 480)

	for i := range left {
		if left[i] < 0 {
			t.Fatalf("left[%d] = %v, want non-negative", i, left[i])
		}
		if right[i] > 0 {
			t.Fatalf("right[%d] = %v, want non-positive", i, right[i])
		}
	}
}

func TestLowpassPanicsOnBadConfig(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{name: "sample rate", fn: func() { NewLowpass(0, 0.2, 2) }},
		{name: "fade seconds", fn: func() { NewLowpass(48000, 0, 2) }},
		{name: "channels", fn: func() { NewLowpass(48000, 0.2, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			tt.fn()
		})
	}
}
