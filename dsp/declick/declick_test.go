package declick

import (
	"testing"

	"github.com/cwbudde/algo-audiograph/dsp/fade"
)

func ones(n int) []float32 {
	buf := make([]float32, n)
	for i := range buf {
		buf[i] = 1
	}
	return buf
}

func TestNewDeclickerSettledEnabled(t *testing.T) {
	d := NewDeclicker()
	if !d.SettledEnabled() {
		t.Fatal("new declicker must start settled enabled")
	}

	values := NewValues(48000)
	buf := ones(64)
	d.Process([][]float32{buf}, 0, 64, values, 1, fade.EqualPower3dB)

	for i, v := range buf {
		if v != 1 {
			t.Fatalf("buf[%d] = %v, want 1 (settled enabled passthrough)", i, v)
		}
	}
}

func TestSettledEnabledDepth(t *testing.T) {
	d := NewDeclicker()
	values := NewValues(48000)

	buf := ones(8)
	d.Process([][]float32{buf}, 0, 8, values, 0.5, fade.EqualPower3dB)
	for i, v := range buf {
		if v != 0.5 {
			t.Fatalf("buf[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestFadeOutReachesSilence(t *testing.T) {
	d := NewDeclicker()
	values := NewValues(48000) // 480-frame ramp

	d.FadeToEnabled(false, values)
	if !d.Fading() {
		t.Fatal("fade must be in progress")
	}

	buf := ones(512)
	d.Process([][]float32{buf}, 0, 512, values, 1, fade.EqualPower3dB)

	if got := float64(1 - buf[0]); got > 1e-4 {
		t.Fatalf("first-sample step = %v, want tiny for equal-power fade-out", got)
	}
	for i := 1; i < 512; i++ {
		if buf[i] > buf[i-1]+1e-6 {
			t.Fatalf("fade-out not monotonic at %d: %v > %v", i, buf[i], buf[i-1])
		}
	}
	for i := values.Len(); i < 512; i++ {
		if buf[i] != 0 {
			t.Fatalf("buf[%d] = %v, want 0 after ramp end", i, buf[i])
		}
	}
	if !d.SettledDisabled() {
		t.Fatal("declicker must settle disabled after the ramp")
	}

	// Settled disabled keeps zeroing.
	buf2 := ones(16)
	d.Process([][]float32{buf2}, 0, 16, values, 1, fade.EqualPower3dB)
	for i, v := range buf2 {
		if v != 0 {
			t.Fatalf("buf2[%d] = %v, want 0", i, v)
		}
	}
}

func TestFadeInFromDisabled(t *testing.T) {
	d := NewDeclicker()
	d.Reset(false)
	values := NewValues(48000)

	d.FadeToEnabled(true, values)

	buf := ones(512)
	d.Process([][]float32{buf}, 0, 512, values, 1, fade.EqualPower3dB)

	if buf[0] > 0.05 {
		t.Fatalf("buf[0] = %v, want near silence at fade-in start", buf[0])
	}
	for i := 1; i < 512; i++ {
		if buf[i] < buf[i-1]-1e-6 {
			t.Fatalf("fade-in not monotonic at %d", i)
		}
	}
	if buf[511] != 1 {
		t.Fatalf("buf[511] = %v, want 1", buf[511])
	}
	if !d.SettledEnabled() {
		t.Fatal("declicker must settle enabled after the ramp")
	}
}

func TestFadeReversalContinuesFromPosition(t *testing.T) {
	d := NewDeclicker()
	values := NewValues(48000)

	d.FadeToEnabled(false, values)
	buf := ones(100)
	d.Process([][]float32{buf}, 0, 100, values, 1, fade.EqualPower3dB)
	last := buf[99]

	d.FadeToEnabled(true, values)
	buf2 := ones(100)
	d.Process([][]float32{buf2}, 0, 100, values, 1, fade.EqualPower3dB)

	if diff := float64(buf2[0] - last); diff < 0 || diff > 0.01 {
		t.Fatalf("reversal jumped: %v -> %v", last, buf2[0])
	}
	for i := 1; i < 100; i++ {
		if buf2[i] < buf2[i-1]-1e-6 {
			t.Fatalf("reversed fade not monotonic at %d", i)
		}
	}
}

func TestFadeToEnabledSameTargetNoop(t *testing.T) {
	d := NewDeclicker()
	values := NewValues(48000)

	d.FadeToEnabled(true, values)
	if d.Fading() {
		t.Fatal("fading toward the settled state must be a no-op")
	}
}

func TestProcessSubRange(t *testing.T) {
	d := NewDeclicker()
	d.Reset(false)
	values := NewValues(48000)

	buf := ones(8)
	d.Process([][]float32{buf}, 2, 6, values, 1, fade.EqualPower3dB)

	want := []float32{1, 1, 0, 0, 0, 0, 1, 1}
	for i, v := range buf {
		if v != want[i] {
			t.Fatalf("buf[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestProcessStereoAppliesSameGain(t *testing.T) {
	d := NewDeclicker()
	values := NewValues(48000)
	d.FadeToEnabled(false, values)

	left := ones(64)
	right := ones(64)
	d.Process([][]float32{left, right}, 0, 64, values, 1, fade.EqualPower3dB)

	for i := range left {
		if left[i] != right[i] {
			t.Fatalf("channel gains diverge at %d: %v vs %v", i, left[i], right[i])
		}
	}
}
