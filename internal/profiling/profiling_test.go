package profiling

import (
	"testing"
	"time"
)

func record(name string, d time.Duration) {
	mu.Lock()
	frameTotals[name] += d
	frameCounts[name]++
	mu.Unlock()
}

func TestTopN(t *testing.T) {
	ResetFrame()
	record("scene.Traverse", 4200*time.Microsecond)
	record("texture.CreateSkyboxFromFiles", 2*time.Millisecond)
	record("shader.CreateFromFiles", 2*time.Millisecond)
	record("viewer.drawSkybox", 100*time.Microsecond)

	got := TopN(3)
	want := "scene.Traverse:4.2ms, shader.CreateFromFiles:2ms, texture.CreateSkyboxFromFiles:2ms"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if got := TopN(0); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestTrackCountsAndSums(t *testing.T) {
	ResetFrame()
	for i := 0; i < 3; i++ {
		Track("texture.upload")()
	}
	Track("texture.decode")()
	Track("scene.Traverse")()

	if n := Count("texture.upload"); n != 3 {
		t.Errorf("Expected 3 tracked uploads, got %d", n)
	}
	snap := Snapshot()
	if sum := SumWithPrefix("texture."); sum != snap["texture.upload"]+snap["texture.decode"] {
		t.Errorf("Prefix sum %v does not match snapshot %v", sum, snap)
	}

	ResetFrame()
	if n := Count("texture.upload"); n != 0 {
		t.Errorf("Expected counts to reset, got %d", n)
	}
	if len(Snapshot()) != 0 {
		t.Errorf("Expected empty snapshot after reset")
	}
}

func BenchmarkTrack(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Track("bench")()
	}
}
