package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAccumulates(t *testing.T) {
	Reset()
	for i := 0; i < 3; i++ {
		Track("test.Stage")()
	}
	if c := Count("test.Stage"); c != 3 {
		t.Errorf("Expected 3 recordings, got %d", c)
	}
	if _, ok := Snapshot()["test.Stage"]; !ok {
		t.Errorf("Expected test.Stage in snapshot")
	}
	Reset()
	if len(Snapshot()) != 0 {
		t.Errorf("Expected empty snapshot after Reset")
	}
}

func TestTopNOrdersSlowestFirst(t *testing.T) {
	Reset()
	mu.Lock()
	totals["fast"] = time.Millisecond
	totals["slow"] = 5 * time.Millisecond
	totals["mid"] = 2500 * time.Microsecond
	mu.Unlock()

	got := TopN(2)
	if got != "slow:5.0ms, mid:2.5ms" {
		t.Errorf("Expected \"slow:5.0ms, mid:2.5ms\", got %q", got)
	}
	if all := TopN(10); strings.Count(all, ",") != 2 {
		t.Errorf("Expected all three stages, got %q", all)
	}
	if none := TopN(-1); none != "" {
		t.Errorf("Expected empty string for negative n, got %q", none)
	}
	Reset()
}
