package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/flat/alloc"
	"github.com/npillmayer/flat/storage"
)

func TestRecordSmallVector(t *testing.T) {
	a := alloc.NewTracking[int](alloc.Propagation{})
	steps, err := record[storage.Small[int, [8]int]](20, 4, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var caps []int
	for _, s := range steps {
		caps = append(caps, s.capacity)
	}
	// inline 8, spill to 16, grow to 32, back inline
	if len(steps) != 4 || caps[1] != 16 || caps[2] != 32 || !steps[3].inline {
		t.Fatalf("unexpected steps %+v", steps)
	}
	if a.Stats().LiveBlocks != 0 {
		t.Errorf("expected all blocks released, have %+v", a.Stats())
	}
}

func TestRecordStaticVectorStopsWhenFull(t *testing.T) {
	steps, err := record[storage.Static[int, [16]int]](40, -1, alloc.NewTracking[int](alloc.Propagation{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last := steps[len(steps)-1]; last.event != "full" || last.size != 16 {
		t.Fatalf("expected static vector to stop at 16, have %+v", last)
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	r := report{flavor: "vector", steps: []step{{"init", 0, 0, false}, {"grow", 1, 1, false}}}
	printReport(&buf, r, 40)
	if !strings.Contains(buf.String(), "vector") || !strings.Contains(buf.String(), "grow") {
		t.Errorf("unexpected report %q", buf.String())
	}
}
