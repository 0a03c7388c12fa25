/*
Command flatscope shows how the vector flavors of package flat use their
storage. It pushes elements into a heap vector, a small vector and a static
vector, records every change of capacity or residency, and prints the
results as bars sized to the terminal.

Usage:

	flatscope [-n count] [-shrink size] [-trace]

Inline residency is printed in green, heap residency in yellow.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/flat"
	"github.com/npillmayer/flat/alloc"
	"github.com/npillmayer/flat/storage"
	"github.com/npillmayer/flat/vector"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"golang.org/x/term"
)

type step struct {
	event    string
	size     int
	capacity int
	inline   bool
}

type report struct {
	flavor string
	steps  []step
	stats  alloc.Stats
}

func main() {
	count := flag.Int("n", 40, "number of elements to push")
	shrinkTo := flag.Int("shrink", 4, "size to truncate to before shrinking to fit; negative to skip")
	trace := flag.Bool("trace", false, "trace storage transitions")
	flag.Parse()
	if *trace {
		gtrace.CoreTracer = gologadapter.New()
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
		flat.T().Infof("flatscope: recording %d pushes per flavor", *count)
	}
	reports := make([]report, 0, 3)
	for _, run := range []struct {
		flavor string
		fn     func(n, shrinkTo int, a *alloc.Tracking[int]) ([]step, error)
	}{
		{"vector", record[storage.Dynamic[int]]},
		{"small/8", record[storage.Small[int, [8]int]]},
		{"static/16", record[storage.Static[int, [16]int]]},
	} {
		a := alloc.NewTracking[int](alloc.Propagation{})
		steps, err := run.fn(*count, *shrinkTo, a)
		if err != nil {
			fmt.Fprintf(os.Stderr, "flatscope: %s: %v\n", run.flavor, err)
			os.Exit(1)
		}
		reports = append(reports, report{flavor: run.flavor, steps: steps, stats: a.Stats()})
	}
	width := terminalWidth()
	for _, r := range reports {
		printReport(os.Stdout, r, width)
	}
}

// record pushes n elements into a fresh vector over storage S and notes
// every change of capacity or residency.
func record[S any, P storage.Ptr[int, S]](n, shrinkTo int, a *alloc.Tracking[int]) ([]step, error) {
	v, err := vector.New[int, S, P](vector.Config[int]{Allocator: a})
	if err != nil {
		return nil, err
	}
	defer v.Reset()
	note := func(event string) step {
		return step{event: event, size: v.Len(), capacity: v.Cap(), inline: v.IsInline()}
	}
	steps := []step{note("init")}
	for i := range n {
		if v.StaticCapacity() > 0 && v.Full() {
			steps = append(steps, note("full"))
			break
		}
		if err := v.Push(i); err != nil {
			return steps, err
		}
		if last := steps[len(steps)-1]; last.capacity != v.Cap() || last.inline != v.IsInline() {
			steps = append(steps, note("grow"))
		}
	}
	if shrinkTo >= 0 && shrinkTo < v.Len() {
		if err := v.Resize(shrinkTo); err != nil {
			return steps, err
		}
		if err := v.ShrinkToFit(); err != nil {
			return steps, err
		}
		steps = append(steps, note("shrink"))
	}
	return steps, v.Check()
}

func printReport(w io.Writer, r report, width int) {
	bold := color.New(color.Bold)
	inline := color.New(color.FgGreen)
	heap := color.New(color.FgYellow)
	bold.Fprintf(w, "%s\n", r.flavor)
	maxCap := 1
	for _, s := range r.steps {
		maxCap = max(maxCap, s.capacity)
	}
	barWidth := max(width-24, 10)
	for _, s := range r.steps {
		used := s.size * barWidth / maxCap
		free := s.capacity*barWidth/maxCap - used
		c := heap
		if s.inline {
			c = inline
		}
		fmt.Fprintf(w, "  %-6s %5d %5d  ", s.event, s.size, s.capacity)
		c.Fprint(w, strings.Repeat("#", used)+strings.Repeat(".", free))
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  %d allocations, %d deallocations, peak %d slots\n\n",
		r.stats.Allocations, r.stats.Deallocations, r.stats.PeakSlots)
}

// terminalWidth returns the width of the terminal at stdout, or 80.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w < 30 {
		return 80
	}
	return w
}
