package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-filterunit/dsp/event"
	"github.com/cwbudde/algo-filterunit/dsp/param"
)

var errAutomation = errors.New("filterunit: automation must look like FRAME:kind=value")

// automationPoint is a parameter change at an absolute frame of the file.
type automationPoint struct {
	frame int64
	kind  param.Kind
	value float64
}

// parseAutomation parses "FRAME:kind=value", e.g. "48000:cutoff=800".
func parseAutomation(s string) (automationPoint, error) {
	at, change, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return automationPoint{}, fmt.Errorf("%w: %q", errAutomation, s)
	}

	name, value, ok := strings.Cut(change, "=")
	if !ok {
		return automationPoint{}, fmt.Errorf("%w: %q", errAutomation, s)
	}

	frame, err := strconv.ParseInt(at, 10, 64)
	if err != nil || frame < 0 {
		return automationPoint{}, fmt.Errorf("%w: bad frame in %q", errAutomation, s)
	}

	kind, err := param.ParseKind(name)
	if err != nil {
		return automationPoint{}, fmt.Errorf("%w: %w", errAutomation, err)
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return automationPoint{}, fmt.Errorf("%w: bad value in %q", errAutomation, s)
	}

	return automationPoint{frame: frame, kind: kind, value: v}, nil
}

// parseAutomationList parses every point and orders them by frame, keeping
// the command-line order for equal frames.
func parseAutomationList(specs []string) ([]automationPoint, error) {
	points := make([]automationPoint, 0, len(specs))
	for _, s := range specs {
		p, err := parseAutomation(s)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	slices.SortStableFunc(points, func(a, b automationPoint) int {
		switch {
		case a.frame < b.frame:
			return -1
		case a.frame > b.frame:
			return 1
		default:
			return 0
		}
	})

	return points, nil
}

// blockEvents appends to dst the points that fall into the block of frames
// frames starting at start, as events with in-block offsets. next is the
// index of the first unconsumed point; the updated index is returned.
func blockEvents(points []automationPoint, next int, start int64, frames int, dst []event.Event) ([]event.Event, int) {
	end := start + int64(frames)
	for next < len(points) && points[next].frame < end {
		p := points[next]
		if p.frame >= start {
			dst = append(dst, event.Parameter(p.kind, p.value, int(p.frame-start)))
		}
		next++
	}

	return dst, next
}
