package lathe

import (
	"fmt"
	"strconv"
	"strings"
)

type FeedType int

const (
	RapidFeed FeedType = iota
	CuttingFeed
)

type Axis byte

const (
	X Axis = 'X'
	Z Axis = 'Z'
)

// Word is a single axis target inside a motion block.
type Word struct {
	Axis  Axis
	Value float64
}

// Block is one G0 or G1 motion. Its words are visited in order, so a block may
// move along one axis and then the other.
type Block struct {
	Feed  FeedType
	Rate  float64
	Words []Word
}

// Emitter turns a list of pass depths into motion blocks.
type Emitter interface {
	Emit(passes Passes, job Job) []Block
}

// LongitudinalCut steps the depth along X and cuts along Z. Used for turning.
type LongitudinalCut struct{}

// TransverseCut steps the depth along Z and cuts along X. Used for facing.
type TransverseCut struct{}

func (LongitudinalCut) Emit(passes Passes, job Job) []Block {
	blocks := []Block{}

	for d := range passes.InOrder(Descending) {
		blocks = append(blocks,
			Block{Feed: RapidFeed, Words: []Word{{Z, job.StartCut + job.clearance()}, {X, d}}},
			Block{Feed: CuttingFeed, Rate: job.Feed, Words: []Word{{Z, job.End()}, {X, job.Retract()}}},
		)
	}

	return blocks
}

func (TransverseCut) Emit(passes Passes, job Job) []Block {
	blocks := []Block{}

	for d := range passes.InOrder(Descending) {
		blocks = append(blocks,
			Block{Feed: RapidFeed, Words: []Word{{X, job.StartCut}, {Z, d + job.clearance()}}},
			Block{Feed: CuttingFeed, Rate: job.Feed, Words: []Word{{Z, d}, {X, job.End()}, {Z, job.Retract()}}},
		)
	}

	return blocks
}

func (b Block) ToGcode() string {
	gcode := strings.Builder{}

	code := "G0"
	if b.Feed == CuttingFeed {
		code = "G1"
	}

	for i, w := range b.Words {
		if i == 0 {
			fmt.Fprintf(&gcode, "%s %c%.3f", code, w.Axis, w.Value)
			if b.Feed == CuttingFeed {
				fmt.Fprintf(&gcode, " F%s", formatFeed(b.Rate))
			}
		} else {
			fmt.Fprintf(&gcode, "   %c%.3f", w.Axis, w.Value)
		}
		gcode.WriteString("\n")
	}

	return gcode.String()
}

// feed rates are passed through as given, so 100 stays "100"
func formatFeed(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func BlocksToGcode(blocks []Block) string {
	gcode := strings.Builder{}
	for _, b := range blocks {
		gcode.WriteString(b.ToGcode())
	}
	return gcode.String()
}
