package anim

import (
	"fmt"
	"strconv"
)

// DefaultLabelWidth is the label width used when no total hint is given and
// no minimum is configured. Three digits cover typical runs; longer timelines
// should declare a total hint or a wider minimum up front.
const DefaultLabelWidth = 3

// Frame is one unit of work: an ordinal position on the timeline, its
// zero-padded label and the data state to render.
type Frame struct {
	Ordinal int
	Label   string
	Data    DataState
}

// Labeler produces fixed-width zero-padded labels for frame ordinals. The
// width is committed once per run so that filenames sort lexicographically in
// ordinal order; ordinals that would need more digits are rejected instead of
// ever re-padding names already written.
type Labeler struct {
	width int
}

// NewLabeler commits a label width. minWidth is the configured floor (0 means
// DefaultLabelWidth); when totalHint > 0 the width grows to fit the last
// ordinal of the run, start+totalHint-1.
func NewLabeler(minWidth, start, totalHint int) Labeler {
	w := minWidth
	if w <= 0 {
		w = DefaultLabelWidth
	}
	if totalHint > 0 {
		if d := digits(start + totalHint - 1); d > w {
			w = d
		}
	}
	return Labeler{width: w}
}

// Width reports the committed label width.
func (l Labeler) Width() int { return l.width }

// Label formats ordinal at the committed width. Ordinals past the width's
// capacity return ErrLabelOverflow; silently widening would rename the
// sequence out from under files already produced.
func (l Labeler) Label(ordinal int) (string, error) {
	if ordinal < 0 {
		return "", fmt.Errorf("negative ordinal %d", ordinal)
	}
	if d := digits(ordinal); d > l.width {
		return "", fmt.Errorf("%w: ordinal %d needs %d digits, width is %d", ErrLabelOverflow, ordinal, d, l.width)
	}
	return fmt.Sprintf("%0*d", l.width, ordinal), nil
}

func digits(n int) int {
	return len(strconv.Itoa(n))
}
