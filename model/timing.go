package model

import (
	"fmt"

	"github.com/plankit/plankit/ir"
)

// Timepoint anchors a timing to the start or end of an action, or of
// the whole plan for problem-level timed effects and goals.
type Timepoint int

const (
	StartTimepoint Timepoint = iota
	EndTimepoint
	GlobalStartTimepoint
	GlobalEndTimepoint
)

func (t Timepoint) String() string {
	switch t {
	case StartTimepoint:
		return "start"
	case EndTimepoint:
		return "end"
	case GlobalStartTimepoint:
		return "global-start"
	case GlobalEndTimepoint:
		return "global-end"
	}
	return "<unknown timepoint>"
}

// Timing is a timepoint plus an integer delay. Timings are values and
// compare with ==.
type Timing struct {
	Timepoint Timepoint
	Delay     int64
}

func StartTiming() Timing       { return Timing{Timepoint: StartTimepoint} }
func EndTiming() Timing         { return Timing{Timepoint: EndTimepoint} }
func GlobalStartTiming() Timing { return Timing{Timepoint: GlobalStartTimepoint} }
func GlobalEndTiming() Timing   { return Timing{Timepoint: GlobalEndTimepoint} }

func (t Timing) String() string {
	if t.Delay == 0 {
		return t.Timepoint.String()
	}
	return fmt.Sprintf("%s+%d", t.Timepoint, t.Delay)
}

// Interval is a time interval between two timings.
type Interval struct {
	Lower, Upper       Timing
	LeftOpen, RightOpen bool
}

// At returns the point interval [t, t].
func At(t Timing) Interval {
	return Interval{Lower: t, Upper: t}
}

// OverAll returns the closed interval from action start to action end.
func OverAll() Interval {
	return Interval{Lower: StartTiming(), Upper: EndTiming()}
}

func (i Interval) IsPoint() bool {
	return i.Lower == i.Upper && !i.LeftOpen && !i.RightOpen
}

func (i Interval) String() string {
	l, r := "[", "]"
	if i.LeftOpen {
		l = "("
	}
	if i.RightOpen {
		r = ")"
	}
	if i.IsPoint() {
		return fmt.Sprintf("[%s]", i.Lower)
	}
	return fmt.Sprintf("%s%s, %s%s", l, i.Lower, i.Upper, r)
}

// Duration bounds the length of a durative action.
type Duration struct {
	Lower, Upper       *ir.Expr
	LeftOpen, RightOpen bool
}

// FixedDuration returns the duration exactly equal to e.
func FixedDuration(e *ir.Expr) Duration {
	return Duration{Lower: e, Upper: e}
}

func (d Duration) IsFixed() bool {
	return ir.Equal(d.Lower, d.Upper) && !d.LeftOpen && !d.RightOpen
}

func (d Duration) String() string {
	if d.IsFixed() {
		return fmt.Sprintf("= %s", d.Lower)
	}
	l, r := "[", "]"
	if d.LeftOpen {
		l = "("
	}
	if d.RightOpen {
		r = ")"
	}
	return fmt.Sprintf("%s%s, %s%s", l, d.Lower, d.Upper, r)
}

// TimedCondition attaches a condition to a time interval of a durative
// action.
type TimedCondition struct {
	Interval Interval
	Cond     *ir.Expr
}

// TimedEffect attaches an effect to a timing, either of a durative
// action or of the problem itself.
type TimedEffect struct {
	Timing Timing
	Effect *Effect
}

// TimedGoal attaches a goal to a time interval of the problem.
type TimedGoal struct {
	Interval Interval
	Goal     *ir.Expr
}
