// Package timecode converts between millisecond/second counts and an
// elapsed-duration H:M:S representation. Hours are unbounded, not wrapped
// to 24, so a Timecode measures elapsed playback time rather than a
// calendar time of day.
package timecode

import (
	"fmt"
	"math"
)

type Timecode struct {
	Hours   int
	Minutes int
	Seconds int
}

// FromMilliseconds truncates the sub-second remainder.
func FromMilliseconds(ms int) Timecode {
	return FromSeconds(ms / 1000)
}

func FromSeconds(sec int) Timecode {
	return Timecode{
		Hours:   sec / 3600,
		Minutes: (sec % 3600) / 60,
		Seconds: sec % 60,
	}
}

// FromFloatSeconds rounds to the nearest whole second, ties away from zero.
func FromFloatSeconds(sec float64) Timecode {
	return FromSeconds(int(math.Round(sec)))
}

// TotalSeconds is the exact inverse of FromSeconds.
func (t Timecode) TotalSeconds() int {
	return (t.Hours*60+t.Minutes)*60 + t.Seconds
}

func (t Timecode) Before(o Timecode) bool {
	return t.TotalSeconds() < o.TotalSeconds()
}

func (t Timecode) After(o Timecode) bool {
	return t.TotalSeconds() > o.TotalSeconds()
}

func (t Timecode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}
