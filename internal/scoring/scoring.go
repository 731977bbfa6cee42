// Package scoring derives the 0-100 quality score cached on each entry.
package scoring

import (
	"math"

	"github.com/hfletcher/gutlog/internal/models"
)

const (
	idealDurationSec = 120
	decayWindowSec   = 1080
	timeFloor        = 0.1
	fiberSaturation  = 40.0

	weightTime  = 0.4
	weightFiber = 0.4
	weightMood  = 0.2
)

var moodWeights = map[models.Mood]float64{
	models.MoodHappy:   1.0,
	models.MoodNeutral: 0.6,
	models.MoodSad:     0.3,
}

// Score maps raw entry fields to an integer score. A day with no
// movement scores exactly 0; any logged movement scores at least 1, so 0
// is unambiguous in displays.
func Score(didPoop bool, durationSec, fiberGrams int, mood models.Mood) int {
	if !didPoop {
		return 0
	}

	// Durations near two minutes score best; the time component decays
	// linearly to a floor of 0.1 by about twenty minutes.
	timeScore := 1 - math.Max(0, float64(durationSec)-idealDurationSec)/decayWindowSec
	if timeScore < timeFloor {
		timeScore = timeFloor
	}

	fiberScore := math.Min(float64(fiberGrams)/fiberSaturation, 1)

	moodScore, ok := moodWeights[mood]
	if !ok {
		moodScore = moodWeights[models.MoodNeutral]
	}

	raw := (weightTime*timeScore + weightFiber*fiberScore + weightMood*moodScore) * 100
	return int(math.Round(math.Max(raw, 1)))
}

// ScoreEntry scores an entry from its own fields.
func ScoreEntry(e models.Entry) int {
	return Score(e.DidPoop, e.DurationSec, e.FiberGrams, e.Mood)
}
