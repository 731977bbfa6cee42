package scoring

import (
	"testing"

	"github.com/hfletcher/gutlog/internal/models"
)

func TestScoreNoMovement(t *testing.T) {
	// didPoop=false forces 0 regardless of the other fields
	cases := []struct {
		duration int
		fiber    int
		mood     models.Mood
	}{
		{0, 0, models.MoodSad},
		{120, 40, models.MoodHappy},
		{1200, 50, models.MoodNeutral},
	}

	for _, c := range cases {
		if got := Score(false, c.duration, c.fiber, c.mood); got != 0 {
			t.Errorf("Score(false, %d, %d, %s) = %d, want 0", c.duration, c.fiber, c.mood, got)
		}
	}
}

func TestScorePerfect(t *testing.T) {
	if got := Score(true, 120, 40, models.MoodHappy); got != 100 {
		t.Errorf("Score(true, 120, 40, happy) = %d, want 100", got)
	}
}

func TestScoreBounds(t *testing.T) {
	durations := []int{0, 60, 120, 150, 600, 1200, 5000}
	fibers := []int{0, 5, 25, 40, 50}
	moods := []models.Mood{models.MoodHappy, models.MoodNeutral, models.MoodSad}

	for _, d := range durations {
		for _, f := range fibers {
			for _, m := range moods {
				got := Score(true, d, f, m)
				if got < 1 || got > 100 {
					t.Errorf("Score(true, %d, %d, %s) = %d, want in [1,100]", d, f, m, got)
				}
			}
		}
	}
}

func TestScoreTimeDecay(t *testing.T) {
	t.Run("short durations are not penalized", func(t *testing.T) {
		quick := Score(true, 60, 20, models.MoodNeutral)
		ideal := Score(true, 120, 20, models.MoodNeutral)
		if quick != ideal {
			t.Errorf("Score at 60s = %d, want %d (same as 120s)", quick, ideal)
		}
	})

	t.Run("long durations hit the floor, not zero", func(t *testing.T) {
		long := Score(true, 1200, 0, models.MoodSad)
		longer := Score(true, 3600, 0, models.MoodSad)
		if long != longer {
			t.Errorf("floored scores differ: 1200s=%d 3600s=%d", long, longer)
		}
		if long < 1 {
			t.Errorf("floored score = %d, want >= 1", long)
		}
	})
}

func TestScoreWeightedBlend(t *testing.T) {
	// time = 1 - 30/1080 = 0.9722, fiber = 0.75, mood = 0.6
	// => round((0.4*0.9722 + 0.4*0.75 + 0.2*0.6) * 100) = 81
	if got := Score(true, 150, 30, models.MoodNeutral); got != 81 {
		t.Errorf("Score(true, 150, 30, neutral) = %d, want 81", got)
	}
}

func TestScoreUnknownMood(t *testing.T) {
	// Unrecognized moods fall back to the neutral weight
	unknown := Score(true, 150, 30, models.Mood("confused"))
	neutral := Score(true, 150, 30, models.MoodNeutral)
	if unknown != neutral {
		t.Errorf("unknown mood score = %d, want %d", unknown, neutral)
	}
}

func TestScoreEntry(t *testing.T) {
	e := models.Entry{DidPoop: true, DurationSec: 120, FiberGrams: 40, Mood: models.MoodHappy}
	if got := ScoreEntry(e); got != 100 {
		t.Errorf("ScoreEntry = %d, want 100", got)
	}
}
