package chart

import (
	"math/rand"
	"testing"
)

func TestLongestStreak(t *testing.T) {
	cases := []struct {
		name  string
		marks []weekMark
		want  int
	}{
		{"empty", nil, 0},
		{"single", []weekMark{{2023, 10}}, 1},
		{"gap breaks run", []weekMark{{2023, 10}, {2023, 11}, {2023, 12}, {2023, 14}}, 3},
		{"rollover 52 to 1", []weekMark{{2020, 52}, {2021, 1}}, 2},
		{"rollover 53 to 1", []weekMark{{2020, 53}, {2021, 1}}, 2},
		{"no rollover from week 50", []weekMark{{2020, 50}, {2021, 1}}, 1},
		{"duplicates ignored", []weekMark{{2023, 10}, {2023, 10}, {2023, 11}}, 2},
		{"duplicate does not break run", []weekMark{{2023, 10}, {2023, 11}, {2023, 11}, {2023, 12}}, 3},
		{"run at end wins", []weekMark{{2023, 1}, {2023, 5}, {2023, 6}, {2023, 7}}, 3},
		{"spans two years", []weekMark{{2022, 51}, {2022, 52}, {2023, 1}, {2023, 2}}, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := longestStreak(tc.marks); got != tc.want {
				t.Errorf("longestStreak(%v) = %d, want %d", tc.marks, got, tc.want)
			}
		})
	}
}

func TestLongestStreakOrderIndependent(t *testing.T) {
	marks := []weekMark{
		{2022, 50}, {2022, 51}, {2022, 52}, {2023, 1}, {2023, 3}, {2023, 4}, {2023, 10},
	}
	want := longestStreak(marks)
	if want != 4 {
		t.Fatalf("baseline streak = %d, want 4", want)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]weekMark, len(marks))
		copy(shuffled, marks)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := longestStreak(shuffled); got != want {
			t.Errorf("shuffle %d: longestStreak = %d, want %d (input %v)", i, got, want, shuffled)
		}
	}
}

func TestLongestStreakDoesNotMutateInput(t *testing.T) {
	marks := []weekMark{{2023, 12}, {2023, 10}, {2023, 11}}
	longestStreak(marks)
	if marks[0] != (weekMark{2023, 12}) {
		t.Errorf("input slice was reordered: %v", marks)
	}
}
