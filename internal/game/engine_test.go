package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/robalobadob/hiddenwords/internal/puzzle"
)

var targets = []string{"DOG", "CAT", "BIRD", "FISH", "LION"}

func newTestRules(t *testing.T) *Rules {
	t.Helper()
	r, err := New(Options{Words: targets, Source: puzzle.NewSeeded(1)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"no words", Options{}, ErrNoWords},
		{"lowercase word", Options{Words: []string{"dog"}}, ErrInvalidWord},
		{"base too short", Options{Words: targets, BaseLength: 3}, ErrBaseTooShort},
		{"negative duration", Options{Words: targets, Duration: -1}, ErrBadDuration},
		{"duplicate word", Options{Words: []string{"DOG", "DOG", "CAT"}}, ErrDuplicateWord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAllFoundCountsDistinctTargets(t *testing.T) {
	r, err := New(Options{Words: []string{"DOG", "CAT"}, Source: puzzle.NewSeeded(1)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s := r.Start()
	s = r.SubmitGuess(s, "dog")
	s = r.SubmitGuess(s, "cat")
	v := r.View(s)
	if !v.AllFound || v.FoundCount != v.TotalWords || v.StatusMessage != MsgAllFound {
		t.Fatalf("view after finding every word = %+v", v)
	}
	if got := r.SubmitGuess(s, "dog"); got.Status != MsgAllFound {
		t.Errorf("guess after completion changed status to %q", got.Status)
	}
}

func TestNewDefaults(t *testing.T) {
	r := newTestRules(t)
	s := r.Start()
	if len(s.Puzzle) != DefaultBaseLength {
		t.Errorf("puzzle length = %d, want %d", len(s.Puzzle), DefaultBaseLength)
	}
	if s.Remaining != DefaultDuration {
		t.Errorf("remaining = %d, want %d", s.Remaining, DefaultDuration)
	}
	if len(s.Found) != 0 || s.Input != "" || s.Status != "" {
		t.Errorf("fresh state not empty: %+v", s)
	}
}

func TestStartLastWordPresent(t *testing.T) {
	r := newTestRules(t)
	for i := 0; i < 50; i++ {
		s := r.Start()
		if !strings.Contains(s.Puzzle, "LION") {
			t.Fatalf("puzzle %s does not contain the last inserted word", s.Puzzle)
		}
	}
}

func TestSubmitGuessFound(t *testing.T) {
	r := newTestRules(t)
	s := UpdateInput(r.Start(), "dog")
	s = r.SubmitGuess(s, s.Input)

	if _, ok := s.Found["DOG"]; !ok || len(s.Found) != 1 {
		t.Errorf("found = %v, want {DOG}", s.Found)
	}
	if !strings.Contains(s.Status, "DOG") {
		t.Errorf("status %q should name DOG", s.Status)
	}
	if s.Input != "" {
		t.Errorf("input = %q, want cleared", s.Input)
	}
	if s.Remaining != 60 {
		t.Errorf("remaining = %d, want 60", s.Remaining)
	}
}

func TestSubmitGuessAlreadyFound(t *testing.T) {
	r := newTestRules(t)
	s := r.SubmitGuess(r.Start(), "dog")
	before := s.Found

	s = UpdateInput(s, "Dog")
	s = r.SubmitGuess(s, s.Input)

	if len(s.Found) != 1 {
		t.Errorf("found size = %d, want 1", len(s.Found))
	}
	if s.Status != MsgAlreadyFound {
		t.Errorf("status = %q, want %q", s.Status, MsgAlreadyFound)
	}
	if s.Input != "Dog" {
		t.Errorf("input = %q, want unchanged", s.Input)
	}
	if len(before) != 1 {
		t.Errorf("earlier found set was mutated: %v", before)
	}
}

func TestSubmitGuessNotInList(t *testing.T) {
	r := newTestRules(t)
	s := UpdateInput(r.Start(), "xyz")
	s = r.SubmitGuess(s, s.Input)

	if len(s.Found) != 0 {
		t.Errorf("found = %v, want empty", s.Found)
	}
	if s.Status != MsgNotInList {
		t.Errorf("status = %q, want %q", s.Status, MsgNotInList)
	}
	if s.Input != "xyz" {
		t.Errorf("input = %q, want unchanged", s.Input)
	}
}

func TestSubmitGuessDoesNotTrim(t *testing.T) {
	r := newTestRules(t)
	s := r.SubmitGuess(r.Start(), " dog")
	if s.Status != MsgNotInList {
		t.Errorf("status = %q, want %q", s.Status, MsgNotInList)
	}
}

func TestSubmitAllWords(t *testing.T) {
	r := newTestRules(t)
	s := r.Start()
	for i, w := range targets {
		s = r.SubmitGuess(s, strings.ToLower(w))
		if i < len(targets)-1 && !strings.Contains(s.Status, w) {
			t.Errorf("after %s status = %q", w, s.Status)
		}
	}
	if s.Status != MsgAllFound {
		t.Errorf("status = %q, want %q", s.Status, MsgAllFound)
	}
	if len(s.Found) != 5 {
		t.Errorf("found size = %d, want 5", len(s.Found))
	}
	if !r.AllFound(s) || !r.View(s).AllFound {
		t.Error("AllFound should be true")
	}
}

func TestSubmitGuessIgnoredWhenComplete(t *testing.T) {
	r := newTestRules(t)

	expired := r.Start()
	for i := 0; i < 60; i++ {
		expired = r.Tick(expired)
	}
	after := r.SubmitGuess(expired, "dog")
	if len(after.Found) != 0 || after.Status != MsgTimeUp {
		t.Errorf("guess after timeout changed state: %+v", after)
	}

	won := r.Start()
	for _, w := range targets {
		won = r.SubmitGuess(won, w)
	}
	after = r.SubmitGuess(won, "xyz")
	if after.Status != MsgAllFound {
		t.Errorf("guess after win changed status to %q", after.Status)
	}
}

func TestTickCountdown(t *testing.T) {
	r := newTestRules(t)
	s := r.Start()
	for i := 0; i < 60; i++ {
		s = r.Tick(s)
		if s.Remaining != 59-i {
			t.Fatalf("tick %d: remaining = %d", i, s.Remaining)
		}
	}
	if s.Status != MsgTimeUp {
		t.Errorf("status = %q, want %q", s.Status, MsgTimeUp)
	}

	s.Status = "sentinel"
	s = r.Tick(s)
	if s.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", s.Remaining)
	}
	if s.Status != "sentinel" {
		t.Errorf("tick at zero fired again: status %q", s.Status)
	}
	if !r.View(s).TimeExpired {
		t.Error("TimeExpired should be true")
	}
}

func TestTickAfterAllFoundKeepsCompletionMessage(t *testing.T) {
	r, err := New(Options{Words: []string{"DOG"}, Duration: 2, Source: puzzle.NewSeeded(3)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s := r.SubmitGuess(r.Start(), "dog")
	s = r.Tick(r.Tick(s))
	if s.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", s.Remaining)
	}
	if s.Status != MsgAllFound {
		t.Errorf("status = %q, want %q", s.Status, MsgAllFound)
	}
}

func TestTickAndInputNeverGrowFound(t *testing.T) {
	r := newTestRules(t)
	s := r.SubmitGuess(r.Start(), "cat")
	s = UpdateInput(s, "BIRD")
	s = r.Tick(s)
	if len(s.Found) != 1 {
		t.Errorf("found size = %d, want 1", len(s.Found))
	}
	if s.Input != "BIRD" {
		t.Errorf("input = %q, want BIRD", s.Input)
	}
}

func TestStartResetsEverything(t *testing.T) {
	r := newTestRules(t)
	s := r.SubmitGuess(r.Start(), "dog")
	for i := 0; i < 10; i++ {
		s = r.Tick(s)
	}
	s = r.Start()
	if s.Remaining != 60 || len(s.Found) != 0 || s.Status != "" || s.Input != "" {
		t.Errorf("Start did not reset: %+v", s)
	}
}

func TestView(t *testing.T) {
	r := newTestRules(t)
	s := r.SubmitGuess(r.Start(), "fish")
	s = r.SubmitGuess(s, "bird")
	s = UpdateInput(s, "li")
	v := r.View(s)

	if v.FoundCount != 2 || v.TotalWords != 5 {
		t.Errorf("counts = %d/%d, want 2/5", v.FoundCount, v.TotalWords)
	}
	if len(v.FoundWords) != 2 || v.FoundWords[0] != "BIRD" || v.FoundWords[1] != "FISH" {
		t.Errorf("FoundWords = %v, want [BIRD FISH]", v.FoundWords)
	}
	if v.InputText != "li" || v.Puzzle != s.Puzzle || v.RemainingSeconds != 60 {
		t.Errorf("unexpected view: %+v", v)
	}
	if v.TimeExpired || v.AllFound {
		t.Errorf("flags should be false: %+v", v)
	}
}

func TestWordsReturnsCopy(t *testing.T) {
	r := newTestRules(t)
	w := r.Words()
	w[0] = "ZZZ"
	if r.Words()[0] != "DOG" {
		t.Error("Words() exposed internal slice")
	}
}

func TestWithSourceFuncRederivesEachStart(t *testing.T) {
	r := newTestRules(t)
	daily := r.WithSourceFunc(func() puzzle.Source { return puzzle.NewSeeded(2026) })

	a, b := daily.Start(), daily.Start()
	if a.Puzzle != b.Puzzle {
		t.Errorf("puzzles differ: %s vs %s", a.Puzzle, b.Puzzle)
	}
	if c, d := r.Start(), r.Start(); c.Puzzle == d.Puzzle {
		t.Error("base rules should keep drawing from the shared source")
	}
}
