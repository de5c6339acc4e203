// internal/game/engine.go
//
// Pure state transitions for the hidden word game.
// Responsibilities:
//   - Validate construction-time options (word list, puzzle length, duration).
//   - Start a session: generate the puzzle, reset found set, input, status, clock.
//   - Apply guesses, input edits, and clock ticks as (State, event) -> State.
//
// Notes:
//   - Nothing here touches timers, locks, or I/O; the session package owns those.
//   - Guesses after the session completed (time out or all found) are ignored.

package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/robalobadob/hiddenwords/internal/puzzle"
	"github.com/robalobadob/hiddenwords/internal/words"
)

const (
	DefaultBaseLength = 50
	DefaultDuration   = 60
)

var (
	ErrNoWords       = errors.New("game: no target words")
	ErrInvalidWord   = errors.New("game: target words must be uppercase A-Z")
	ErrBaseTooShort  = errors.New("game: puzzle length shorter than a target word")
	ErrBadDuration   = errors.New("game: duration must be positive")
	ErrDuplicateWord = errors.New("game: duplicate target word")
)

// Options configures Rules. Zero BaseLength/Duration take the defaults.
type Options struct {
	Words      []string
	BaseLength int
	Duration   int
	Source     puzzle.Source // nil means puzzle.CryptoSource
}

// Rules is the immutable configuration of a game plus its transitions.
type Rules struct {
	words      []string
	targets    map[string]struct{}
	baseLength int
	duration   int
	src        puzzle.Source
	srcFn      func() puzzle.Source
}

// New validates opts and returns Rules. A puzzle length shorter than the
// longest word fails here, before any session exists.
func New(opts Options) (*Rules, error) {
	if len(opts.Words) == 0 {
		return nil, ErrNoWords
	}
	if opts.BaseLength == 0 {
		opts.BaseLength = DefaultBaseLength
	}
	if opts.Duration == 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Duration < 0 {
		return nil, ErrBadDuration
	}
	if opts.Source == nil {
		opts.Source = puzzle.CryptoSource{}
	}

	list := make([]string, len(opts.Words))
	targets := make(map[string]struct{}, len(opts.Words))
	for i, w := range opts.Words {
		if w == "" || !words.IsAlpha(w) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWord, w)
		}
		if _, dup := targets[w]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateWord, w)
		}
		list[i] = w
		targets[w] = struct{}{}
	}
	if n := words.Longest(list); opts.BaseLength < n {
		return nil, fmt.Errorf("%w: length %d, longest word %d", ErrBaseTooShort, opts.BaseLength, n)
	}

	return &Rules{
		words:      list,
		targets:    targets,
		baseLength: opts.BaseLength,
		duration:   opts.Duration,
		src:        opts.Source,
	}, nil
}

// WithSourceFunc returns a copy of r that asks fn for a fresh source on
// every Start (daily puzzles re-derive the day's seed each time).
func (r *Rules) WithSourceFunc(fn func() puzzle.Source) *Rules {
	cp := *r
	cp.srcFn = fn
	return &cp
}

// Words returns a copy of the target list in insertion order.
func (r *Rules) Words() []string { return append([]string(nil), r.words...) }

// Duration is the number of seconds a session starts with.
func (r *Rules) Duration() int { return r.duration }

// Start returns a fresh session.
func (r *Rules) Start() State {
	src := r.src
	if r.srcFn != nil {
		src = r.srcFn()
	}
	return State{
		Puzzle:    puzzle.Generate(src, r.baseLength, r.words),
		Found:     map[string]struct{}{},
		Remaining: r.duration,
	}
}

// SubmitGuess evaluates raw against the target list.
//
// Transitions, in order:
//   - new target word → added to Found, success status, input cleared
//     (completion status if it was the last missing word).
//   - already found   → MsgAlreadyFound, input unchanged.
//   - anything else   → MsgNotInList, input unchanged.
func (r *Rules) SubmitGuess(s State, raw string) State {
	if r.Complete(s) {
		return s
	}
	word := strings.ToUpper(raw)

	if _, isTarget := r.targets[word]; isTarget {
		if _, seen := s.Found[word]; !seen {
			found := make(map[string]struct{}, len(s.Found)+1)
			for w := range s.Found {
				found[w] = struct{}{}
			}
			found[word] = struct{}{}
			s.Found = found
			s.Status = fmt.Sprintf(msgFoundTemplate, word)
			s.Input = ""
			if r.AllFound(s) {
				s.Status = MsgAllFound
			}
			return s
		}
	}
	if _, seen := s.Found[word]; seen {
		s.Status = MsgAlreadyFound
		return s
	}
	s.Status = MsgNotInList
	return s
}

// Tick removes one second. Reaching zero with words left sets MsgTimeUp;
// ticks at zero change nothing.
func (r *Rules) Tick(s State) State {
	if s.Remaining <= 0 {
		s.Remaining = 0
		return s
	}
	s.Remaining--
	if s.Remaining == 0 && !r.AllFound(s) {
		s.Status = MsgTimeUp
	}
	return s
}

// UpdateInput replaces the input text verbatim.
func UpdateInput(s State, text string) State {
	s.Input = text
	return s
}

// AllFound reports whether every target word has been found.
func (r *Rules) AllFound(s State) bool {
	if len(s.Found) != len(r.targets) {
		return false
	}
	for w := range r.targets {
		if _, ok := s.Found[w]; !ok {
			return false
		}
	}
	return true
}

// Complete reports whether the session reached a terminal display state.
func (r *Rules) Complete(s State) bool {
	return s.Remaining == 0 || r.AllFound(s)
}

// View projects s for presentation.
func (r *Rules) View(s State) View {
	found := make([]string, 0, len(s.Found))
	for w := range s.Found {
		found = append(found, w)
	}
	sort.Strings(found)
	return View{
		Puzzle:           s.Puzzle,
		FoundWords:       found,
		FoundCount:       len(s.Found),
		TotalWords:       len(r.words),
		InputText:        s.Input,
		StatusMessage:    s.Status,
		RemainingSeconds: s.Remaining,
		TimeExpired:      s.Remaining == 0,
		AllFound:         r.AllFound(s),
	}
}
