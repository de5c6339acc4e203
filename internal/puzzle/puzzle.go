// internal/puzzle/puzzle.go
//
// Puzzle generation for the hidden word game.
//
//   1. Fill baseLength positions with letters drawn uniformly from A–Z.
//   2. For each target word in list order, pick an offset uniformly in
//      [0, baseLength-len(word)] and overwrite that span with the word.
//
// Later words may overwrite letters of earlier ones when their spans
// collide. That is the expected behavior: no retry, no collision check.
//
// Callers must ensure baseLength >= the longest word; Generate does not
// check it (game.New does).

package puzzle

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Placement records where a word was written.
type Placement struct {
	Word   string `json:"word"`
	Offset int    `json:"offset"`
}

// Puzzle is a generated letter string plus the offsets chosen for each word.
type Puzzle struct {
	Text       string
	Placements []Placement
}

// Generate returns a puzzle string of length baseLength with every word overlaid.
func Generate(src Source, baseLength int, words []string) string {
	return Layout(src, baseLength, words).Text
}

// Layout is Generate, but also reports the offset chosen for each word.
func Layout(src Source, baseLength int, words []string) Puzzle {
	buf := make([]byte, baseLength)
	for i := range buf {
		buf[i] = alphabet[src.Intn(len(alphabet))]
	}

	placements := make([]Placement, 0, len(words))
	for _, w := range words {
		off := src.Intn(baseLength - len(w) + 1)
		copy(buf[off:], w)
		placements = append(placements, Placement{Word: w, Offset: off})
	}
	return Puzzle{Text: string(buf), Placements: placements}
}
