// internal/game/types.go
//
// Core type definitions for the hidden word game.
// Defines:
//   - State: one session's values (puzzle, found set, input, status, clock).
//   - View:  the read-only projection handed to presentation layers.
//   - Status messages shown to the player.

package game

// Status messages. Game outcomes are reported through these, never as errors.
const (
	MsgAllFound      = "Congratulations! You found all the words!"
	MsgAlreadyFound  = "You already found this word"
	MsgNotInList     = "Sorry, that word is not in the list"
	MsgTimeUp        = "Time's up! Game over."
	msgFoundTemplate = "Great! You found %q"
)

// State holds a single session. Values are replaced, never mutated in place:
// every transition returns a new State and copies Found when it changes.
type State struct {
	Puzzle    string              // Generated letter string.
	Found     map[string]struct{} // Subset of the target words, uppercase.
	Input     string              // Current text in the guess box.
	Status    string              // Last status message ("" when none).
	Remaining int                 // Seconds left, never negative.
}

// View is what presentation renders.
type View struct {
	Puzzle           string   `json:"puzzle"`
	FoundWords       []string `json:"foundWords"`
	FoundCount       int      `json:"foundCount"`
	TotalWords       int      `json:"totalWords"`
	InputText        string   `json:"inputText"`
	StatusMessage    string   `json:"statusMessage"`
	RemainingSeconds int      `json:"remainingSeconds"`
	TimeExpired      bool     `json:"timeExpired"`
	AllFound         bool     `json:"allFound"`
}
