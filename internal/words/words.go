// internal/words/words.go
//
// Provides the target word list hidden in every puzzle.
//
// Responsibilities:
//   - Load the target list from a configured file or fall back to the embedded default.
//   - Normalize words to uppercase and reject anything that is not A–Z.
//   - Keep list order (it is the insertion order used by the puzzle generator).
//
// Initialization behavior (Load):
//   1. If path is non-empty (WORDS_FILE), read one word per line from that file.
//   2. Otherwise use the embedded assets/words.txt list.
//
// Constraints:
//   • Words must be alphabetic (A–Z after uppercasing).
//   • Duplicates are dropped, keeping the first occurrence.
//   • An empty resulting list is an error.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/robalobadob/hiddenwords/assets"
)

// ErrEmpty is returned when no usable target word was found.
var ErrEmpty = errors.New("words: target list is empty")

// Load returns the target word list from path, or the embedded default when
// path is empty.
func Load(path string) ([]string, error) {
	var raw []string
	if path == "" {
		list, err := assets.TargetWords()
		if err != nil {
			return nil, fmt.Errorf("read embedded words: %w", err)
		}
		raw = list
	} else {
		list, err := readWordFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		raw = list
	}

	out := Normalize(raw)
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// readWordFile loads one word per line, skipping blanks and # comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// Normalize uppercases the list, drops non-alphabetic entries and duplicates,
// and preserves the order of first occurrence.
func Normalize(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" || !IsAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// IsAlpha reports whether s is all uppercase ASCII letters.
func IsAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Longest returns the length of the longest word in list.
func Longest(list []string) int {
	n := 0
	for _, w := range list {
		if len(w) > n {
			n = len(w)
		}
	}
	return n
}
