package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/robalobadob/hiddenwords/internal/config"
	"github.com/robalobadob/hiddenwords/internal/game"
)

func TestWordsCommand(t *testing.T) {
	t.Setenv("WORDS_FILE", "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"words"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := strings.Fields(out.String()); strings.Join(got, ",") != "DOG,CAT,BIRD,FISH,LION" {
		t.Errorf("words output = %v", got)
	}
}

func TestLoadRulesRejectsShortPuzzle(t *testing.T) {
	_, err := loadRules(config.Config{PuzzleLength: 3, GameSeconds: 60})
	if !errors.Is(err, game.ErrBaseTooShort) {
		t.Errorf("error = %v, want ErrBaseTooShort", err)
	}
}

func TestLoadRulesDefaults(t *testing.T) {
	rules, err := loadRules(config.Config{PuzzleLength: 50, GameSeconds: 60})
	if err != nil {
		t.Fatalf("loadRules: %v", err)
	}
	if rules.Duration() != 60 || len(rules.Words()) != 5 {
		t.Errorf("unexpected rules: %d seconds, %v", rules.Duration(), rules.Words())
	}
}
