package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hiddenwords/internal/config"
	"github.com/robalobadob/hiddenwords/internal/countdown"
	"github.com/robalobadob/hiddenwords/internal/daily"
	"github.com/robalobadob/hiddenwords/internal/game"
	"github.com/robalobadob/hiddenwords/internal/httpserver"
	"github.com/robalobadob/hiddenwords/internal/puzzle"
	"github.com/robalobadob/hiddenwords/internal/session"
	"github.com/robalobadob/hiddenwords/internal/store"
	"github.com/robalobadob/hiddenwords/internal/tui"
	"github.com/robalobadob/hiddenwords/internal/words"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hiddenwords",
		Short:         "Hidden Word Finder: find the words hidden in a string of letters",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newPlayCmd())
	root.AddCommand(newWordsCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser game over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg = cfg.WithPort(port)
			}
			setupLogging(cfg, os.Stderr)

			rules, err := loadRules(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpserver.New(store.NewMemoryStore(), rules, cfg)
			go srv.RunSweeper(ctx, time.Minute)

			log.Info().Str("port", cfg.Port).Int("words", len(rules.Words())).Msg("starting server")
			if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
				return fmt.Errorf("server exited: %w", err)
			}
			log.Info().Msg("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "HTTP port (overrides PORT)")
	return cmd
}

func newPlayCmd() *cobra.Command {
	var dailyMode bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			var out io.Writer = io.Discard
			if cfg.LogFile != "" {
				f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				out = f
			}
			setupLogging(cfg, out)

			rules, err := loadRules(cfg)
			if err != nil {
				return err
			}
			if dailyMode {
				salt := cfg.DailySalt
				rules = rules.WithSourceFunc(func() puzzle.Source { return daily.Source(time.Now(), salt) })
			}

			ctrl := session.New(rules, countdown.SystemClock{}, session.WithLogger(log.Logger))
			return tui.Run(ctrl)
		},
	}
	cmd.Flags().BoolVar(&dailyMode, "daily", false, "play today's shared puzzle")
	return cmd
}

func newWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words",
		Short: "Print the target word list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			list, err := words.Load(cfg.WordsFile)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(list, "\n"))
			return err
		},
	}
}

// loadRules builds game rules from the configured word list and sizes.
func loadRules(cfg config.Config) (*game.Rules, error) {
	list, err := words.Load(cfg.WordsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list: %w", err)
	}
	return game.New(game.Options{
		Words:      list,
		BaseLength: cfg.PuzzleLength,
		Duration:   cfg.GameSeconds,
	})
}

func setupLogging(cfg config.Config, out io.Writer) {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	if f, ok := out.(*os.File); ok && f == os.Stderr {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

