// cmd/wordle/commands.go
//
// Cobra command tree. Every command loads configuration and logging first;
// play and stats use the stats file, serve uses the database.

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/daily"
	"github.com/robalobadob/wordle/internal/db"
	"github.com/robalobadob/wordle/internal/httpserver"
	"github.com/robalobadob/wordle/internal/logging"
	"github.com/robalobadob/wordle/internal/session"
	"github.com/robalobadob/wordle/internal/stats"
	"github.com/robalobadob/wordle/internal/store"
	"github.com/robalobadob/wordle/internal/tui"
	"github.com/robalobadob/wordle/internal/words"
)

// app carries state shared by all subcommands.
type app struct {
	cfg   config.Config
	logs  io.Closer
	daily bool
	port  string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play Wordle in the terminal",
		Args:  cobra.NoArgs,
		RunE:  a.runPlay,
	}
	playCmd.Flags().BoolVar(&a.daily, "daily", false, "start with today's daily word")

	rootCmd := &cobra.Command{
		Use:               "wordle",
		Short:             "Console Wordle",
		Long:              "Guess the five-letter word in six tries. Statistics are kept between sessions.",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
		RunE:              a.runPlay,
	}
	rootCmd.Flags().BoolVar(&a.daily, "daily", false, "start with today's daily word")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show saved statistics",
		Args:  cobra.NoArgs,
		RunE:  a.runStats,
	}
	statsCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset saved statistics",
		Args:  cobra.NoArgs,
		RunE:  a.runStatsReset,
	})

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  a.runServe,
	}
	serveCmd.Flags().StringVar(&a.port, "port", "", "listen port (overrides PORT)")

	rootCmd.AddCommand(playCmd, statsCmd, serveCmd)
	return rootCmd
}

// setup loads configuration and configures logging for the chosen command.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	// The game draws over the whole terminal; without a log file stay silent.
	playing := cmd.Name() == "play" || cmd.Name() == "wordle"
	if playing && cfg.LogFile == "" {
		logging.Discard()
		return nil
	}
	a.logs, err = logging.Setup(cfg.LogLevel, cfg.LogFile)
	return err
}

func (a *app) teardown(cmd *cobra.Command, args []string) {
	if a.logs != nil {
		_ = a.logs.Close()
	}
}

// openKeeper loads the terminal player's statistics file.
func (a *app) openKeeper(ctx context.Context) *stats.Keeper {
	path, err := a.cfg.StatsPath()
	if err != nil {
		return stats.Disabled(err)
	}
	return stats.Open(ctx, stats.NewFileStore(path))
}

func (a *app) runPlay(cmd *cobra.Command, args []string) error {
	dict, err := words.Load(a.cfg.WordsAnswersFile, a.cfg.WordsAllowedFile)
	if err != nil {
		return fmt.Errorf("load word lists: %w", err)
	}
	ctx := cmd.Context()
	sess := session.New(dict, a.openKeeper(ctx))

	var opts []tui.Option
	if a.daily {
		day := daily.NewSchedule(a.cfg.DailySalt, dict).On(time.Now())
		opts = append(opts, tui.WithFirstSecret(day.Word))
	}
	return tui.Run(ctx, sess, opts...)
}

func (a *app) runStats(cmd *cobra.Command, args []string) error {
	k := a.openKeeper(cmd.Context())
	if !k.Enabled() {
		return fmt.Errorf("statistics are unavailable: %w", k.Err())
	}
	printLedger(cmd.OutOrStdout(), k.Ledger())
	return nil
}

func (a *app) runStatsReset(cmd *cobra.Command, args []string) error {
	k := a.openKeeper(cmd.Context())
	k.Reset(cmd.Context())
	if !k.Enabled() {
		return fmt.Errorf("statistics are unavailable: %w", k.Err())
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Statistics reset.")
	return nil
}

func printLedger(w io.Writer, l stats.Ledger) {
	fmt.Fprintf(w, "Played\t%d\n", l.GamesPlayed)
	fmt.Fprintf(w, "Win %%\t%s\n", strconv.FormatFloat(l.WinPercentage(), 'f', -1, 64))
	fmt.Fprintf(w, "Current Streak\t%d\n", l.CurrentStreak)
	fmt.Fprintf(w, "Max Streak\t%d\n", l.MaxStreak)
	fmt.Fprintln(w, "\nGuess Distribution")
	for i, n := range l.Distribution {
		fmt.Fprintf(w, "%d : %d\n", i+1, n)
	}
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	port := a.cfg.Port
	if a.port != "" {
		port = a.port
	}
	dict, err := words.Load(a.cfg.WordsAnswersFile, a.cfg.WordsAllowedFile)
	if err != nil {
		return fmt.Errorf("load word lists: %w", err)
	}
	answers, allowed := dict.Counts()
	log.Info().Int("answers", answers).Int("allowed", allowed).Msg("word lists loaded")

	conn, err := db.Open(a.cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer conn.Close()

	srv := httpserver.New(store.NewMemoryStore(), conn, dict, a.cfg)
	log.Info().Str("port", port).Msg("starting wordle server")
	return srv.Start(cmd.Context(), ":"+port)
}
