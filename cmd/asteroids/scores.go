package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids"
	"github.com/vovakirdan/tui-asteroids/internal/platform/tui"
	"github.com/vovakirdan/tui-asteroids/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresClear  bool
	flagScoresTUI    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores.

Examples:
  asteroids scores
  asteroids scores --limit 25
  asteroids scores --player ada
  asteroids scores --tui
  asteroids scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show this player's scores")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores in a full-screen table")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	gameID := asteroids.GameID

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintln(out, "Scores cleared.")
		return nil
	}

	if flagScoresTUI {
		width, height := terminalSize()
		return tui.RunScoreboard(store, gameID, width, height)
	}

	var scores []storage.ScoreEntry
	if flagScoresPlayer != "" {
		scores, err = store.PlayerScores(gameID, flagScoresPlayer, flagScoresLimit)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintln(out, "High Scores - Asteroids")
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'asteroids play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-4s  %-16s  %-10s  %-4s  %s\n", "Rank", "Player", "Score", "Wave", "Date")
	fmt.Fprintf(out, "  %-4s  %-16s  %-10s  %-4s  %s\n", "----", "------", "-----", "----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(out, "  %-4d  %-16s  %-10d  %-4d  %s\n", i+1, entry.Player, entry.Score, entry.Wave, dateStr)
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d  Best wave: %d  Games: %d  Players: %d\n",
			stats.HighScore, stats.BestWave, stats.GamesCount, stats.Players)
	}
	return nil
}
