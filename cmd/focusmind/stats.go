package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/StutiRuparel/FocusMind/internal/log"
	"github.com/StutiRuparel/FocusMind/pkg/session"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show recorded focus sessions",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().StringVar(&statsScores, "scores", "", "print the score series of one session ID")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log.Init(s.LogLevel)

	store, err := session.Open(s.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Warn("closing session store", "error", cerr)
		}
	}()

	out := cmd.OutOrStdout()

	if statsScores != "" {
		scores, err := store.Scores(cmd.Context(), statsScores)
		if err != nil {
			return fmt.Errorf("failed to load scores: %w", err)
		}
		if len(scores) == 0 {
			fmt.Fprintf(out, "No scores for session %s\n", statsScores)
			return nil
		}
		for _, sc := range scores {
			fmt.Fprintf(out, "%s  %6.2f\n", sc.Timestamp.Local().Format("15:04:05"), sc.Score)
		}
		return nil
	}

	var since *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		since = &parsed
	}

	sessions, err := store.ListSessions(cmd.Context(), since)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet.")
		return nil
	}
	if statsLast > 0 && len(sessions) > statsLast {
		sessions = sessions[len(sessions)-statsLast:]
	}

	fmt.Fprintf(out, "%-36s  %-16s  %-8s  %5s  %5s  %5s  %4s\n",
		"ID", "STARTED", "LENGTH", "AVG", "MIN", "MAX", "RECO")
	for _, sess := range sessions {
		fmt.Fprintf(out, "%-36s  %-16s  %-8s  %5.1f  %5.1f  %5.1f  %4d\n",
			sess.ID,
			sess.StartedAt.Local().Format("2006-01-02 15:04"),
			formatDuration(sess.Stats.Duration),
			sess.Stats.AverageFocus,
			sess.Stats.MinFocus,
			sess.Stats.MaxFocus,
			sess.Stats.Recoveries,
		)
	}
	fmt.Fprintf(out, "\n%d session(s)\n", len(sessions))
	return nil
}
