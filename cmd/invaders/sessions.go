package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagSessionsLimit int
	flagSessionsPlain bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [id]",
	Short: "Show recorded sessions",
	Long: `Browse the session journal: when each session started, how it ended
and how many ticks it ran.

Without a terminal, or with --plain, the most recent sessions are printed.
Given a session ID, every recorded field of that session is printed.

Examples:
  invaders sessions
  invaders sessions --plain --limit 20
  invaders sessions 4f1c9a7e-0d52-4b8e-9c1a-2f6b3d7e8a90`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagSessionsLimit, "limit", 10, "Sessions to print in plain mode")
	sessionsCmd.Flags().BoolVar(&flagSessionsPlain, "plain", false, "Print instead of opening the browser")
}

func runSessions(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening session journal: %w", err)
	}
	defer store.Close()

	if len(args) == 1 {
		return printSession(store, args[0])
	}

	fd := int(os.Stdout.Fd())
	if !flagSessionsPlain && term.IsTerminal(fd) {
		width, height, sizeErr := term.GetSize(fd)
		if sizeErr != nil {
			width, height = 80, 24
		}
		return tui.RunJournal(store, width, height)
	}

	sessions, err := store.RecentSessions(flagSessionsLimit)
	if err != nil {
		return fmt.Errorf("error retrieving sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'invaders play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-16s  %-10s  %-10s  %-8s  %-8s  %s\n", "Started", "User", "Ended", "Duration", "Ticks", "Session")
	fmt.Printf("  %-16s  %-10s  %-10s  %-8s  %-8s  %s\n", "-------", "----", "-----", "--------", "-----", "-------")
	for _, s := range sessions {
		user := s.User
		if user == "" {
			user = "local"
		}
		ended, duration := "running", "-"
		if !s.Open() {
			ended = s.EndReason
			duration = s.Duration().Round(time.Second).String()
		}
		fmt.Printf("  %-16s  %-10s  %-10s  %-8s  %-8d  %s\n",
			s.StartedAt.Local().Format("2006-01-02 15:04"), user, ended, duration, s.Ticks, s.ID)
		if s.Error != "" {
			fmt.Printf("      error: %s\n", s.Error)
		}
	}

	counts, err := store.ReasonCounts()
	if err == nil && len(counts) > 0 {
		fmt.Println()
		for reason, n := range counts {
			fmt.Printf("%s: %d\n", reason, n)
		}
	}
	return nil
}

func printSession(store *storage.Store, id string) error {
	s, err := store.SessionByID(id)
	if err != nil {
		return fmt.Errorf("error retrieving session: %w", err)
	}
	if s == nil {
		return fmt.Errorf("no session with ID %q", id)
	}

	user := s.User
	if user == "" {
		user = "local"
	}
	fmt.Printf("Session:   %s\n", s.ID)
	fmt.Printf("User:      %s\n", user)
	fmt.Printf("Epoch:     %d\n", s.Epoch)
	fmt.Printf("Started:   %s\n", s.StartedAt.Local().Format(time.DateTime))
	if s.Open() {
		fmt.Println("Ended:     running")
	} else {
		fmt.Printf("Ended:     %s\n", s.EndedAt.Local().Format(time.DateTime))
		fmt.Printf("Reason:    %s\n", s.EndReason)
		fmt.Printf("Duration:  %s\n", s.Duration().Round(time.Second))
	}
	fmt.Printf("Ticks:     %d\n", s.Ticks)
	if s.Error != "" {
		fmt.Printf("Error:     %s\n", s.Error)
	}
	return nil
}
