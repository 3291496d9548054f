package engine

import "time"

// End reasons recorded in the session journal.
const (
	EndStopped  = "stopped"
	EndGameOver = "game_over"
	EndFatal    = "fatal"
)

// Journal records session lifecycle. Failures are logged and never affect
// the game.
type Journal interface {
	BeginSession(id string, epoch uint64, startedAt time.Time) error
	EndSession(id string, endedAt time.Time, reason string, ticks uint64, errText string) error
}

// Summary describes a finished session, passed to the game over hook.
type Summary struct {
	SessionID string
	Score     int
	Level     int
	Ticks     uint64
}
