package entity

import "time"

// MatchResult is the summary kept after a game finishes.
type MatchResult struct {
	ID          string    `json:"id"`
	RoomCode    string    `json:"room_code"`
	WinnerID    string    `json:"winner_id"`
	LoserID     string    `json:"loser_id"`
	WinnerShots int       `json:"winner_shots"`
	LoserShots  int       `json:"loser_shots"`
	PlayedAt    time.Time `json:"played_at"`
}
