package entity

import (
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

type GameStatus string

const (
	StatusAwaitingFleets GameStatus = "awaiting_fleets"
	StatusActive         GameStatus = "active"
	StatusFinished       GameStatus = "finished"
)

// Random picks the first turn; it is injected so tests stay deterministic.
type Random interface {
	Intn(n int) int
}

type ShotResult struct {
	AttackerID        string  `json:"attackerId"`
	DefenderID        string  `json:"defenderId"`
	X                 int     `json:"x"`
	Y                 int     `json:"y"`
	Hit               bool    `json:"hit"`
	Miss              bool    `json:"miss"`
	SunkShipID        *ShipID `json:"sunkShipId"`
	SunkShipCells     []Coord `json:"sunkShipCells"`
	AutoRevealedWater []Coord `json:"autoRevealedWater"`
	GameOver          bool    `json:"gameOver"`
	WinnerID          *string `json:"winnerId"`
	CurrentTurn       string  `json:"currentTurn"`
}

// Game is one battleship session between exactly two players. It is not safe for
// concurrent use; Room serializes access.
type Game struct {
	players [2]string
	boards  [2]*Board
	shots   [2]int
	status  GameStatus
	turn    int
	winner  string
	random  Random
}

func NewGame(playerA, playerB string, random Random) *Game {
	return &Game{
		players: [2]string{playerA, playerB},
		status:  StatusAwaitingFleets,
		random:  random,
	}
}

func (that *Game) Status() GameStatus {
	return that.status
}

func (that *Game) Players() [2]string {
	return that.players
}

// Turn returns the player allowed to fire next, empty before the game starts.
func (that *Game) Turn() string {
	if that.status == StatusAwaitingFleets {
		return ""
	}

	return that.players[that.turn]
}

func (that *Game) Winner() string {
	return that.winner
}

func (that *Game) Ready(playerID string) bool {
	slot, ok := that.slot(playerID)
	return ok && that.boards[slot] != nil
}

func (that *Game) Shots(playerID string) int {
	slot, ok := that.slot(playerID)
	if !ok {
		return 0
	}

	return that.shots[slot]
}

// PlaceFleet validates and stores a player's layout. It reports whether this
// submission started the game.
func (that *Game) PlaceFleet(playerID string, placements []ShipPlacement) (bool, error) {
	slot, ok := that.slot(playerID)
	if !ok {
		return false, apperror.ErrNotInRoom
	}

	if that.status != StatusAwaitingFleets {
		return false, fmt.Errorf("%w: fleets are locked once the game has started", apperror.ErrGameNotActive)
	}

	placed, err := ValidateFleet(placements)
	if err != nil {
		return false, err
	}

	that.boards[slot] = NewBoard(placed)

	if that.boards[0] != nil && that.boards[1] != nil {
		that.status = StatusActive
		that.turn = that.random.Intn(len(that.players))

		return true, nil
	}

	return false, nil
}

// Fire resolves attackerID's shot at (x, y) on the opponent's board.
func (that *Game) Fire(attackerID string, x, y int) (*ShotResult, error) {
	if that.status != StatusActive || that.winner != "" {
		return nil, apperror.ErrGameNotActive
	}

	slot, ok := that.slot(attackerID)
	if !ok {
		return nil, apperror.ErrNotInRoom
	}

	if slot != that.turn {
		return nil, apperror.ErrNotYourTurn
	}

	target := Coord{X: x, Y: y}
	if !target.InBounds() {
		return nil, fmt.Errorf("%w: (%d,%d)", apperror.ErrOutOfBounds, x, y)
	}

	defender := 1 - slot
	board := that.boards[defender]
	if board.Targeted(target) {
		return nil, fmt.Errorf("%w: (%d,%d)", apperror.ErrAlreadyTargeted, x, y)
	}

	outcome := board.Receive(target)
	that.shots[slot]++

	result := &ShotResult{
		AttackerID:        attackerID,
		DefenderID:        that.players[defender],
		X:                 x,
		Y:                 y,
		Hit:               outcome.Hit,
		Miss:              !outcome.Hit,
		SunkShipCells:     []Coord{},
		AutoRevealedWater: []Coord{},
	}

	if outcome.SunkShip != "" {
		sunk := outcome.SunkShip
		result.SunkShipID = &sunk
		result.SunkShipCells = append(result.SunkShipCells, outcome.SunkCells...)
		result.AutoRevealedWater = append(result.AutoRevealedWater, outcome.RevealedWater...)
	}

	if outcome.FleetSunk {
		that.status = StatusFinished
		that.winner = attackerID
		winner := attackerID
		result.GameOver = true
		result.WinnerID = &winner
	}

	// only a miss hands the turn over
	if result.Miss {
		that.turn = defender
	}

	result.CurrentTurn = that.players[that.turn]

	return result, nil
}

func (that *Game) slot(playerID string) (int, bool) {
	for i, id := range that.players {
		if id == playerID {
			return i, true
		}
	}

	return 0, false
}
