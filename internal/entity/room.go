package entity

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

// Room binds at most two players to one game. All mutations go through the room lock.
type Room struct {
	Code string

	mu     sync.Mutex
	host   Player
	guest  *Player
	game   *Game
	random Random
}

type RoomSnapshot struct {
	Code        string          `json:"roomCode"`
	Players     []Player        `json:"players"`
	Status      GameStatus      `json:"status,omitempty"`
	Ready       map[string]bool `json:"playersReady,omitempty"`
	CurrentTurn string          `json:"currentTurn,omitempty"`
	Winner      string          `json:"winnerId,omitempty"`
}

func NewRoom(code string, host Player, random Random) *Room {
	return &Room{
		Code:   code,
		host:   host,
		random: random,
	}
}

// NewMatchedRoom seats both players at once and starts the session.
func NewMatchedRoom(code string, host, guest Player, random Random) *Room {
	room := NewRoom(code, host, random)
	room.seat(guest)

	return room
}

// Join seats the guest. The host re-joining its own room is a no-op.
func (that *Room) Join(player Player) (RoomSnapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if player.ID == that.host.ID || (that.guest != nil && that.guest.ID == player.ID) {
		return that.snapshot(), nil
	}

	if that.guest != nil {
		return RoomSnapshot{}, fmt.Errorf("%w: %s", apperror.ErrRoomFull, that.Code)
	}

	that.seat(player)

	return that.snapshot(), nil
}

func (that *Room) PlaceFleet(playerID string, placements []ShipPlacement) (bool, RoomSnapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game == nil {
		if playerID != that.host.ID {
			return false, RoomSnapshot{}, apperror.ErrNotInRoom
		}

		return false, RoomSnapshot{}, fmt.Errorf("%w: waiting for an opponent", apperror.ErrGameNotActive)
	}

	started, err := that.game.PlaceFleet(playerID, placements)
	if err != nil {
		return false, RoomSnapshot{}, err
	}

	return started, that.snapshot(), nil
}

func (that *Room) Fire(attackerID string, x, y int) (*ShotResult, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game == nil {
		return nil, apperror.ErrGameNotActive
	}

	return that.game.Fire(attackerID, x, y)
}

// Shots returns the per-player shot counters once the game has started.
func (that *Room) Shots() map[string]int {
	that.mu.Lock()
	defer that.mu.Unlock()

	shots := make(map[string]int, 2)
	if that.game == nil {
		return shots
	}

	for _, id := range that.game.Players() {
		shots[id] = that.game.Shots(id)
	}

	return shots
}

func (that *Room) Has(playerID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.has(playerID)
}

func (that *Room) Snapshot() RoomSnapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

func (that *Room) PlayerIDs() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	ids := []string{that.host.ID}
	if that.guest != nil {
		ids = append(ids, that.guest.ID)
	}

	return ids
}

func (that *Room) seat(guest Player) {
	that.guest = &guest
	that.game = NewGame(that.host.ID, guest.ID, that.random)
}

func (that *Room) has(playerID string) bool {
	return that.host.ID == playerID || (that.guest != nil && that.guest.ID == playerID)
}

func (that *Room) snapshot() RoomSnapshot {
	snap := RoomSnapshot{
		Code:    that.Code,
		Players: []Player{that.host},
	}

	if that.guest != nil {
		snap.Players = append(snap.Players, *that.guest)
	}

	if that.game == nil {
		return snap
	}

	snap.Status = that.game.Status()
	snap.CurrentTurn = that.game.Turn()
	snap.Winner = that.game.Winner()
	snap.Ready = make(map[string]bool, 2)
	for _, id := range that.game.Players() {
		snap.Ready[id] = that.game.Ready(id)
	}

	return snap
}
