package websocket

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

// Client requests.
const (
	actionConnect     = "connect"
	actionCreateRoom  = "createRoom"
	actionJoinRoom    = "joinRoom"
	actionQueueMatch  = "queueMatch"
	actionCancelQueue = "cancelQueue"
	actionPlaceShips  = "placeShips"
	actionFire        = "fire"
	actionLeaveRoom   = "leaveRoom"
)

// Server broadcasts.
const (
	eventPlayersUpdate   = "room:playersUpdate"
	eventRoomReady       = "room:ready"
	eventOpponentLeft    = "room:opponentLeft"
	eventMatchFound      = "match:found"
	eventPlacementUpdate = "game:placementUpdate"
	eventGameStarted     = "game:started"
	eventShotResult      = "game:shotResult"
	eventGameOver        = "game:over"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Request struct {
	PlayerName string        `json:"playerName,omitempty"`
	RoomCode   string        `json:"roomCode,omitempty"`
	Ships      []ShipRequest `json:"ships,omitempty"`
	X          *int          `json:"x,omitempty"`
	Y          *int          `json:"y,omitempty"`
}

// ShipRequest carries orientation either as "horizontal"/"vertical" or as an L rotation number.
type ShipRequest struct {
	ID          string          `json:"id"`
	X           int             `json:"x"`
	Y           int             `json:"y"`
	Orientation json.RawMessage `json:"orientation,omitempty"`
}

type Reply struct {
	OK       bool               `json:"ok"`
	Error    string             `json:"error,omitempty"`
	PlayerID string             `json:"playerId,omitempty"`
	RoomCode string             `json:"roomCode,omitempty"`
	Players  []entity.Player    `json:"players,omitempty"`
	Shot     *entity.ShotResult `json:"shot,omitempty"`
}

type roomEvent struct {
	RoomCode string          `json:"roomCode,omitempty"`
	Players  []entity.Player `json:"players,omitempty"`
}

type placementEvent struct {
	PlayersReady map[string]bool `json:"playersReady"`
}

type startedEvent struct {
	CurrentTurn string `json:"currentTurn"`
}

type gameOverEvent struct {
	WinnerID string `json:"winnerId"`
}

func (that ShipRequest) toPlacement() (entity.ShipPlacement, error) {
	placement := entity.ShipPlacement{
		ID: entity.ShipID(that.ID),
		X:  that.X,
		Y:  that.Y,
	}

	raw := bytes.TrimSpace(that.Orientation)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return placement, nil
	}

	if raw[0] == '"' {
		var axis string
		if err := json.Unmarshal(raw, &axis); err != nil {
			return placement, fmt.Errorf("%w: bad orientation for %s", apperror.ErrInvalidPlacement, that.ID)
		}
		placement.Axis = entity.Axis(axis)

		return placement, nil
	}

	if err := json.Unmarshal(raw, &placement.Rotation); err != nil {
		return placement, fmt.Errorf("%w: bad orientation for %s", apperror.ErrInvalidPlacement, that.ID)
	}

	return placement, nil
}
