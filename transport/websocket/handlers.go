package websocket

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

var errMissingCoordinates = errors.New("x and y are required")

// clientErrors are reported to players verbatim, everything else is an internal error.
var clientErrors = []error{
	apperror.ErrNotFound,
	apperror.ErrRoomFull,
	apperror.ErrAlreadyInRoom,
	apperror.ErrNotInRoom,
	apperror.ErrNotYourTurn,
	apperror.ErrGameNotActive,
	apperror.ErrOutOfBounds,
	apperror.ErrAlreadyTargeted,
	errMissingCoordinates,
}

func (that *Server) handleCreateRoom(ctx context.Context, c *client, request *Request) error {
	code, err := that.game.CreateRoom(ctx, c.id, request.PlayerName)
	if err != nil {
		return that.replyError(c, actionCreateRoom, err)
	}

	return c.send(actionCreateRoom, Reply{
		OK:       true,
		PlayerID: c.id,
		RoomCode: code,
		Players:  []entity.Player{entity.NewPlayer(c.id, request.PlayerName)},
	})
}

func (that *Server) handleJoinRoom(ctx context.Context, c *client, request *Request) error {
	code := strings.ToUpper(strings.TrimSpace(request.RoomCode))

	snapshot, err := that.game.JoinRoom(ctx, code, c.id, request.PlayerName)
	if err != nil {
		return that.replyError(c, actionJoinRoom, err)
	}

	if err = c.send(actionJoinRoom, Reply{
		OK:       true,
		PlayerID: c.id,
		RoomCode: snapshot.Code,
		Players:  snapshot.Players,
	}); err != nil {
		return err
	}

	ids := playerIDs(snapshot)
	that.broadcast(ids, eventPlayersUpdate, roomEvent{RoomCode: snapshot.Code, Players: snapshot.Players})

	if len(snapshot.Players) == 2 {
		that.broadcast(ids, eventRoomReady, roomEvent{RoomCode: snapshot.Code, Players: snapshot.Players})
	}

	return nil
}

func (that *Server) handleQueueMatch(ctx context.Context, c *client, request *Request) error {
	if err := that.game.EnqueueForMatch(ctx, c.id, request.PlayerName); err != nil {
		return that.replyError(c, actionQueueMatch, err)
	}

	if err := c.send(actionQueueMatch, Reply{OK: true, PlayerID: c.id}); err != nil {
		return err
	}

	snapshot, matched, err := that.game.TryMatch(ctx)
	if err != nil {
		return fmt.Errorf("failed to match players: %w", err)
	}

	if matched {
		that.broadcast(playerIDs(snapshot), eventMatchFound, roomEvent{RoomCode: snapshot.Code, Players: snapshot.Players})
	}

	return nil
}

func (that *Server) handleCancelQueue(ctx context.Context, c *client, _ *Request) error {
	that.game.CancelQueue(ctx, c.id)

	return c.send(actionCancelQueue, Reply{OK: true})
}

func (that *Server) handlePlaceShips(ctx context.Context, c *client, request *Request) error {
	placements := make([]entity.ShipPlacement, 0, len(request.Ships))
	for _, ship := range request.Ships {
		placement, err := ship.toPlacement()
		if err != nil {
			return that.replyError(c, actionPlaceShips, err)
		}

		placements = append(placements, placement)
	}

	started, snapshot, err := that.game.SubmitFleet(ctx, request.RoomCode, c.id, placements)
	if err != nil {
		return that.replyError(c, actionPlaceShips, err)
	}

	if err = c.send(actionPlaceShips, Reply{OK: true, RoomCode: snapshot.Code}); err != nil {
		return err
	}

	ids := playerIDs(snapshot)
	that.broadcast(ids, eventPlacementUpdate, placementEvent{PlayersReady: snapshot.Ready})

	if started {
		that.broadcast(ids, eventGameStarted, startedEvent{CurrentTurn: snapshot.CurrentTurn})
	}

	return nil
}

func (that *Server) handleFire(ctx context.Context, c *client, request *Request) error {
	if request.X == nil || request.Y == nil {
		return that.replyError(c, actionFire, errMissingCoordinates)
	}

	result, err := that.game.Fire(ctx, request.RoomCode, c.id, *request.X, *request.Y)
	if err != nil {
		return that.replyError(c, actionFire, err)
	}

	if err = c.send(actionFire, Reply{OK: true, RoomCode: request.RoomCode, Shot: result}); err != nil {
		return err
	}

	ids := []string{result.AttackerID, result.DefenderID}

	that.broadcast(ids, eventShotResult, result)

	if result.GameOver && result.WinnerID != nil {
		that.broadcast(ids, eventGameOver, gameOverEvent{WinnerID: *result.WinnerID})
	}

	return nil
}

func (that *Server) handleLeaveRoom(ctx context.Context, c *client, request *Request) error {
	snapshot, removed := that.game.LeaveRoom(ctx, request.RoomCode, c.id)
	if removed {
		that.broadcast(others(snapshot, c.id), eventOpponentLeft, roomEvent{RoomCode: snapshot.Code})
	}

	return c.send(actionLeaveRoom, Reply{OK: true})
}

func (that *Server) handleDisconnect(ctx context.Context, c *client) {
	snapshot, removed := that.game.Disconnect(ctx, c.id)
	if !removed {
		return
	}

	that.logger.Info("player disconnected from room", "playerID", c.id, "roomCode", snapshot.Code)
	that.broadcast(others(snapshot, c.id), eventOpponentLeft, roomEvent{RoomCode: snapshot.Code})
}

func (that *Server) replyError(c *client, action string, err error) error {
	that.logger.Info("request rejected", "action", action, "playerID", c.id, "error", err)

	return c.send(action, Reply{Error: errorMessage(err)})
}

func errorMessage(err error) string {
	if errors.Is(err, apperror.ErrInvalidPlacement) {
		msg := err.Error()
		if i := strings.Index(msg, apperror.ErrInvalidPlacement.Error()); i >= 0 {
			return msg[i:]
		}

		return apperror.ErrInvalidPlacement.Error()
	}

	for _, known := range clientErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return "internal error"
}

func playerIDs(snapshot entity.RoomSnapshot) []string {
	ids := make([]string, 0, len(snapshot.Players))
	for _, player := range snapshot.Players {
		ids = append(ids, player.ID)
	}

	return ids
}

func others(snapshot entity.RoomSnapshot, playerID string) []string {
	ids := make([]string, 0, 1)
	for _, player := range snapshot.Players {
		if player.ID != playerID {
			ids = append(ids, player.ID)
		}
	}

	return ids
}
