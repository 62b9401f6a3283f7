package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/metrics"
	"github.com/rocketscienceinc/battleship-backend/internal/pkg"
)

type roomRegistry interface {
	Create(host entity.Player) (*entity.Room, error)
	Join(code string, player entity.Player) (*entity.Room, entity.RoomSnapshot, error)
	Attach(host, guest entity.Player) (*entity.Room, error)

	Get(code string) (*entity.Room, error)
	RoomOf(playerID string) (*entity.Room, bool)
	Remove(code string)

	Len() int
}

type matchQueue interface {
	Enqueue(player entity.Player)
	PushFront(players ...entity.Player)
	Remove(playerID string)
	TryMatch() (entity.Player, entity.Player, bool)
	Len() int
}

type matchRecorder interface {
	Save(ctx context.Context, result *entity.MatchResult) error
}

const (
	originCode        = "code"
	originMatchmaking = "matchmaking"
)

// GameManager is the operation set the transport calls into. It owns no state of
// its own; rooms and the queue are injected.
type GameManager struct {
	logger  *slog.Logger
	metrics *metrics.Metrics

	rooms    roomRegistry
	queue    matchQueue
	recorder matchRecorder
}

func NewGameManager(logger *slog.Logger, m *metrics.Metrics, rooms roomRegistry, queue matchQueue, recorder matchRecorder) *GameManager {
	return &GameManager{
		logger:  logger.With("component", "game_manager"),
		metrics: m,

		rooms:    rooms,
		queue:    queue,
		recorder: recorder,
	}
}

func (that *GameManager) CreateRoom(_ context.Context, playerID, name string) (string, error) {
	room, err := that.rooms.Create(entity.NewPlayer(playerID, name))
	if err != nil {
		that.reject("create_room")
		return "", fmt.Errorf("failed to create room: %w", err)
	}

	that.leaveQueue(playerID)
	that.metrics.RoomsCreated.WithLabelValues(originCode).Inc()
	that.metrics.RoomsActive.Set(float64(that.rooms.Len()))
	that.logger.Info("room created", "roomCode", room.Code, "playerID", playerID)

	return room.Code, nil
}

func (that *GameManager) JoinRoom(_ context.Context, code, playerID, name string) (entity.RoomSnapshot, error) {
	_, snapshot, err := that.rooms.Join(code, entity.NewPlayer(playerID, name))
	if err != nil {
		that.reject("join_room")
		return entity.RoomSnapshot{}, fmt.Errorf("failed to join room %s: %w", code, err)
	}

	that.leaveQueue(playerID)
	that.logger.Info("player joined room", "roomCode", code, "playerID", playerID)

	return snapshot, nil
}

func (that *GameManager) EnqueueForMatch(_ context.Context, playerID, name string) error {
	if room, seated := that.rooms.RoomOf(playerID); seated {
		that.reject("queue_match")
		return fmt.Errorf("%w: %s", apperror.ErrAlreadyInRoom, room.Code)
	}

	that.queue.Enqueue(entity.NewPlayer(playerID, name))
	that.metrics.QueueLength.Set(float64(that.queue.Len()))

	return nil
}

func (that *GameManager) CancelQueue(_ context.Context, playerID string) {
	that.leaveQueue(playerID)
}

// TryMatch pairs the two longest-waiting players into a new room. It reports false
// when fewer than two free players are waiting.
func (that *GameManager) TryMatch(_ context.Context) (entity.RoomSnapshot, bool, error) {
	defer func() {
		that.metrics.QueueLength.Set(float64(that.queue.Len()))
	}()

	for {
		host, guest, ok := that.queue.TryMatch()
		if !ok {
			return entity.RoomSnapshot{}, false, nil
		}

		room, err := that.rooms.Attach(host, guest)
		if err == nil {
			that.metrics.RoomsCreated.WithLabelValues(originMatchmaking).Inc()
			that.metrics.RoomsActive.Set(float64(that.rooms.Len()))
			that.logger.Info("match found", "roomCode", room.Code, "host", host.ID, "guest", guest.ID)

			return room.Snapshot(), true, nil
		}

		// a waiter took a seat after queueing; the free ones keep their place at the head
		var free []entity.Player
		for _, player := range []entity.Player{host, guest} {
			if _, seated := that.rooms.RoomOf(player.ID); !seated {
				free = append(free, player)
			}
		}

		that.queue.PushFront(free...)

		if !errors.Is(err, apperror.ErrAlreadyInRoom) || len(free) == 2 {
			return entity.RoomSnapshot{}, false, fmt.Errorf("failed to attach matched players: %w", err)
		}

		that.logger.Warn("skipped seated waiter", "host", host.ID, "guest", guest.ID)
	}
}

func (that *GameManager) leaveQueue(playerID string) {
	that.queue.Remove(playerID)
	that.metrics.QueueLength.Set(float64(that.queue.Len()))
}

func (that *GameManager) SubmitFleet(_ context.Context, code, playerID string, placements []entity.ShipPlacement) (bool, entity.RoomSnapshot, error) {
	log := that.logger.With("method", "SubmitFleet", "roomCode", code, "playerID", playerID)

	room, err := that.rooms.Get(code)
	if err != nil {
		that.reject("place_ships")
		return false, entity.RoomSnapshot{}, fmt.Errorf("failed to get room: %w", err)
	}

	started, snapshot, err := room.PlaceFleet(playerID, placements)
	if err != nil {
		that.reject("place_ships")
		log.Info("fleet rejected", "error", err)

		return false, entity.RoomSnapshot{}, fmt.Errorf("failed to place fleet: %w", err)
	}

	if started {
		log.Info("game started", "currentTurn", snapshot.CurrentTurn)
	}

	return started, snapshot, nil
}

func (that *GameManager) Fire(ctx context.Context, code, playerID string, x, y int) (*entity.ShotResult, error) {
	log := that.logger.With("method", "Fire", "roomCode", code, "playerID", playerID)

	room, err := that.rooms.Get(code)
	if err != nil {
		that.reject("fire")
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	result, err := room.Fire(playerID, x, y)
	if err != nil {
		that.reject("fire")
		return nil, fmt.Errorf("failed to fire: %w", err)
	}

	that.metrics.Shots.WithLabelValues(shotOutcome(result)).Inc()

	if result.GameOver {
		that.metrics.GamesFinished.Inc()
		log.Info("game finished", "winnerID", playerID)
		that.recordResult(ctx, room, playerID)
	}

	return result, nil
}

// LeaveRoom tears the room down when playerID is seated in it and returns the
// last snapshot so the caller can notify whoever is left.
func (that *GameManager) LeaveRoom(_ context.Context, code, playerID string) (entity.RoomSnapshot, bool) {
	room, err := that.rooms.Get(code)
	if err != nil || !room.Has(playerID) {
		return entity.RoomSnapshot{}, false
	}

	snapshot := room.Snapshot()
	that.rooms.Remove(code)
	that.metrics.RoomsActive.Set(float64(that.rooms.Len()))
	that.logger.Info("room removed", "roomCode", code, "leftBy", playerID)

	return snapshot, true
}

// Disconnect drops the player from the queue and from any room it sits in.
func (that *GameManager) Disconnect(ctx context.Context, playerID string) (entity.RoomSnapshot, bool) {
	that.CancelQueue(ctx, playerID)

	room, ok := that.rooms.RoomOf(playerID)
	if !ok {
		return entity.RoomSnapshot{}, false
	}

	return that.LeaveRoom(ctx, room.Code, playerID)
}

func (that *GameManager) recordResult(ctx context.Context, room *entity.Room, winnerID string) {
	if that.recorder == nil {
		return
	}

	log := that.logger.With("method", "recordResult", "roomCode", room.Code)

	shots := room.Shots()
	result := &entity.MatchResult{
		ID:          pkg.GenerateMatchID(),
		RoomCode:    room.Code,
		WinnerID:    winnerID,
		WinnerShots: shots[winnerID],
		PlayedAt:    time.Now().UTC(),
	}

	for _, id := range room.PlayerIDs() {
		if id != winnerID {
			result.LoserID = id
			result.LoserShots = shots[id]
		}
	}

	if err := that.recorder.Save(ctx, result); err != nil {
		log.Error("failed to save match result", "error", err)
		return
	}

	log.Info("match result saved", "matchID", result.ID)
}

func (that *GameManager) reject(action string) {
	that.metrics.Rejections.WithLabelValues(action).Inc()
}

func shotOutcome(result *entity.ShotResult) string {
	switch {
	case result.SunkShipID != nil:
		return "sunk"
	case result.Hit:
		return "hit"
	default:
		return "miss"
	}
}
