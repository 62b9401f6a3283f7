package service

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/pkg"
)

type RoomRegistry interface {
	Create(host entity.Player) (*entity.Room, error)
	Join(code string, player entity.Player) (*entity.Room, entity.RoomSnapshot, error)
	Attach(host, guest entity.Player) (*entity.Room, error)

	Get(code string) (*entity.Room, error)
	RoomOf(playerID string) (*entity.Room, bool)
	Remove(code string)

	Len() int
}

type roomRegistry struct {
	mu sync.RWMutex

	rooms       map[string]*entity.Room
	playerRooms map[string]string

	random   pkg.Source
	codeSize int
}

func NewRoomRegistry(random pkg.Source, codeSize int) RoomRegistry {
	if codeSize <= 0 {
		codeSize = pkg.RoomCodeLength
	}

	return &roomRegistry{
		rooms:       make(map[string]*entity.Room),
		playerRooms: make(map[string]string),
		random:      random,
		codeSize:    codeSize,
	}
}

func (that *roomRegistry) Create(host entity.Player) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ensureFree(host.ID); err != nil {
		return nil, err
	}

	room := entity.NewRoom(that.uniqueCode(), host, that.random)
	that.rooms[room.Code] = room
	that.playerRooms[host.ID] = room.Code

	return room, nil
}

func (that *roomRegistry) Join(code string, player entity.Player) (*entity.Room, entity.RoomSnapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[code]
	if !ok {
		return nil, entity.RoomSnapshot{}, fmt.Errorf("%w: room %s", apperror.ErrNotFound, code)
	}

	if current, seated := that.playerRooms[player.ID]; seated && current != code {
		return nil, entity.RoomSnapshot{}, fmt.Errorf("%w: %s", apperror.ErrAlreadyInRoom, current)
	}

	snapshot, err := room.Join(player)
	if err != nil {
		return nil, entity.RoomSnapshot{}, fmt.Errorf("failed to join room: %w", err)
	}

	that.playerRooms[player.ID] = code

	return room, snapshot, nil
}

func (that *roomRegistry) Attach(host, guest entity.Player) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ensureFree(host.ID); err != nil {
		return nil, err
	}

	if err := that.ensureFree(guest.ID); err != nil {
		return nil, err
	}

	room := entity.NewMatchedRoom(that.uniqueCode(), host, guest, that.random)
	that.rooms[room.Code] = room
	that.playerRooms[host.ID] = room.Code
	that.playerRooms[guest.ID] = room.Code

	return room, nil
}

func (that *roomRegistry) Get(code string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[code]
	if !ok {
		return nil, fmt.Errorf("%w: room %s", apperror.ErrNotFound, code)
	}

	return room, nil
}

func (that *roomRegistry) RoomOf(playerID string) (*entity.Room, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	code, ok := that.playerRooms[playerID]
	if !ok {
		return nil, false
	}

	room, ok := that.rooms[code]

	return room, ok
}

func (that *roomRegistry) Remove(code string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[code]
	if !ok {
		return
	}

	for _, id := range room.PlayerIDs() {
		if that.playerRooms[id] == code {
			delete(that.playerRooms, id)
		}
	}

	delete(that.rooms, code)
}

func (that *roomRegistry) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.rooms)
}

func (that *roomRegistry) ensureFree(playerID string) error {
	if code, ok := that.playerRooms[playerID]; ok {
		return fmt.Errorf("%w: %s", apperror.ErrAlreadyInRoom, code)
	}

	return nil
}

// uniqueCode must be called with the write lock held.
func (that *roomRegistry) uniqueCode() string {
	for {
		code := pkg.GenerateRoomCode(that.random, that.codeSize)
		if _, taken := that.rooms[code]; !taken {
			return code
		}
	}
}
