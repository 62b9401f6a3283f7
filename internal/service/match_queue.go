package service

import (
	"sync"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

type MatchQueue interface {
	Enqueue(player entity.Player)
	PushFront(players ...entity.Player)
	Remove(playerID string)
	TryMatch() (entity.Player, entity.Player, bool)
	Len() int
}

// matchQueue pairs players strictly by arrival order.
type matchQueue struct {
	mu      sync.Mutex
	waiting []entity.Player
}

func NewMatchQueue() MatchQueue {
	return &matchQueue{}
}

func (that *matchQueue) Enqueue(player entity.Player) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.indexOf(player.ID) >= 0 {
		return
	}

	that.waiting = append(that.waiting, player)
}

// PushFront puts players back at the head of the queue in the given order, ahead of
// everyone who arrived after them.
func (that *matchQueue) PushFront(players ...entity.Player) {
	that.mu.Lock()
	defer that.mu.Unlock()

	front := make([]entity.Player, 0, len(players))
	for _, p := range players {
		if that.indexOf(p.ID) >= 0 {
			continue
		}

		front = append(front, p)
	}

	that.waiting = append(front, that.waiting...)
}

func (that *matchQueue) Remove(playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	i := that.indexOf(playerID)
	if i < 0 {
		return
	}

	that.waiting = append(that.waiting[:i], that.waiting[i+1:]...)
}

// TryMatch pops the two longest-waiting players.
func (that *matchQueue) TryMatch() (entity.Player, entity.Player, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.waiting) < 2 {
		return entity.Player{}, entity.Player{}, false
	}

	first, second := that.waiting[0], that.waiting[1]
	that.waiting = append(that.waiting[:0], that.waiting[2:]...)

	return first, second, true
}

func (that *matchQueue) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.waiting)
}

func (that *matchQueue) indexOf(playerID string) int {
	for i, p := range that.waiting {
		if p.ID == playerID {
			return i
		}
	}

	return -1
}
