package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

func TestMatchQueue(t *testing.T) {
	t.Run("One waiter is not enough for a match", func(t *testing.T) {
		queue := NewMatchQueue()
		queue.Enqueue(entity.NewPlayer("a", ""))

		_, _, ok := queue.TryMatch()

		assert.False(t, ok)
		assert.Equal(t, 1, queue.Len())
	})

	t.Run("Two longest waiting players are paired in arrival order", func(t *testing.T) {
		// Given: three waiters
		queue := NewMatchQueue()
		queue.Enqueue(entity.NewPlayer("a", ""))
		queue.Enqueue(entity.NewPlayer("b", ""))
		queue.Enqueue(entity.NewPlayer("c", ""))

		// When: matching
		first, second, ok := queue.TryMatch()

		// Then: the first two are paired and the third keeps waiting
		assert.True(t, ok)
		assert.Equal(t, "a", first.ID)
		assert.Equal(t, "b", second.ID)
		assert.Equal(t, 1, queue.Len())
	})

	t.Run("Enqueue is idempotent", func(t *testing.T) {
		queue := NewMatchQueue()
		queue.Enqueue(entity.NewPlayer("a", ""))
		queue.Enqueue(entity.NewPlayer("a", ""))

		_, _, ok := queue.TryMatch()

		assert.False(t, ok)
		assert.Equal(t, 1, queue.Len())
	})

	t.Run("Remove drops a waiter and ignores unknown ids", func(t *testing.T) {
		queue := NewMatchQueue()
		queue.Enqueue(entity.NewPlayer("a", ""))
		queue.Enqueue(entity.NewPlayer("b", ""))
		queue.Enqueue(entity.NewPlayer("c", ""))

		queue.Remove("b")
		queue.Remove("missing")

		first, second, ok := queue.TryMatch()
		assert.True(t, ok)
		assert.Equal(t, "a", first.ID)
		assert.Equal(t, "c", second.ID)
		assert.Equal(t, 0, queue.Len())
	})
	t.Run("PushFront puts players back ahead of later arrivals", func(t *testing.T) {
		queue := NewMatchQueue()
		queue.Enqueue(entity.NewPlayer("c", ""))
		queue.Enqueue(entity.NewPlayer("d", ""))

		// When: a and an already queued c are pushed back
		queue.PushFront(entity.NewPlayer("a", ""), entity.NewPlayer("c", ""))

		// Then: a is first and c is not duplicated
		first, second, ok := queue.TryMatch()
		assert.True(t, ok)
		assert.Equal(t, "a", first.ID)
		assert.Equal(t, "c", second.ID)
		assert.Equal(t, 1, queue.Len())
	})
}

func TestMatchQueue_Concurrency(t *testing.T) {
	queue := NewMatchQueue()

	const players = 100

	// When: players queue, cancel and get matched at the same time
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		pairs [][2]entity.Player
	)
	for i := range players {
		wg.Add(2)
		go func() {
			defer wg.Done()

			id := fmt.Sprintf("p-%d", i)
			queue.Enqueue(entity.NewPlayer(id, ""))
			if i%10 == 0 {
				queue.Remove(id)
			}
		}()
		go func() {
			defer wg.Done()

			if first, second, ok := queue.TryMatch(); ok {
				mu.Lock()
				pairs = append(pairs, [2]entity.Player{first, second})
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Then: nobody is paired twice and every player is either paired, waiting or cancelled
	seen := make(map[string]bool, players)
	for _, pair := range pairs {
		for _, p := range pair {
			require.False(t, seen[p.ID], "%s paired twice", p.ID)
			seen[p.ID] = true
		}
	}

	for first, second, ok := queue.TryMatch(); ok; first, second, ok = queue.TryMatch() {
		for _, p := range []entity.Player{first, second} {
			require.False(t, seen[p.ID], "%s paired twice", p.ID)
			seen[p.ID] = true
		}
	}

	assert.LessOrEqual(t, queue.Len(), 1)
	assert.GreaterOrEqual(t, len(seen)+queue.Len(), players-players/10)
	assert.LessOrEqual(t, len(seen)+queue.Len(), players)
}
