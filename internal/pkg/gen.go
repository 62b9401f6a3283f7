package pkg

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RoomCodeAlphabet leaves out 0/O and 1/I so codes can be read aloud.
const RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const RoomCodeLength = 6

// Source is a goroutine-safe random source shared by rooms and the registry.
type Source interface {
	Intn(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSource returns a Source seeded with seed, or with the current time when seed is 0.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &lockedSource{rnd: rand.New(rand.NewSource(seed))} //nolint: gosec // game randomness, not secrets
}

func (that *lockedSource) Intn(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.Intn(n)
}

// GenerateRoomCode - generates a short human-shareable room code.
func GenerateRoomCode(src Source, length int) string {
	var b strings.Builder
	b.Grow(length)

	for i := 0; i < length; i++ {
		b.WriteByte(RoomCodeAlphabet[src.Intn(len(RoomCodeAlphabet))])
	}

	return b.String()
}

// GeneratePlayerID - generates a stable handle for a new connection.
func GeneratePlayerID() string {
	return uuid.NewString()
}

// GenerateMatchID - generates an id for a recorded match.
func GenerateMatchID() string {
	return uuid.NewString()
}
