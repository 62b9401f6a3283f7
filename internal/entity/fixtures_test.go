package entity_test

import "github.com/rocketscienceinc/battleship-backend/internal/entity"

const (
	hostID  = "host"
	guestID = "guest"
)

// fixedRandom always picks the same index, so the first turn is predictable.
type fixedRandom int

func (that fixedRandom) Intn(n int) int {
	return int(that) % n
}

func replacePlacement(layout []entity.ShipPlacement, p entity.ShipPlacement) []entity.ShipPlacement {
	out := make([]entity.ShipPlacement, 0, len(layout))
	for _, existing := range layout {
		if existing.ID == p.ID {
			existing = p
		}
		out = append(out, existing)
	}

	return out
}
