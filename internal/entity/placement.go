package entity

import (
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

// ShipPlacement binds a catalog ship to an anchor. Axis applies to straight ships, Rotation to the L ship.
type ShipPlacement struct {
	ID       ShipID `json:"id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Axis     Axis   `json:"axis,omitempty"`
	Rotation int    `json:"rotation,omitempty"`
}

type PlacedShip struct {
	ID    ShipID
	Cells []Coord
}

// ValidateFleet checks a full layout and resolves the cells of every ship in catalog order.
// Any violation rejects the whole layout.
func ValidateFleet(placements []ShipPlacement) ([]PlacedShip, error) {
	byID := make(map[ShipID]ShipPlacement, len(placements))
	for _, p := range placements {
		if _, ok := LookupShip(p.ID); !ok {
			return nil, fmt.Errorf("%w: unknown ship %q", apperror.ErrInvalidPlacement, p.ID)
		}

		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: ship %s placed twice", apperror.ErrInvalidPlacement, p.ID)
		}

		byID[p.ID] = p
	}

	var occupied, forbidden CellSet
	placed := make([]PlacedShip, 0, len(Fleet))

	for _, def := range Fleet {
		p, ok := byID[def.ID]
		if !ok {
			return nil, fmt.Errorf("%w: missing ship %s", apperror.ErrInvalidPlacement, def.ID)
		}

		cells, err := def.Cells(p)
		if err != nil {
			return nil, err
		}

		for _, c := range cells {
			switch {
			case !c.InBounds():
				return nil, fmt.Errorf("%w: ship %s out of bounds", apperror.ErrInvalidPlacement, def.ID)
			case occupied.Has(c):
				return nil, fmt.Errorf("%w: ship %s overlaps another ship", apperror.ErrInvalidPlacement, def.ID)
			case forbidden.Has(c):
				return nil, fmt.Errorf("%w: ship %s needs a one-cell water gap", apperror.ErrInvalidPlacement, def.ID)
			}
		}

		own := NewCellSet(cells...)
		ring := own.Buffer()
		for _, c := range cells {
			occupied.Add(c)
			forbidden.Add(c)
		}
		for _, c := range ring.Cells() {
			forbidden.Add(c)
		}

		placed = append(placed, PlacedShip{ID: def.ID, Cells: cells})
	}

	return placed, nil
}
