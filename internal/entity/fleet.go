package entity

import (
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

type ShipID string

const (
	ShipBattleship ShipID = "battleship"
	ShipCruiser    ShipID = "cruiser"
	ShipSubmarine  ShipID = "submarine"
	ShipDestroyer  ShipID = "destroyer"
	ShipPatrol     ShipID = "patrol"
	ShipDinghy1    ShipID = "dinghy1"
	ShipDinghy2    ShipID = "dinghy2"
	ShipL          ShipID = "lship"
)

type Shape string

const (
	ShapeStraight Shape = "straight"
	ShapeL        Shape = "L"
)

type Axis string

const (
	AxisHorizontal Axis = "horizontal"
	AxisVertical   Axis = "vertical"
)

type Offset struct {
	DX, DY int
}

type ShipDefinition struct {
	ID    ShipID
	Size  int
	Shape Shape
}

// Fleet is the fixed catalog, in validation order.
var Fleet = []ShipDefinition{
	{ID: ShipBattleship, Size: 4, Shape: ShapeStraight},
	{ID: ShipCruiser, Size: 3, Shape: ShapeStraight},
	{ID: ShipSubmarine, Size: 3, Shape: ShapeStraight},
	{ID: ShipDestroyer, Size: 2, Shape: ShapeStraight},
	{ID: ShipPatrol, Size: 2, Shape: ShapeStraight},
	{ID: ShipDinghy1, Size: 1, Shape: ShapeStraight},
	{ID: ShipDinghy2, Size: 1, Shape: ShapeStraight},
	{ID: ShipL, Size: 3, Shape: ShapeL},
}

// LRotations holds the L-tromino offsets; the anchor is the top-left of its 2x2 box.
var LRotations = [4][3]Offset{
	{{0, 0}, {1, 0}, {0, 1}},
	{{0, 0}, {0, 1}, {1, 1}},
	{{0, 1}, {1, 0}, {1, 1}},
	{{0, 0}, {1, 0}, {1, 1}},
}

// FleetCellCount is the number of occupied cells on every accepted board.
var FleetCellCount = func() int {
	total := 0
	for _, def := range Fleet {
		total += def.Size
	}

	return total
}()

func LookupShip(id ShipID) (ShipDefinition, bool) {
	for _, def := range Fleet {
		if def.ID == id {
			return def, true
		}
	}

	return ShipDefinition{}, false
}

// Cells resolves the cells covered by the ship for the given placement.
// The result may contain out-of-bounds coordinates; bounds are the validator's concern.
func (that ShipDefinition) Cells(p ShipPlacement) ([]Coord, error) {
	anchor := Coord{X: p.X, Y: p.Y}

	if that.Shape == ShapeL {
		if p.Rotation < 0 || p.Rotation >= len(LRotations) {
			return nil, fmt.Errorf("%w: ship %s has rotation %d, want 0-3", apperror.ErrInvalidPlacement, that.ID, p.Rotation)
		}

		cells := make([]Coord, 0, len(LRotations[p.Rotation]))
		for _, off := range LRotations[p.Rotation] {
			cells = append(cells, Coord{X: anchor.X + off.DX, Y: anchor.Y + off.DY})
		}

		return cells, nil
	}

	var step Offset
	switch p.Axis {
	case AxisHorizontal:
		step = Offset{DX: 1}
	case AxisVertical:
		step = Offset{DY: 1}
	default:
		return nil, fmt.Errorf("%w: ship %s has unknown orientation %q", apperror.ErrInvalidPlacement, that.ID, p.Axis)
	}

	cells := make([]Coord, 0, that.Size)
	for i := 0; i < that.Size; i++ {
		cells = append(cells, Coord{X: anchor.X + i*step.DX, Y: anchor.Y + i*step.DY})
	}

	return cells, nil
}
