package suite

import "github.com/rocketscienceinc/battleship-backend/internal/entity"

// CornerFleet is a legal layout with the battleship along the top edge.
func CornerFleet() []entity.ShipPlacement {
	return []entity.ShipPlacement{
		{ID: entity.ShipBattleship, X: 0, Y: 0, Axis: entity.AxisHorizontal},
		{ID: entity.ShipCruiser, X: 6, Y: 0, Axis: entity.AxisHorizontal},
		{ID: entity.ShipSubmarine, X: 0, Y: 2, Axis: entity.AxisVertical},
		{ID: entity.ShipDestroyer, X: 2, Y: 2, Axis: entity.AxisHorizontal},
		{ID: entity.ShipPatrol, X: 5, Y: 2, Axis: entity.AxisVertical},
		{ID: entity.ShipDinghy1, X: 7, Y: 2, Axis: entity.AxisHorizontal},
		{ID: entity.ShipDinghy2, X: 9, Y: 2, Axis: entity.AxisHorizontal},
		{ID: entity.ShipL, X: 2, Y: 6, Rotation: 0},
	}
}

// OpenWaterFleet leaves the battleship at (2,2)-(5,2) with water all around it.
func OpenWaterFleet() []entity.ShipPlacement {
	return []entity.ShipPlacement{
		{ID: entity.ShipBattleship, X: 2, Y: 2, Axis: entity.AxisHorizontal},
		{ID: entity.ShipCruiser, X: 0, Y: 5, Axis: entity.AxisHorizontal},
		{ID: entity.ShipSubmarine, X: 4, Y: 5, Axis: entity.AxisHorizontal},
		{ID: entity.ShipDestroyer, X: 8, Y: 0, Axis: entity.AxisVertical},
		{ID: entity.ShipPatrol, X: 8, Y: 4, Axis: entity.AxisVertical},
		{ID: entity.ShipDinghy1, X: 0, Y: 8, Axis: entity.AxisHorizontal},
		{ID: entity.ShipDinghy2, X: 2, Y: 8, Axis: entity.AxisHorizontal},
		{ID: entity.ShipL, X: 5, Y: 8, Rotation: 0},
	}
}

// FleetCells lists every ship cell of a layout; firing at all of them sinks the fleet
// without a single miss.
func FleetCells(layout []entity.ShipPlacement) []entity.Coord {
	var cells []entity.Coord
	for _, p := range layout {
		def, ok := entity.LookupShip(p.ID)
		if !ok {
			continue
		}

		resolved, err := def.Cells(p)
		if err != nil {
			continue
		}

		cells = append(cells, resolved...)
	}

	return cells
}
