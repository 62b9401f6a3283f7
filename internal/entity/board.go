package entity

type CellState uint8

const (
	CellEmpty CellState = iota
	CellShip
	CellHit
	CellMiss
)

type shipState struct {
	size  int
	hits  int
	cells CellSet
}

func (that *shipState) sunk() bool {
	return that.hits >= that.size
}

// Board is one player's grid. It is populated once from a validated layout and
// afterwards changed only by Receive.
type Board struct {
	cells  [BoardSize][BoardSize]CellState
	owners [BoardSize][BoardSize]ShipID
	ships  map[ShipID]*shipState
}

// ShotOutcome is what a single shot did to a board.
type ShotOutcome struct {
	Hit           bool
	SunkShip      ShipID
	SunkCells     []Coord
	RevealedWater []Coord
	FleetSunk     bool
}

func NewBoard(placed []PlacedShip) *Board {
	board := &Board{ships: make(map[ShipID]*shipState, len(placed))}

	for _, ship := range placed {
		state := &shipState{size: len(ship.Cells), cells: NewCellSet(ship.Cells...)}
		for _, c := range ship.Cells {
			board.cells[c.Y][c.X] = CellShip
			board.owners[c.Y][c.X] = ship.ID
		}
		board.ships[ship.ID] = state
	}

	return board
}

func (that *Board) At(c Coord) CellState {
	return that.cells[c.Y][c.X]
}

// Targeted reports whether the cell was already shot at or revealed.
func (that *Board) Targeted(c Coord) bool {
	state := that.At(c)
	return state == CellHit || state == CellMiss
}

func (that *Board) AllSunk() bool {
	for _, ship := range that.ships {
		if !ship.sunk() {
			return false
		}
	}

	return len(that.ships) > 0
}

// Receive applies a shot at an in-bounds, untargeted cell.
func (that *Board) Receive(c Coord) ShotOutcome {
	if that.At(c) != CellShip {
		that.cells[c.Y][c.X] = CellMiss
		return ShotOutcome{}
	}

	that.cells[c.Y][c.X] = CellHit
	id := that.owners[c.Y][c.X]
	ship := that.ships[id]
	ship.hits++

	outcome := ShotOutcome{Hit: true}
	if !ship.sunk() {
		return outcome
	}

	outcome.SunkShip = id
	outcome.SunkCells = ship.cells.Cells()

	ring := ship.cells.Buffer()
	for _, n := range ring.Cells() {
		if that.At(n) == CellEmpty {
			that.cells[n.Y][n.X] = CellMiss
			outcome.RevealedWater = append(outcome.RevealedWater, n)
		}
	}

	outcome.FleetSunk = that.AllSunk()

	return outcome
}
