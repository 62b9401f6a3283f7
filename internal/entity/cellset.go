package entity

import "math/bits"

// CellSet is a bitboard over the 10x10 grid, bit y*10+x.
type CellSet [2]uint64

func (that *CellSet) Add(c Coord) {
	if !c.InBounds() {
		return
	}

	i := c.index()
	that[i/64] |= 1 << (i % 64)
}

func (that *CellSet) Has(c Coord) bool {
	if !c.InBounds() {
		return false
	}

	i := c.index()
	return that[i/64]&(1<<(i%64)) != 0
}

func (that *CellSet) Len() int {
	return bits.OnesCount64(that[0]) + bits.OnesCount64(that[1])
}

// Buffer returns the in-bounds 8-neighbour ring around the set, excluding the set itself.
func (that *CellSet) Buffer() CellSet {
	var ring CellSet

	for _, c := range that.Cells() {
		for _, n := range c.Neighbors() {
			if !that.Has(n) {
				ring.Add(n)
			}
		}
	}

	return ring
}

// Cells lists the members in row-major order.
func (that *CellSet) Cells() []Coord {
	cells := make([]Coord, 0, that.Len())

	for word := range that {
		w := that[word]
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			cells = append(cells, coordAt(word*64+bit))
			w &= w - 1
		}
	}

	return cells
}

func NewCellSet(cells ...Coord) CellSet {
	var set CellSet
	for _, c := range cells {
		set.Add(c)
	}

	return set
}
