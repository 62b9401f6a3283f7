package entity

const BoardSize = 10

type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Coord) InBounds() bool {
	return that.X >= 0 && that.Y >= 0 && that.X < BoardSize && that.Y < BoardSize
}

// Neighbors returns the in-bounds cells at Chebyshev distance 1.
func (that Coord) Neighbors() []Coord {
	neighbors := make([]Coord, 0, 8)

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}

			n := Coord{X: that.X + dx, Y: that.Y + dy}
			if n.InBounds() {
				neighbors = append(neighbors, n)
			}
		}
	}

	return neighbors
}

func (that Coord) index() int {
	return that.Y*BoardSize + that.X
}

func coordAt(index int) Coord {
	return Coord{X: index % BoardSize, Y: index / BoardSize}
}
