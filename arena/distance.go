package arena

import "github.com/nstehr/vimy/reflex-core/model"

// Unreachable is returned for cell pairs with no path between them.
const Unreachable = 1 << 20

// Distances is an all-pairs maze distance table, computed once per layout
// with a breadth-first search from every open cell.
type Distances struct {
	walls *model.Walls
	index []int   // cell -> row in table, -1 for walls
	table [][]int // table[i][j] = steps between open cells i and j
}

// NewDistances precomputes distances for walls.
func NewDistances(walls *model.Walls) *Distances {
	d := &Distances{walls: walls, index: make([]int, walls.Width*walls.Height)}
	open := walls.OpenCells()
	for i := range d.index {
		d.index[i] = -1
	}
	for i, p := range open {
		d.index[p.Y*walls.Width+p.X] = i
	}

	d.table = make([][]int, len(open))
	queue := make([]model.Position, 0, len(open))
	for i, src := range open {
		row := make([]int, len(open))
		for j := range row {
			row[j] = Unreachable
		}
		row[i] = 0
		queue = append(queue[:0], src)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			base := row[d.cell(cur)]
			for _, dir := range model.Directions[:4] {
				next := cur.Add(dir)
				if !walls.Open(next) {
					continue
				}
				if k := d.cell(next); row[k] == Unreachable {
					row[k] = base + 1
					queue = append(queue, next)
				}
			}
		}
		d.table[i] = row
	}
	return d
}

func (d *Distances) cell(p model.Position) int {
	return d.index[p.Y*d.walls.Width+p.X]
}

// Distance returns the maze distance between a and b. Walls and off-board
// cells fall back to Manhattan distance.
func (d *Distances) Distance(a, b model.Position) int {
	if !d.walls.Open(a) || !d.walls.Open(b) {
		return manhattan(a, b)
	}
	return d.table[d.cell(a)][d.cell(b)]
}

func manhattan(a, b model.Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
