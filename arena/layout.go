package arena

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nstehr/vimy/reflex-core/model"
)

// Layout is the immutable starting board of an episode.
type Layout struct {
	Walls    *model.Walls
	Food     []model.Position
	Capsules []model.Position
	Spawns   []model.Position // indexed by agent
}

// DefaultLayout is a small point-symmetric two-team maze.
const DefaultLayout = `
%%%%%%%%%%%%%%%%%%%%
%3.. %...  ..o . ..%
%.%% %.%%  .%%%.%%.%
%.o.  ...  ..  ...2%
%%.%%%.%.  .%.%%%.%%
%1...  ..  ...  .o.%
%.%%.%%%.  %%.% %%.%
%.. . o..  ...% ..4%
%%%%%%%%%%%%%%%%%%%%
`

// ParseLayout reads an ASCII maze, top row first. '%' is a wall, '.' food,
// 'o' a capsule and '1'..'9' the spawn of agent digit-1; anything else is
// open floor. Blank leading and trailing lines are ignored.
func ParseLayout(text string) (*Layout, error) {
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, fmt.Errorf("parse layout: empty")
	}

	width, height := len(lines[0]), len(lines)
	walls := model.NewWalls(width, height)
	layout := &Layout{Walls: walls}
	spawns := make(map[int]model.Position)

	for row, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("parse layout: row %d has width %d, want %d", row, len(line), width)
		}
		y := height - 1 - row
		for x, c := range line {
			p := model.Position{X: x, Y: y}
			switch {
			case c == '%':
				walls.Set(x, y, true)
			case c == '.':
				layout.Food = append(layout.Food, p)
			case c == 'o':
				layout.Capsules = append(layout.Capsules, p)
			case c >= '1' && c <= '9':
				idx := int(c - '1')
				if _, dup := spawns[idx]; dup {
					return nil, fmt.Errorf("parse layout: duplicate spawn %c", c)
				}
				spawns[idx] = p
			}
		}
	}

	if len(spawns) == 0 {
		return nil, fmt.Errorf("parse layout: no spawns")
	}
	layout.Spawns = make([]model.Position, len(spawns))
	for i := range layout.Spawns {
		p, ok := spawns[i]
		if !ok {
			return nil, fmt.Errorf("parse layout: spawn %d missing", i+1)
		}
		layout.Spawns[i] = p
	}

	sortPositions(layout.Food)
	sortPositions(layout.Capsules)
	return layout, nil
}

// sortPositions orders column by column from the bottom-left.
func sortPositions(ps []model.Position) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].X != ps[j].X {
			return ps[i].X < ps[j].X
		}
		return ps[i].Y < ps[j].Y
	})
}
