package arena

import (
	"errors"
	"strings"
	"testing"

	"github.com/nstehr/vimy/reflex-core/model"
)

// scripted plays a fixed action forever and records what it saw.
type scripted struct {
	action     model.Direction
	registered bool
	turns      int
	err        error
}

func (p *scripted) RegisterInitialState(w model.World) error {
	p.registered = true
	return nil
}

func (p *scripted) Choose(w model.World) (model.Direction, error) {
	p.turns++
	return p.action, p.err
}

func TestMatchRunsUntilTimeout(t *testing.T) {
	layout, err := ParseLayout(DefaultLayout)
	if err != nil {
		t.Fatal(err)
	}
	players := make([]Player, 4)
	scripts := make([]*scripted, 4)
	for i := range players {
		scripts[i] = &scripted{action: model.Stop}
		players[i] = scripts[i]
	}

	m, err := NewMatch(layout, 40, players)
	if err != nil {
		t.Fatal(err)
	}
	res, err := m.Run()
	if err != nil {
		t.Fatal(err)
	}
	if res.Moves != 40 || res.Score != 0 || res.Winner != "tie" {
		t.Errorf("Result = %+v, want 40 moves, tie at 0", res)
	}
	for i, s := range scripts {
		if !s.registered {
			t.Errorf("agent %d never registered", i)
		}
		if s.turns != 10 {
			t.Errorf("agent %d took %d turns, want 10", i, s.turns)
		}
	}
}

func TestMatchPlayerCount(t *testing.T) {
	layout, err := ParseLayout(DefaultLayout)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewMatch(layout, 10, []Player{&scripted{}}); err == nil {
		t.Error("NewMatch with one player for four spawns succeeded")
	}
}

func TestMatchRejectsIllegalAction(t *testing.T) {
	layout, err := ParseLayout(DefaultLayout)
	if err != nil {
		t.Fatal(err)
	}
	// The first spawn has a wall to its west.
	m, err := NewMatch(layout, 10, []Player{
		&scripted{action: model.West},
		&scripted{action: model.Stop},
		&scripted{action: model.Stop},
		&scripted{action: model.Stop},
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = m.Run()
	if err == nil || !strings.Contains(err.Error(), "illegal action") {
		t.Errorf("Run() error = %v, want illegal action", err)
	}
}

func TestMatchPlayerError(t *testing.T) {
	layout, err := ParseLayout(DefaultLayout)
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	m, err := NewMatch(layout, 10, []Player{
		&scripted{action: model.Stop},
		&scripted{action: model.Stop, err: boom},
		&scripted{action: model.Stop},
		&scripted{action: model.Stop},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Run(); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want wrapped boom", err)
	}
}
