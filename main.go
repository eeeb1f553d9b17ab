package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/nstehr/vimy/reflex-core/agent"
	"github.com/nstehr/vimy/reflex-core/arena"
	"github.com/nstehr/vimy/reflex-core/model"
	"github.com/nstehr/vimy/reflex-core/rules"
)

const banner = `
█▀█ █▀▀ █▀▀ █   █▀▀ ▀▄▀
█▀▄ ██▄ █▀  █▄▄ ██▄ █ █

Reflex Capture Agents`

func main() {
	var redOffense, redDefense, blueOffense, blueDefense, layoutPath, swaps string
	var seed int64
	var moves int
	var debug bool
	flag.StringVar(&redOffense, "red-offense", "skirmisher", "preset name or doctrine YAML for red's forager")
	flag.StringVar(&redDefense, "red-defense", "interceptor", "preset name or doctrine YAML for red's defender")
	flag.StringVar(&blueOffense, "blue-offense", "raider", "preset name or doctrine YAML for blue's forager")
	flag.StringVar(&blueDefense, "blue-defense", "sentry", "preset name or doctrine YAML for blue's defender")
	flag.StringVar(&layoutPath, "layout", "", "maze file (default: built-in layout)")
	flag.Int64Var(&seed, "seed", 1, "tie-break seed")
	flag.IntVar(&moves, "time", arena.DefaultTime, "episode length in moves")
	flag.BoolVar(&debug, "debug", false, "log every decision")
	flag.StringVar(&swaps, "swap", "", "doctrine changes as agent=doctrine@movesLeft, comma separated (e.g. 0=sentry@200)")
	flag.Parse()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	plan, err := parseSwaps(swaps)
	if err != nil {
		slog.Error("bad -swap flag", "error", err)
		os.Exit(2)
	}

	if err := run(layoutPath, []string{redOffense, blueOffense, redDefense, blueDefense}, plan, seed, moves); err != nil {
		slog.Error("match failed", "error", err)
		os.Exit(1)
	}
}

// run plays one match. Agents are indexed red, blue, red, blue; the first
// agent of each team forages and the second defends.
func run(layoutPath string, doctrines []string, plan []swap, seed int64, moves int) error {
	text := arena.DefaultLayout
	if layoutPath != "" {
		b, err := os.ReadFile(layoutPath)
		if err != nil {
			return fmt.Errorf("read layout: %w", err)
		}
		text = string(b)
	}
	layout, err := arena.ParseLayout(text)
	if err != nil {
		return err
	}
	if len(layout.Spawns) != len(doctrines) {
		return fmt.Errorf("layout has %d spawns, want %d", len(layout.Spawns), len(doctrines))
	}

	dist := arena.NewDistances(layout.Walls)
	players := make([]arena.Player, len(doctrines))
	for i, name := range doctrines {
		d, err := rules.ResolveDoctrine(name)
		if err != nil {
			return fmt.Errorf("agent %d: %w", i, err)
		}
		a, err := agent.New(i, d, dist, seed+int64(i))
		if err != nil {
			return err
		}
		players[i] = a
	}
	for _, sw := range plan {
		if sw.agent < 0 || sw.agent >= len(players) {
			return fmt.Errorf("swap: no agent %d", sw.agent)
		}
		players[sw.agent] = withSwap(players[sw.agent], sw)
	}

	match, err := arena.NewMatch(layout, moves, players)
	if err != nil {
		return err
	}
	res, err := match.Run()
	if err != nil {
		return err
	}
	fmt.Printf("%s wins: score %+d after %d moves\n", res.Winner, res.Score, res.Moves)
	return nil
}

// swap changes an agent's doctrine once the episode has at most movesLeft
// moves remaining.
type swap struct {
	agent     int
	doctrine  rules.Doctrine
	movesLeft int
}

// parseSwaps reads a comma-separated list of agent=doctrine@movesLeft.
func parseSwaps(s string) ([]swap, error) {
	var out []swap
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		idx, rest, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("swap %q: want agent=doctrine@movesLeft", item)
		}
		name, at, ok := strings.Cut(rest, "@")
		if !ok {
			return nil, fmt.Errorf("swap %q: want agent=doctrine@movesLeft", item)
		}
		agentIdx, err := strconv.Atoi(idx)
		if err != nil {
			return nil, fmt.Errorf("swap %q: agent: %w", item, err)
		}
		movesLeft, err := strconv.Atoi(at)
		if err != nil {
			return nil, fmt.Errorf("swap %q: moves left: %w", item, err)
		}
		d, err := rules.ResolveDoctrine(name)
		if err != nil {
			return nil, fmt.Errorf("swap %q: %w", item, err)
		}
		out = append(out, swap{agent: agentIdx, doctrine: d, movesLeft: movesLeft})
	}
	return out, nil
}

// swapper is the part of a player that can change doctrine mid-episode.
type swapper interface {
	arena.Player
	Swap(d rules.Doctrine) error
}

// scheduledSwap applies one doctrine change the first turn the episode is
// short enough.
type scheduledSwap struct {
	swapper
	swap swap
	done bool
}

func withSwap(p arena.Player, sw swap) arena.Player {
	s, ok := p.(swapper)
	if !ok {
		return p
	}
	return &scheduledSwap{swapper: s, swap: sw}
}

func (p *scheduledSwap) Choose(w model.World) (model.Direction, error) {
	if !p.done && w.TimeLeft() <= p.swap.movesLeft {
		p.done = true
		if err := p.swapper.Swap(p.swap.doctrine); err != nil {
			return model.Stop, err
		}
		slog.Info("doctrine changed", "agent", p.swap.agent, "doctrine", p.swap.doctrine.Name, "movesLeft", w.TimeLeft())
	}
	return p.swapper.Choose(w)
}
