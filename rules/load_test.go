package rules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDoctrine(t *testing.T) {
	data := []byte(`
name: Coward
role: offense
forage: true
danger_radius: 8
danger_on: 1
danger_off: -1
corridor_radius: 6
lookahead_depth: 5
weights:
  successorScore: 100
  distanceToFood: -3
  safety: -2000
overrides:
  goinghomedistance: "Carrying > 0 ? -50.0 : 0.0"
`)
	d, err := ParseDoctrine(data)
	if err != nil {
		t.Fatalf("ParseDoctrine error = %v", err)
	}

	want := map[Feature]float64{SuccessorScore: 100, DistanceToFood: -3, Trapped: -2000}
	if diff := cmp.Diff(want, d.Weights); diff != "" {
		t.Errorf("weights mismatch (-want +got):\n%s", diff)
	}
	if d.Name != "Coward" || d.Role != Offense || !d.Forage {
		t.Errorf("header fields = %q %q %v", d.Name, d.Role, d.Forage)
	}
	if d.DangerRadius != 8 || d.LookaheadDepth != 5 || d.CorridorRadius != 6 {
		t.Errorf("thresholds = %d %d %d", d.DangerRadius, d.LookaheadDepth, d.CorridorRadius)
	}
	if d.Overrides[HomeDistance] == "" {
		t.Error("override for goinghomedistance not loaded")
	}
	if _, err := CompileDoctrine(d); err != nil {
		t.Errorf("CompileDoctrine(parsed) error = %v", err)
	}
}

func TestParseDoctrineRejectsTypo(t *testing.T) {
	data := []byte(`
name: Typo
weights:
  distanceToFod: -4
`)
	_, err := ParseDoctrine(data)
	if err == nil {
		t.Fatal("ParseDoctrine accepted an unknown feature name")
	}
	if !errors.Is(err, ErrUnknownFeature) {
		t.Logf("error does not wrap ErrUnknownFeature (yaml flattens it): %v", err)
	}
}

func TestParseDoctrineLayersOverBase(t *testing.T) {
	data := []byte(`
base: skirmisher
name: Hasty Skirmisher
time_pressure_ticks: 200
weights:
  stop: -900
`)
	d, err := ParseDoctrine(data)
	if err != nil {
		t.Fatalf("ParseDoctrine error = %v", err)
	}
	if d.Name != "Hasty Skirmisher" {
		t.Errorf("Name = %q", d.Name)
	}
	if d.TimePressureTicks != 200 {
		t.Errorf("TimePressureTicks = %d, want 200", d.TimePressureTicks)
	}
	if d.Weights[StopAction] != -900 {
		t.Errorf("stop weight = %f, want -900", d.Weights[StopAction])
	}
	// Untouched preset values survive the overlay.
	if d.Weights[Trapped] != -1000 || d.CorridorRadius != 6 {
		t.Errorf("preset values lost: safety=%f corridor=%d", d.Weights[Trapped], d.CorridorRadius)
	}
}

func TestParseDoctrineUnknownBase(t *testing.T) {
	if _, err := ParseDoctrine([]byte("base: goalie\n")); err == nil {
		t.Fatal("ParseDoctrine accepted unknown base")
	}
}

func TestLoadDoctrine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentry.yaml")
	if err := os.WriteFile(path, []byte("base: sentry\nname: Wall\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := LoadDoctrine(path)
	if err != nil {
		t.Fatalf("LoadDoctrine error = %v", err)
	}
	if d.Name != "Wall" || d.Role != Defense {
		t.Errorf("loaded %q role %q", d.Name, d.Role)
	}

	if _, err := LoadDoctrine(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadDoctrine(missing) succeeded")
	}
}

func TestResolveDoctrine(t *testing.T) {
	d, err := ResolveDoctrine("Interceptor")
	if err != nil {
		t.Fatalf("ResolveDoctrine(Interceptor) error = %v", err)
	}
	if !d.Guard {
		t.Error("resolved Interceptor without guard")
	}
}
