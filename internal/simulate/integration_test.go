package simulate_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/iwvelando/compound-growth/internal/cache"
	"github.com/iwvelando/compound-growth/internal/config"
	"github.com/iwvelando/compound-growth/internal/simulate"
	"github.com/iwvelando/compound-growth/pkg/testutil"
	"go.uber.org/zap"
)

// TestExampleConfiguration runs the shipped example end to end.
func TestExampleConfiguration(t *testing.T) {
	conf, err := config.LoadConfiguration(filepath.Join("..", "..", "config.yaml.example"))
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}

	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected the example to validate cleanly, got %v", warnings)
	}

	repo, err := cache.New(conf.Cache, zap.NewNop())
	if err != nil {
		t.Fatalf("cache.New failed: %v", err)
	}
	runner := simulate.NewRunner(zap.NewNop(), repo, conf.Cache.KeyPrefix)

	results, err := runner.Run(context.Background(), *conf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	lump := testutil.FindResult(results, "Lump sum at 7%")
	if lump == nil {
		t.Fatal("missing lump sum result")
	}
	compound, _ := testutil.FinalValue(lump, "compound")
	expected := 10000 * math.Pow(1+0.07/12, 12*30)
	if !testutil.CentsEqual(compound, expected) {
		t.Errorf("expected compound %.2f, got %.2f", expected, compound)
	}
	simple, _ := testutil.FinalValue(lump, "simple")
	if !testutil.CentsEqual(simple, 31000) {
		t.Errorf("expected simple 31000.00, got %.2f", simple)
	}

	saver := testutil.FindResult(results, "Monthly saver")
	if saver == nil {
		t.Fatal("missing saver result")
	}
	contributions, _ := testutil.FinalValue(saver, "contributions")
	if !testutil.CentsEqual(contributions, 1000+25*(12*200+1000)) {
		t.Errorf("unexpected contributions %.2f", contributions)
	}

	timing := testutil.FindResult(results, "Start at 25 vs 35")
	if timing == nil {
		t.Fatal("missing timing result")
	}
	early, _ := testutil.FinalValue(timing, "early")
	late, _ := testutil.FinalValue(timing, "late")
	if early <= late {
		t.Errorf("expected the early saver to finish ahead, got early %.2f late %.2f", early, late)
	}
	if timing.Summary().FinalYear != 40 {
		t.Errorf("expected 40 sampled years, got %d", timing.Summary().FinalYear)
	}
}
