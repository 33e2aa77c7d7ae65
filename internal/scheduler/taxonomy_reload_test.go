package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/taxonomy"
)

const cookingYAML = `tags:
  - label: Cooking
    keywords: [recipe]
`

const travelYAML = `tags:
  - label: Travel
    keywords: [flight]
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	// write then rename so readers never see a half-written file
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("failed to rename %s: %v", tmp, err)
	}
}

func firstTag(reg *taxonomy.Registry) string {
	return reg.Current().Tags[0].Label
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestTaxonomyReloader_StartLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	writeFile(t, path, cookingYAML)

	reg := taxonomy.NewRegistry(nil)
	tr := NewTaxonomyReloader(path, reg, logger.Nop(), time.Hour, false, make(chan struct{}, 1))
	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer tr.Stop()

	if got := firstTag(reg); got != "Cooking" {
		t.Errorf("first tag = %q, want Cooking", got)
	}
	if reg.LastReload().IsZero() {
		t.Error("LastReload() is zero after a successful load")
	}
	// categories fall back to the built-in rules
	if got, want := len(reg.Current().Categories), len(domain.DefaultTaxonomy().Categories); got != want {
		t.Errorf("categories = %d, want %d", got, want)
	}
}

func TestTaxonomyReloader_StartFailsOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	writeFile(t, path, "tags: [")

	reg := taxonomy.NewRegistry(nil)
	tr := NewTaxonomyReloader(path, reg, logger.Nop(), time.Hour, false, nil)
	if err := tr.Start(context.Background()); err == nil {
		t.Fatal("Start() should fail on an unparsable file")
	}
	tr.Stop() // must not block

	if got, want := firstTag(reg), domain.DefaultTaxonomy().Tags[0].Label; got != want {
		t.Errorf("first tag = %q, want built-in %q", got, want)
	}
}

func TestTaxonomyReloader_ManualTriggerKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	writeFile(t, path, cookingYAML)

	reg := taxonomy.NewRegistry(nil)
	trigger := make(chan struct{}, 1)
	tr := NewTaxonomyReloader(path, reg, logger.Nop(), time.Hour, false, trigger)
	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer tr.Stop()

	// invalid: category label outside the enumeration
	writeFile(t, path, cookingYAML+"categories:\n  - label: Cooking\n    keywords: [x]\n")
	before := reg.LastReload()
	trigger <- struct{}{}
	waitFor(t, "trigger consumed", func() bool { return len(trigger) == 0 })
	time.Sleep(50 * time.Millisecond)

	if got := firstTag(reg); got != "Cooking" {
		t.Errorf("first tag = %q, want previous Cooking", got)
	}
	if !reg.LastReload().Equal(before) {
		t.Error("registry was swapped by a failed reload")
	}

	writeFile(t, path, travelYAML)
	trigger <- struct{}{}
	waitFor(t, "manual reload", func() bool { return firstTag(reg) == "Travel" })
}

func TestTaxonomyReloader_WatchesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	writeFile(t, path, cookingYAML)

	reg := taxonomy.NewRegistry(nil)
	tr := NewTaxonomyReloader(path, reg, logger.Nop(), time.Hour, true, nil)
	tr.debounce = 10 * time.Millisecond
	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer tr.Stop()

	writeFile(t, path, travelYAML)
	waitFor(t, "file change reload", func() bool { return firstTag(reg) == "Travel" })
}

func TestTaxonomyReloader_StopsWithContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	writeFile(t, path, cookingYAML)

	ctx, cancel := context.WithCancel(context.Background())
	tr := NewTaxonomyReloader(path, taxonomy.NewRegistry(nil), logger.Nop(), time.Hour, true, nil)
	if err := tr.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	cancel()

	select {
	case <-tr.done:
	case <-time.After(2 * time.Second):
		t.Fatal("reloader did not stop after context cancellation")
	}
	tr.Stop()
}
