package export_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"cardscan/internal/cards"
	"cardscan/internal/export"
	"cardscan/internal/services"
	"cardscan/internal/testsupport"
)

func TestRenderProducesOneLinePerRecordPlusHeader(t *testing.T) {
	records := []*cards.Card{
		{Name: "Lightning Bolt", Language: "English", CollectorNumber: "133", SetCode: "lea", YearOfPrint: 1993, Foil: true, Condition: "NM"},
		{Name: "Duplicant", Language: "German", CollectorNumber: "72", SetCode: "mrd", YearOfPrint: 2003, Signed: true, Condition: "GD"},
	}

	data := export.Render(records)
	if strings.Count(data, "\n") != len(records)+1 {
		t.Fatalf("line count = %d, want %d", strings.Count(data, "\n"), len(records)+1)
	}

	lines := strings.Split(strings.TrimSuffix(data, "\n"), "\n")
	if lines[0] != export.Header {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "Lightning Bolt,English,133,lea,1993,true,false,NM" {
		t.Fatalf("row = %q", lines[1])
	}
	if lines[2] != "Duplicant,German,72,mrd,2003,false,true,GD" {
		t.Fatalf("row = %q", lines[2])
	}
}

func TestRenderReplacesCommasToKeepColumnCount(t *testing.T) {
	records := []*cards.Card{
		{Name: "Borrowing 100,000 Arrows", Condition: "NM"},
	}

	data := export.Render(records)
	lines := strings.Split(strings.TrimSuffix(data, "\n"), "\n")
	row := lines[1]
	if strings.Count(row, ",") != 7 {
		t.Fatalf("row has %d commas, want 7: %q", strings.Count(row, ","), row)
	}
	if !strings.HasPrefix(row, "Borrowing 100 000 Arrows,") {
		t.Fatalf("comma not replaced: %q", row)
	}
}

func TestRenderEmptyHistoryIsHeaderOnly(t *testing.T) {
	data := export.Render(nil)
	if data != export.Header+"\n" {
		t.Fatalf("empty render = %q", data)
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedCard(t, store, cards.Card{Name: "Duplicant", Language: "English", Condition: "NM"})

	exporter := export.New(store, nil)
	path := filepath.Join(cfg.Paths.ExportDir, "cards_export.csv")
	count, err := exporter.WriteFile(context.Background(), path)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(data), export.Header+"\n") {
		t.Fatalf("export missing header: %q", string(data))
	}
	if strings.Count(string(data), "\n") != 2 {
		t.Fatalf("export line count = %d, want 2", strings.Count(string(data), "\n"))
	}
}

func TestWriteFileFailsFastWhenLockHeld(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	path := filepath.Join(cfg.Paths.ExportDir, "cards_export.csv")
	holder := flock.New(path + ".lock")
	if locked, err := holder.TryLock(); err != nil || !locked {
		t.Fatalf("could not pre-acquire lock: locked=%v err=%v", locked, err)
	}
	defer holder.Unlock()

	exporter := export.New(store, nil)
	done := make(chan error, 1)
	go func() {
		_, err := exporter.WriteFile(context.Background(), path)
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, services.ErrExportWrite) {
			t.Fatalf("err = %v, want ErrExportWrite", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WriteFile blocked on a held lock instead of failing")
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("no export file should exist, stat err = %v", err)
	}
}

func TestWriteFileCreatesMissingDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	exporter := export.New(store, nil)
	path := filepath.Join(cfg.Paths.ExportDir, "nested", "out.csv")
	if _, err := exporter.WriteFile(context.Background(), path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("export file missing: %v", err)
	}
}
