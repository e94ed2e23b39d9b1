package journal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"ion/internal/diag"
	"ion/internal/journal"
)

var _ diag.Session = (*journal.Journal)(nil)

func TestJournalRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ion", "warnings.mp")

	j := journal.New(path)
	j.Warning(diag.WarningEvent{File: "lib/a.ion", Line: 3, Text: "unused variable x"})
	j.Warning(diag.WarningEvent{File: "lib/b.ion", Line: 0, Text: "redefining module B"})
	j.RegisterWarning()

	if err := j.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	registered, events, err := journal.Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if registered != 1 {
		t.Errorf("registered = %d, want 1 bare warning", registered)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	want := diag.WarningEvent{File: "lib/a.ion", Line: 3, Text: "unused variable x"}
	if events[0] != want {
		t.Errorf("events[0] = %+v, want %+v", events[0], want)
	}
}

func TestJournalFlushIsRereadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warnings.mp")

	j := journal.New(path)
	j.Warning(diag.WarningEvent{File: "a.ion", Line: 1, Text: "first"})
	if err := j.Flush(); err != nil {
		t.Fatalf("first Flush() error = %v", err)
	}

	j.Warning(diag.WarningEvent{File: "a.ion", Line: 2, Text: "second"})
	if err := j.Flush(); err != nil {
		t.Fatalf("second Flush() error = %v", err)
	}

	registered, events, err := journal.Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if registered != 0 || len(events) != 2 {
		t.Errorf("got registered=%d len(events)=%d, want 0 and 2", registered, len(events))
	}
}

func TestReadMissingFileYieldsEmptyJournal(t *testing.T) {
	registered, events, err := journal.Read(filepath.Join(t.TempDir(), "absent.mp"))
	if err != nil {
		t.Fatalf("Read() error = %v, want nil for missing file", err)
	}
	if registered != 0 || len(events) != 0 {
		t.Errorf("got registered=%d len(events)=%d, want empty journal", registered, len(events))
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warnings.mp")
	if err := os.WriteFile(path, []byte("not a journal"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := journal.Read(path); err == nil {
		t.Fatal("Read() accepted garbage, want error")
	}
}

func TestReadRejectsUnknownSchema(t *testing.T) {
	raw, err := msgpack.Marshal(&struct {
		Schema     uint16
		Registered int64
		Events     []diag.WarningEvent
	}{Schema: 99})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	path := filepath.Join(t.TempDir(), "warnings.mp")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := journal.Read(path); err == nil {
		t.Fatal("Read() accepted schema 99, want error")
	}
}

func TestEventsReturnsACopy(t *testing.T) {
	j := journal.New(filepath.Join(t.TempDir(), "warnings.mp"))
	j.Warning(diag.WarningEvent{File: "a.ion", Line: 1, Text: "original"})

	events := j.Events()
	events[0].Text = "mutated"

	if got := j.Events()[0].Text; got != "original" {
		t.Errorf("journal event text = %q, want %q", got, "original")
	}
}
