// Package journal persists warning events across tool runs as a msgpack
// payload on disk. A Journal collects events through the diag.Session
// interface and writes them out once at the end of a run.
package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"ion/internal/diag"
)

// Current schema version - increment when payload format changes
const journalSchemaVersion uint16 = 1

// payload is the on-disk shape of a journal file.
type payload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Registered counts bare warnings, the ones with no location payload.
	Registered int64

	Events []diag.WarningEvent
}

// Journal накапливает события предупреждений для записи на диск.
// Thread-safe for concurrent access.
type Journal struct {
	mu         sync.Mutex
	path       string
	events     []diag.WarningEvent
	registered int64
}

// New returns a journal that Flush will write to path.
func New(path string) *Journal {
	return &Journal{path: path}
}

// Warning records a located warning event.
func (j *Journal) Warning(e diag.WarningEvent) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, e)
}

// RegisterWarning counts a warning that has no location payload.
func (j *Journal) RegisterWarning() {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.registered++
}

// Registered returns the bare warning count.
func (j *Journal) Registered() int64 {
	if j == nil {
		return 0
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.registered
}

// Events returns a copy of the recorded events.
func (j *Journal) Events() []diag.WarningEvent {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]diag.WarningEvent, len(j.events))
	copy(out, j.events)
	return out
}

// Flush serializes the journal and writes it to its path.
func (j *Journal) Flush() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	p := payload{
		Schema:     journalSchemaVersion,
		Registered: j.registered,
		Events:     j.events,
	}

	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(j.path), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if removeErr := os.Remove(f.Name()); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			fmt.Printf("failed to remove temp file: %v", removeErr)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&p); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), j.path)
}

// Read loads a journal file. A missing file is not an error and yields
// an empty journal.
func Read(path string) (registered int64, events []diag.WarningEvent, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil, nil
		}
		return 0, nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	var p payload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&p); err != nil {
		return 0, nil, fmt.Errorf("%s: failed to decode journal: %w", path, err)
	}
	if p.Schema != journalSchemaVersion {
		return 0, nil, fmt.Errorf("%s: unsupported journal schema %d", path, p.Schema)
	}
	return p.Registered, p.Events, nil
}
