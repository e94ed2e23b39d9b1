// Package driver loads recorded diagnostic events and replays them
// through the reporting pipeline, one recording per original compile
// unit. Directory replays fan files out over a bounded worker pool.
package driver

import (
	"encoding/json"
	"fmt"
	"os"

	"ion/internal/diag"
	"ion/internal/source"
)

// Current schema version - increment when the recording format changes
const recordSchemaVersion = 1

// Record kinds accepted in recordings.
const (
	RecordParseError   = "parse_error"
	RecordCompileError = "compile_error"
	RecordWarning      = "warning"
)

// Record описывает одно записанное событие диагностики.
type Record struct {
	Kind string `json:"kind"`
	Line int    `json:"line,omitempty"`
	// File overrides the recording source for this record.
	File string `json:"file,omitempty"`

	// Node metadata captured at the emission site. A non-empty MetaFile
	// relocates the event to MetaFile:MetaKeep regardless of Line.
	MetaFile string `json:"meta_file,omitempty"`
	MetaKeep int    `json:"meta_keep,omitempty"`

	// parse_error payload: the message fragments around the offending
	// token. A present suffix means the pair brackets the token.
	Prefix string `json:"prefix,omitempty"`
	Suffix string `json:"suffix,omitempty"`
	Token  string `json:"token,omitempty"`

	// compile_error and warning payload.
	Text string `json:"text,omitempty"`
}

// Recording is the on-disk shape of one recorded compile unit.
type Recording struct {
	Schema int `json:"schema"`
	// Source is the compile unit the events came from; records without
	// their own file attribute to it.
	Source  string   `json:"source,omitempty"`
	Records []Record `json:"records"`
}

// LoadRecording parses and validates a recording file.
func LoadRecording(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rec Recording
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%s: failed to parse recording: %w", path, err)
	}
	if rec.Schema != recordSchemaVersion {
		return nil, fmt.Errorf("%s: unsupported recording schema %d", path, rec.Schema)
	}
	for i := range rec.Records {
		if err := rec.Records[i].validate(); err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", path, i, err)
		}
	}
	return &rec, nil
}

func (r *Record) validate() error {
	switch r.Kind {
	case RecordParseError:
	case RecordCompileError, RecordWarning:
		if r.Text == "" {
			return fmt.Errorf("%s record needs text", r.Kind)
		}
	default:
		return fmt.Errorf("unknown record kind %q", r.Kind)
	}
	return nil
}

// Meta reconstructs the node metadata attached to the event.
func (r *Record) Meta() source.Meta {
	return source.Meta{Line: r.Line, File: r.MetaFile, Keep: r.MetaKeep}
}

// ErrorPair reconstructs the parse error fragments. A present suffix
// marks the bracketing pair form.
func (r *Record) ErrorPair() diag.ErrorPrefix {
	if r.Suffix != "" {
		return diag.WrappedPrefix(r.Prefix, r.Suffix)
	}
	return diag.PlainPrefix(r.Prefix)
}

// resolveFile picks the file a record attributes to: its own file when
// present, the recording source otherwise.
func (r *Record) resolveFile(recordingSource string) string {
	if r.File != "" {
		return r.File
	}
	return recordingSource
}
