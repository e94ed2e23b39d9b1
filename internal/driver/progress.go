package driver

import "time"

// Stage describes a replay phase for one recording.
type Stage string

const (
	// StageLoad is the recording load and validation stage.
	StageLoad Stage = "load"
	// StageReplay is the event replay stage.
	StageReplay Stage = "replay"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the recording is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the recording is being replayed.
	StatusWorking Status = "working"
	// StatusDone indicates the recording replayed without a raise.
	StatusDone Status = "done"
	// StatusError indicates the replay raised or the file was unreadable.
	StatusError Status = "error"
)

// Event reports progress for a recording (or for the overall run when
// File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emitEvent(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

func emitQueued(sink ProgressSink, files []string) {
	for _, f := range files {
		emitEvent(sink, f, StageLoad, StatusQueued, nil, 0)
	}
}
