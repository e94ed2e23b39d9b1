package diag

import (
	"sync"
	"sync/atomic"
)

// WarningEvent is the transient payload sent to the session collaborator
// for located warnings.
type WarningEvent struct {
	File string
	Line int
	Text string
}

// Session is the per-compilation collaborator interested in warnings.
// Implementations must be safe for concurrent use and must never block
// the reporting path: Warning is fire-and-forget, RegisterWarning is a
// plain counter bump. A session being slow, full or gone must not stall
// or fail compilation.
type Session interface {
	Warning(WarningEvent)
	RegisterWarning()
}

// ChannelSession forwards warning events over a channel without ever
// blocking: events nobody is ready to receive are dropped and counted.
type ChannelSession struct {
	events     chan<- WarningEvent
	registered atomic.Int64
	dropped    atomic.Int64
}

// NewChannelSession wraps events. A nil channel yields a session that
// only counts.
func NewChannelSession(events chan<- WarningEvent) *ChannelSession {
	return &ChannelSession{events: events}
}

// Warning sends the event if the channel has room right now.
func (s *ChannelSession) Warning(ev WarningEvent) {
	if s.events == nil {
		s.dropped.Add(1)
		return
	}
	select {
	case s.events <- ev:
	default:
		s.dropped.Add(1)
	}
}

// RegisterWarning counts a warning that has no location payload.
func (s *ChannelSession) RegisterWarning() {
	s.registered.Add(1)
}

// Registered reports how many plain warnings were counted.
func (s *ChannelSession) Registered() int64 { return s.registered.Load() }

// Dropped reports how many events found no room in the channel.
func (s *ChannelSession) Dropped() int64 { return s.dropped.Load() }

type multiSession []Session

// Multi fans warnings out to several sessions. Nil entries are skipped.
func Multi(sessions ...Session) Session {
	out := make(multiSession, 0, len(sessions))
	for _, s := range sessions {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multiSession) Warning(ev WarningEvent) {
	for _, s := range m {
		s.Warning(ev)
	}
}

func (m multiSession) RegisterWarning() {
	for _, s := range m {
		s.RegisterWarning()
	}
}

// dedupSession suppresses repeated located warnings before they reach the
// wrapped session. Counter bumps pass through: they carry no payload to
// compare.
type dedupSession struct {
	mu   sync.Mutex
	seen map[WarningEvent]struct{}
	next Session
}

// Dedup wraps next so that identical (file, line, text) events are
// forwarded only once.
func Dedup(next Session) Session {
	return &dedupSession{
		seen: make(map[WarningEvent]struct{}),
		next: next,
	}
}

func (s *dedupSession) Warning(ev WarningEvent) {
	s.mu.Lock()
	if _, ok := s.seen[ev]; ok {
		s.mu.Unlock()
		return
	}
	s.seen[ev] = struct{}{}
	s.mu.Unlock()
	s.next.Warning(ev)
}

func (s *dedupSession) RegisterWarning() {
	s.next.RegisterWarning()
}
