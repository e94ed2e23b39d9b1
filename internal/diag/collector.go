package diag

import (
	"fmt"
	"sort"
	"sync"

	"fortio.org/safecast"
)

// Collector is an in-memory Session that accumulates warning events up to
// a fixed cap. Unlike the reporting path it is shared state: several
// compilation units may feed one Collector, so a mutex guards the ledger.
type Collector struct {
	mu         sync.Mutex
	events     []WarningEvent
	max        uint16
	registered int64
	dropped    int64
}

// NewCollector builds a Collector that keeps at most max events.
func NewCollector(max int) *Collector {
	capped, err := safecast.Conv[uint16](max)
	if err != nil {
		panic(fmt.Errorf("collector cap overflow: %w", err))
	}
	return &Collector{
		events: make([]WarningEvent, 0, max),
		max:    capped,
	}
}

// Warning добавляет событие, учитывая лимит. Лишние события не исчезают
// молча: растёт Dropped, чтобы сводка осталась честной.
func (c *Collector) Warning(ev WarningEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.events) >= int(c.max) {
		c.dropped++
		return
	}
	c.events = append(c.events, ev)
}

// RegisterWarning counts a warning that has no location payload.
func (c *Collector) RegisterWarning() {
	c.mu.Lock()
	c.registered++
	c.mu.Unlock()
}

// Len reports how many events are stored.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

// Cap returns the event limit.
func (c *Collector) Cap() uint16 {
	return c.max
}

// Registered reports the plain warning count.
func (c *Collector) Registered() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registered
}

// Dropped reports how many events did not fit under the cap.
func (c *Collector) Dropped() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}

// Events returns a copy of the accumulated events.
func (c *Collector) Events() []WarningEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]WarningEvent, len(c.events))
	copy(out, c.events)
	return out
}

// Sort упорядочивает события по file, line, text — стабильный порядок
// для детерминированного вывода.
func (c *Collector) Sort() {
	c.mu.Lock()
	defer c.mu.Unlock()
	sort.SliceStable(c.events, func(i, j int) bool {
		ei, ej := c.events[i], c.events[j]
		if ei.File != ej.File {
			return ei.File < ej.File
		}
		if ei.Line != ej.Line {
			return ei.Line < ej.Line
		}
		return ei.Text < ej.Text
	})
}
