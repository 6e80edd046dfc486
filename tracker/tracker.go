// Package tracker accumulates effective session time for the current day.
package tracker

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/market"
)

type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// SessionSink receives a record for every completed start→end run.
type SessionSink interface {
	AppendSession(journal.SessionRecord) error
}

// Tracker is the session timer. Only Pause and End persist the counter;
// Display never writes.
type Tracker struct {
	now     func() time.Time
	markers *MarkerStore
	sink    SessionSink

	state     State
	startedAt time.Time
	day       string
	elapsed   int64
}

// New seeds the counter from today's marker.
func New(markers *MarkerStore, sink SessionSink, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	t := &Tracker{now: now, markers: markers, sink: sink}
	t.day = market.DayOf(now())
	t.elapsed = markers.Load(t.day)
	return t
}

func (t *Tracker) State() State   { return t.state }
func (t *Tracker) Running() bool  { return t.state == Running }
func (t *Tracker) Day() string    { return t.day }
func (t *Tracker) Elapsed() int64 { return t.elapsed }

// StartedAt is zero while idle.
func (t *Tracker) StartedAt() time.Time { return t.startedAt }

// Start begins a run. It is a no-op while running.
func (t *Tracker) Start() {
	if t.state == Running {
		return
	}
	t.state = Running
	t.startedAt = t.now()
}

// Pause folds the current run into the counter and persists it. It is a
// no-op while idle.
func (t *Tracker) Pause() error {
	if t.state != Running {
		return nil
	}
	_, err := t.stop(t.now())
	return err
}

// End stops the timer and persists the counter whether or not it was
// running. A session record is appended only if a run was in progress.
func (t *Tracker) End(notes string) (*journal.SessionRecord, error) {
	now := t.now()
	if t.state != Running {
		t.rollover(now)
		return nil, t.persist()
	}

	start := t.startedAt
	if _, err := t.stop(now); err != nil {
		return nil, err
	}

	rec := journal.NewSession(start, now, notes)
	if t.sink != nil {
		if err := t.sink.AppendSession(rec); err != nil {
			return nil, fmt.Errorf("append session: %w", err)
		}
	}
	return &rec, nil
}

// Display returns the seconds to show right now: the stored counter plus
// the open run, if any.
func (t *Tracker) Display() int64 {
	now := t.now()
	t.rollover(now)
	total := t.elapsed
	if t.state == Running {
		total += runSeconds(t.startedAt, now)
	}
	return total
}

func (t *Tracker) stop(now time.Time) (int64, error) {
	delta := runSeconds(t.startedAt, now)
	t.state = Idle
	t.startedAt = time.Time{}

	t.rollover(now)
	t.elapsed += delta
	return delta, t.persist()
}

// rollover switches to the marker of a new calendar day. A run that spans
// midnight is credited to the day it stops on.
func (t *Tracker) rollover(now time.Time) {
	day := market.DayOf(now)
	if day == t.day {
		return
	}
	t.day = day
	t.elapsed = t.markers.Load(day)
}

func (t *Tracker) persist() error {
	if err := t.markers.Save(t.day, t.elapsed); err != nil {
		return fmt.Errorf("persist elapsed: %w", err)
	}
	return nil
}

func runSeconds(start, now time.Time) int64 {
	secs := int64(now.Sub(start) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// FormatHMS renders seconds as HH:MM:SS.
func FormatHMS(total int64) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
