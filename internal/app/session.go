package app

import (
	"github.com/rustyeddy/tradelog/journal"
)

// StartSession starts the effective-time timer.
func (a *App) StartSession() {
	if a.tracker.Running() {
		return
	}
	a.tracker.Start()
	a.log.Info("session started", "elapsed_today", a.tracker.Elapsed())
}

// PauseSession stops the timer and persists today's counter.
func (a *App) PauseSession() error {
	if !a.tracker.Running() {
		return nil
	}
	if err := a.tracker.Pause(); err != nil {
		return err
	}
	a.log.Info("session paused", "elapsed_today", a.tracker.Elapsed())
	return nil
}

// EndSession stops the timer and records the run, if one was open.
func (a *App) EndSession(notes string) (*journal.SessionRecord, error) {
	rec, err := a.tracker.End(notes)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		a.log.Info("session ended", "session_id", rec.SessionID, "minutes", rec.DurationMin)
	} else {
		a.log.Debug("session ended while idle")
	}
	return rec, nil
}
