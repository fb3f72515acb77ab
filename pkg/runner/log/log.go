package log

import (
	"context"
	"errors"

	"github.com/Snow-evo/flashback-atack/pkg/codec"
	"github.com/Snow-evo/flashback-atack/pkg/collection"
	"github.com/Snow-evo/flashback-atack/pkg/printers"
	"github.com/Snow-evo/flashback-atack/pkg/store"
	"github.com/Snow-evo/flashback-atack/pkg/triggerlog"
)

// Add records a new trigger log entry.
type Add struct {
	Input       triggerlog.Input
	ShowID      bool
	Persistence store.Persistence
}

func (a *Add) Do(ctx context.Context) error {
	if a.Persistence == nil {
		return errors.New("can not add, no persistence")
	}
	pp := printers.PrettyPrint{ShowID: a.ShowID}
	if !a.Persistence.Available() {
		pp.StorageWarning()
	}

	s := triggerlog.New(a.Persistence)
	entry, err := s.Create(a.Input)
	if err != nil {
		var fields codec.FieldErrors
		if errors.As(err, &fields) {
			for field, msg := range fields {
				pp.Error(field + ": " + msg)
			}
			return errors.New("nothing was recorded")
		}
		if errors.Is(err, collection.ErrNotSaved) {
			pp.Error("the entry could not be saved")
			return nil
		}
		return err
	}

	pp.Feedback("recorded; how about a deep breath?")
	if a.ShowID {
		pp.Feedback(entry.ID)
	}
	return nil
}

// Edit replaces the fields of an existing entry.
type Edit struct {
	ID          string
	Input       triggerlog.Input
	Persistence store.Persistence
}

func (e *Edit) Do(ctx context.Context) error {
	if e.Persistence == nil {
		return errors.New("can not edit, no persistence")
	}
	pp := printers.PrettyPrint{}
	if !e.Persistence.Available() {
		pp.StorageWarning()
	}

	s := triggerlog.New(e.Persistence)
	if _, err := s.Update(e.ID, e.Input); err != nil {
		var fields codec.FieldErrors
		switch {
		case errors.As(err, &fields):
			for field, msg := range fields {
				pp.Error(field + ": " + msg)
			}
			return errors.New("nothing was changed")
		case errors.Is(err, collection.ErrNotFound):
			pp.Error("that entry no longer exists; it may have been deleted elsewhere")
			return nil
		case errors.Is(err, collection.ErrNotSaved):
			pp.Error("the change could not be saved")
			return nil
		default:
			return err
		}
	}

	pp.Feedback("entry updated")
	return nil
}

// Remove deletes one entry by id.
type Remove struct {
	ID          string
	Persistence store.Persistence
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Persistence == nil {
		return errors.New("can not remove, no persistence")
	}
	pp := printers.PrettyPrint{}
	if !r.Persistence.Available() {
		pp.StorageWarning()
	}

	s := triggerlog.New(r.Persistence)
	removed, err := s.Delete(r.ID)
	if errors.Is(err, collection.ErrNotSaved) {
		pp.Error("the removal could not be saved")
		return nil
	}
	if !removed {
		pp.Error("no entry with that id")
		return nil
	}
	pp.Feedback("entry removed")
	return nil
}

// Clear deletes every entry. Confirmed must be set by the caller after an
// explicit confirmation; this is the only destructive bulk operation.
type Clear struct {
	Confirmed   bool
	Persistence store.Persistence
}

func (c *Clear) Do(ctx context.Context) error {
	if c.Persistence == nil {
		return errors.New("can not clear, no persistence")
	}
	pp := printers.PrettyPrint{}

	s := triggerlog.New(c.Persistence)
	if s.Len() == 0 {
		pp.Feedback("there are no saved entries")
		return nil
	}
	if !c.Confirmed {
		return errors.New("refusing to clear without --yes")
	}
	if err := s.Clear(); errors.Is(err, collection.ErrNotSaved) {
		pp.Error("the removal could not be saved")
		return nil
	}
	pp.Feedback("all entries removed")
	return nil
}

// List prints the log newest-first.
type List struct {
	ShowID      bool
	Persistence store.Persistence
}

func (l *List) Do(ctx context.Context) error {
	if l.Persistence == nil {
		return errors.New("can not list, no persistence")
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID}
	if !l.Persistence.Available() {
		pp.StorageWarning()
	}

	s := triggerlog.New(l.Persistence)
	pp.NewLine()
	pp.TriggerLogs(s.List())
	return nil
}
