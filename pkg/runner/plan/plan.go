package plan

import (
	"context"
	"errors"

	"github.com/Snow-evo/flashback-atack/pkg/codec"
	"github.com/Snow-evo/flashback-atack/pkg/collection"
	"github.com/Snow-evo/flashback-atack/pkg/plans"
	"github.com/Snow-evo/flashback-atack/pkg/printers"
	"github.com/Snow-evo/flashback-atack/pkg/store"
)

// Add saves a new externalization plan.
type Add struct {
	Input       plans.Input
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

	s := plans.New(a.Persistence)
	plan, err := s.Create(a.Input)
	if err != nil {
		var fields codec.FieldErrors
		if errors.As(err, &fields) {
			for field, msg := range fields {
				pp.Error(field + ": " + msg)
			}
			return errors.New("nothing was saved")
		}
		if errors.Is(err, collection.ErrNotSaved) {
			pp.Error("the plan could not be saved")
			return nil
		}
		return err
	}

	pp.Feedback("plan saved")
	if a.ShowID {
		pp.Feedback(plan.ID)
	}
	return nil
}

// Edit replaces the fields of a saved plan.
type Edit struct {
	ID          string
	Input       plans.Input
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

	s := plans.New(e.Persistence)
	if _, err := s.Update(e.ID, e.Input); err != nil {
		var fields codec.FieldErrors
		switch {
		case errors.As(err, &fields):
			for field, msg := range fields {
				pp.Error(field + ": " + msg)
			}
			return errors.New("nothing was changed")
		case errors.Is(err, collection.ErrNotFound):
			pp.Error("no plan with that id")
			return nil
		case errors.Is(err, collection.ErrNotSaved):
			pp.Error("the change could not be saved")
			return nil
		default:
			return err
		}
	}

	pp.Feedback("plan updated")
	return nil
}

// Remove deletes one plan by id.
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

	s := plans.New(r.Persistence)
	removed, err := s.Delete(r.ID)
	if errors.Is(err, collection.ErrNotSaved) {
		pp.Error("the removal could not be saved")
		return nil
	}
	if !removed {
		pp.Error("no plan with that id")
		return nil
	}
	pp.Feedback("plan removed")
	return nil
}

// List prints the saved plans newest-first.
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

	s := plans.New(l.Persistence)
	pp.NewLine()
	pp.Plans(s.List())
	return nil
}
