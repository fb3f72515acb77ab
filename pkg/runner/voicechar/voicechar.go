package voicechar

import (
	"context"
	"errors"

	"github.com/Snow-evo/flashback-atack/pkg/codec"
	"github.com/Snow-evo/flashback-atack/pkg/collection"
	"github.com/Snow-evo/flashback-atack/pkg/printers"
	"github.com/Snow-evo/flashback-atack/pkg/store"
	"github.com/Snow-evo/flashback-atack/pkg/voice"
)

// Save creates a profile, or updates one when ID is set.
type Save struct {
	ID          string
	Input       voice.Input
	ShowID      bool
	Persistence store.Persistence
}

func (s *Save) Do(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("can not save, no persistence")
	}
	pp := printers.PrettyPrint{ShowID: s.ShowID}
	if !s.Persistence.Available() {
		pp.StorageWarning()
	}

	vs := voice.New(s.Persistence)
	var err error
	var profile voice.Profile
	if s.ID == "" {
		profile, err = vs.Create(s.Input)
	} else {
		profile, err = vs.Update(s.ID, s.Input)
	}
	if err != nil {
		var fields codec.FieldErrors
		switch {
		case errors.As(err, &fields):
			for field, msg := range fields {
				pp.Error(field + ": " + msg)
			}
			return errors.New("nothing was saved")
		case errors.Is(err, collection.ErrNotFound):
			pp.Error("no character with that id")
			return nil
		case errors.Is(err, collection.ErrNotSaved):
			pp.Error("the character could not be saved")
			return nil
		default:
			return err
		}
	}

	pp.Feedback("character saved")
	if s.ShowID {
		pp.Feedback(profile.ID)
	}
	return nil
}

// Remove deletes a profile and its placement.
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

	vs := voice.New(r.Persistence)
	removed, err := vs.Delete(r.ID)
	if errors.Is(err, collection.ErrNotSaved) {
		pp.Error("the removal could not be saved")
		return nil
	}
	if !removed {
		pp.Error("no character with that id")
		return nil
	}
	pp.Feedback("character removed")
	return nil
}

// Place pins a profile to a spot; Spot must be one of voice.Spots.
type Place struct {
	ID          string
	Spot        string
	Persistence store.Persistence
}

func (p *Place) Do(ctx context.Context) error {
	if p.Persistence == nil {
		return errors.New("can not place, no persistence")
	}
	pp := printers.PrettyPrint{}
	if !p.Persistence.Available() {
		pp.StorageWarning()
	}

	vs := voice.New(p.Persistence)
	if err := vs.Place(p.ID, p.Spot); err != nil {
		var fields codec.FieldErrors
		switch {
		case errors.As(err, &fields):
			for field, msg := range fields {
				pp.Error(field + ": " + msg)
			}
			return errors.New("nothing was placed")
		case errors.Is(err, collection.ErrNotFound):
			pp.Error("no character with that id")
			return nil
		case errors.Is(err, collection.ErrNotSaved):
			pp.Error("the placement could not be saved")
			return nil
		default:
			return err
		}
	}
	pp.Feedback("character placed at " + p.Spot)
	return nil
}

// Unplace removes a profile's placement.
type Unplace struct {
	ID          string
	Persistence store.Persistence
}

func (u *Unplace) Do(ctx context.Context) error {
	if u.Persistence == nil {
		return errors.New("can not unplace, no persistence")
	}
	pp := printers.PrettyPrint{}
	if !u.Persistence.Available() {
		pp.StorageWarning()
	}

	vs := voice.New(u.Persistence)
	if err := vs.Unplace(u.ID); err != nil {
		if errors.Is(err, collection.ErrNotSaved) {
			pp.Error("the change could not be saved")
			return nil
		}
		return err
	}
	pp.Feedback("placement cleared")
	return nil
}

// List prints the saved profiles with their placements.
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

	vs := voice.New(l.Persistence)
	pp.NewLine()
	pp.Profiles(vs.List(), vs.Placements())
	return nil
}
