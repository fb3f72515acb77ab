package road

import (
	"context"
	"errors"

	"github.com/Snow-evo/flashback-atack/pkg/codec"
	"github.com/Snow-evo/flashback-atack/pkg/collection"
	"github.com/Snow-evo/flashback-atack/pkg/printers"
	"github.com/Snow-evo/flashback-atack/pkg/roadmap"
	"github.com/Snow-evo/flashback-atack/pkg/store"
)

// Mark toggles the current roadmap stage.
type Mark struct {
	Stage       string
	Persistence store.Persistence
}

func (m *Mark) Do(ctx context.Context) error {
	if m.Persistence == nil {
		return errors.New("can not mark, no persistence")
	}
	pp := printers.PrettyPrint{}
	if !m.Persistence.Available() {
		pp.StorageWarning()
	}

	s := roadmap.New(m.Persistence)
	defer s.Close()

	current, err := s.Mark(m.Stage)
	if err != nil {
		var fields codec.FieldErrors
		switch {
		case errors.As(err, &fields):
			for field, msg := range fields {
				pp.Error(field + ": " + msg)
			}
			return errors.New("nothing was marked")
		case errors.Is(err, collection.ErrNotSaved):
			pp.Error("the marker could not be saved")
			return nil
		default:
			return err
		}
	}

	if current == "" {
		pp.Feedback("stage marker cleared")
	} else {
		pp.Feedback("now at: " + current)
	}
	return nil
}

// Note sets the note for a stage, written through the blur path so the
// value lands before the command exits.
type Note struct {
	Stage       string
	Text        string
	Persistence store.Persistence
}

func (n *Note) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not note, no persistence")
	}
	pp := printers.PrettyPrint{}
	if !n.Persistence.Available() {
		pp.StorageWarning()
	}

	s := roadmap.New(n.Persistence)
	defer s.Close()

	if err := s.FlushNote(n.Stage, n.Text); err != nil {
		var fields codec.FieldErrors
		if errors.As(err, &fields) {
			for field, msg := range fields {
				pp.Error(field + ": " + msg)
			}
			return errors.New("nothing was noted")
		}
		return err
	}

	if s.Note(n.Stage) == "" {
		pp.Feedback("note cleared")
	} else {
		pp.Feedback("note saved")
	}
	return nil
}

// Show prints the roadmap with the current marker and notes.
type Show struct {
	Persistence store.Persistence
}

func (sh *Show) Do(ctx context.Context) error {
	if sh.Persistence == nil {
		return errors.New("can not show, no persistence")
	}
	pp := printers.PrettyPrint{}
	if !sh.Persistence.Available() {
		pp.StorageWarning()
	}

	s := roadmap.New(sh.Persistence)
	defer s.Close()

	pp.NewLine()
	pp.Roadmap(roadmap.Stages(), s.Current(), s.Notes())
	return nil
}
