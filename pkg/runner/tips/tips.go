package tips

import (
	"context"
	"errors"

	"github.com/Snow-evo/flashback-atack/pkg/favorites"
	"github.com/Snow-evo/flashback-atack/pkg/printers"
	"github.com/Snow-evo/flashback-atack/pkg/store"
)

// Toggle flips the favorite state of one tip.
type Toggle struct {
	ID          string
	Persistence store.Persistence
}

func (t *Toggle) Do(ctx context.Context) error {
	if t.Persistence == nil {
		return errors.New("can not toggle, no persistence")
	}
	pp := printers.PrettyPrint{}
	if !t.Persistence.Available() {
		pp.StorageWarning()
	}

	s := favorites.New(t.Persistence)
	on, err := s.Toggle(t.ID)
	if err != nil && !errors.Is(err, favorites.ErrNotSaved) {
		return err
	}

	if on {
		pp.Feedback("added " + favorites.Normalize(t.ID) + " to favorites")
	} else {
		pp.Feedback("removed " + favorites.Normalize(t.ID) + " from favorites")
	}
	if errors.Is(err, favorites.ErrNotSaved) {
		pp.Error("the change could not be saved")
	}
	return nil
}

// List prints the favorite set.
type List struct {
	Persistence store.Persistence
}

func (l *List) Do(ctx context.Context) error {
	if l.Persistence == nil {
		return errors.New("can not list, no persistence")
	}
	pp := printers.PrettyPrint{}
	if !l.Persistence.Available() {
		pp.StorageWarning()
	}

	s := favorites.New(l.Persistence)
	pp.NewLine()
	pp.Favorites(s.List())
	return nil
}
