package watch

import (
	"context"
	"errors"

	"github.com/Snow-evo/flashback-atack/pkg/favorites"
	"github.com/Snow-evo/flashback-atack/pkg/plans"
	"github.com/Snow-evo/flashback-atack/pkg/printers"
	"github.com/Snow-evo/flashback-atack/pkg/roadmap"
	"github.com/Snow-evo/flashback-atack/pkg/store"
	"github.com/Snow-evo/flashback-atack/pkg/triggerlog"
	"github.com/Snow-evo/flashback-atack/pkg/voice"
)

// Watch follows the storage directory and reprints whichever tool's state
// another process changes, until the context is cancelled.
type Watch struct {
	ShowID      bool
	Persistence store.Persistence
}

func (w *Watch) Do(ctx context.Context) error {
	if w.Persistence == nil {
		return errors.New("can not watch, no persistence")
	}
	pp := printers.PrettyPrint{ShowID: w.ShowID}
	if !w.Persistence.Available() {
		pp.StorageWarning()
		pp.Feedback("session-only storage has no other writers; waiting anyway")
	}

	favs := favorites.New(w.Persistence)
	logs := triggerlog.New(w.Persistence)
	planStore := plans.New(w.Persistence)
	voices := voice.New(w.Persistence)
	road := roadmap.New(w.Persistence)
	defer road.Close()

	events, err := w.Persistence.Watch(ctx)
	if err != nil {
		return err
	}

	pp.Feedback("watching for changes, ctrl-c to stop")

	for ev := range events {
		switch ev.Key {
		case favorites.Key:
			favs.Reload()
			pp.NewLine()
			pp.Favorites(favs.List())
		case triggerlog.Key:
			logs.Reload()
			pp.NewLine()
			pp.TriggerLogs(logs.List())
		case plans.Key:
			planStore.Reload()
			pp.NewLine()
			pp.Plans(planStore.List())
		case voice.ProfilesKey, voice.PlacementsKey:
			voices.Reload()
			pp.NewLine()
			pp.Profiles(voices.List(), voices.Placements())
		case roadmap.StageKey, roadmap.NotesKey:
			road.Reload()
			pp.NewLine()
			pp.Roadmap(roadmap.Stages(), road.Current(), road.Notes())
		}
	}
	return nil
}
