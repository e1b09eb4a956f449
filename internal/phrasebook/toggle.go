package phrasebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"codeberg.org/snonux/lenslate/internal"
)

// Savable is a result that can carry a phrasebook id
type Savable[T any] interface {
	SavedID() string
	WithSavedID(id string) T
}

// Toggle saves current when it has no phrasebook id and removes its entry
// when it has one. The returned value carries the new id, or none.
// Concurrent toggles are not coordinated; the last writer wins.
func Toggle[T Savable[T]](ctx context.Context, store Store, now func() time.Time, current T) (T, error) {
	if id := current.SavedID(); id != "" {
		// Entries written by a newer version can still be removed
		_, err := store.Get(ctx, id)
		if err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrUnsupportedVersion) {
			return current, fmt.Errorf("failed to look up phrasebook entry: %w", err)
		}
		if err := store.Remove(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
			return current, fmt.Errorf("failed to remove phrasebook entry: %w", err)
		}
		return current.WithSavedID(""), nil
	}

	data, err := json.Marshal(current)
	if err != nil {
		return current, fmt.Errorf("failed to encode phrasebook entry: %w", err)
	}

	id := internal.GeneratePhraseID(now())
	doc := &Document{ID: id, Data: data, PhrasebookVersion: CurrentVersion}
	if err := store.Put(ctx, doc); err != nil {
		return current, fmt.Errorf("failed to save phrasebook entry: %w", err)
	}
	return current.WithSavedID(id), nil
}
