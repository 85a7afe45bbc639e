package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/saulo-duarte/quizdeck/internal/storage"
)

const snapshotKey = "sessionData"

type SessionRepository interface {
	Save(ctx context.Context, sessions []Session, currentID *string) error
	Load(ctx context.Context) (Snapshot, error)
}

type sessionRepository struct {
	kv  storage.KV
	now func() time.Time
}

func NewRepository(kv storage.KV) SessionRepository {
	return &sessionRepository{kv: kv, now: time.Now}
}

// Save overwrites the whole snapshot.
func (r *sessionRepository) Save(ctx context.Context, sessions []Session, currentID *string) error {
	if sessions == nil {
		sessions = []Session{}
	}
	data, err := json.Marshal(Snapshot{
		Sessions:         sessions,
		CurrentSessionID: currentID,
		LastUpdated:      r.now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	return r.kv.Put(ctx, snapshotKey, data)
}

// Load returns an empty snapshot when nothing was ever saved. A blob that
// cannot be decoded is an error.
func (r *sessionRepository) Load(ctx context.Context) (Snapshot, error) {
	e, err := r.kv.Get(ctx, snapshotKey)
	if errors.Is(err, storage.ErrNotFound) {
		return Snapshot{Sessions: []Session{}}, nil
	}
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	if err := json.Unmarshal(e.Value, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode session snapshot: %w", err)
	}
	if snap.Sessions == nil {
		snap.Sessions = []Session{}
	}
	return snap, nil
}
