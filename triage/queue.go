package triage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/pars-health/triage-api/databases"
	"github.com/pars-health/triage-api/models"
)

// queueEntry wraps a patient with its reconciliation state. A pending entry
// carries a temporary client-generated id until the store write confirms;
// the two states make the optimistic-insert rollback path explicit.
type queueEntry struct {
	patient models.Patient
	pending bool
	tempID  string
}

// QueueStore owns the authoritative, risk-sorted list of patient records.
// Writes go through the optimistic-insert protocol against the remote
// store; the in-memory list is the source of truth for rendering regardless
// of remote state. It is the sole writer of the list; all other components
// read snapshots.
type QueueStore struct {
	db databases.PatientDatabase

	mu      sync.RWMutex
	entries []queueEntry
	subs    []func([]models.Patient)
}

// NewQueueStore returns an empty queue store backed by the given patient
// database.
func NewQueueStore(db databases.PatientDatabase) *QueueStore {
	return &QueueStore{db: db}
}

// Load fetches the full current record set from the remote store, replacing
// local state. On failure local state is left unchanged and the caller may
// retry.
func (s *QueueStore) Load(ctx context.Context) error {
	patients, err := s.db.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return err
	}

	entries := make([]queueEntry, 0, len(patients))
	for _, p := range patients {
		entries = append(entries, queueEntry{patient: p})
	}

	s.mu.Lock()
	s.entries = entries
	s.sortLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// Insert adds a locally-synthesized record to the in-memory list before
// issuing the write to the remote store, so readers see the submission with
// zero latency. On success the temporary record is replaced in place by the
// confirmed one; on failure it is removed entirely and the error surfaced,
// leaving no partial state behind.
func (s *QueueStore) Insert(ctx context.Context, draft models.Patient) (models.Patient, error) {
	tempID := "temp-" + uuid.New().String()
	draft.ID = tempID
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now()
	}

	s.mu.Lock()
	s.entries = append(s.entries, queueEntry{patient: draft, pending: true, tempID: tempID})
	s.sortLocked()
	s.mu.Unlock()
	s.notify()

	write := draft
	write.ID = ""
	confirmedID, err := s.db.InsertOne(ctx, write)
	if err != nil {
		s.rollback(tempID)
		return models.Patient{}, err
	}

	confirmed := draft
	confirmed.ID = confirmedID
	s.confirm(tempID, confirmed)
	return confirmed, nil
}

// confirm swaps the pending entry for the server-confirmed record without
// re-sorting: the risk fields are unchanged, so the sort position must not
// move. Any duplicate of the confirmed id that raced in through the live
// feed is dropped.
func (s *QueueStore) confirm(tempID string, confirmed models.Patient) {
	s.mu.Lock()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.pending && e.tempID == tempID {
			kept = append(kept, queueEntry{patient: confirmed})
			continue
		}
		if e.patient.ID == confirmed.ID {
			// live notification for our own insert raced in first
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	s.mu.Unlock()
	s.notify()
}

func (s *QueueStore) rollback(tempID string) {
	s.mu.Lock()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.pending && e.tempID == tempID {
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	s.mu.Unlock()
	s.notify()
}

// ApplyRemote merges a record pushed by the live subscription. Records whose
// id already exists locally were added by the optimistic path and are
// ignored to avoid duplication.
func (s *QueueStore) ApplyRemote(p models.Patient) {
	s.mu.Lock()
	for _, e := range s.entries {
		if e.patient.ID == p.ID {
			s.mu.Unlock()
			return
		}
	}
	s.entries = append(s.entries, queueEntry{patient: p})
	s.sortLocked()
	s.mu.Unlock()
	s.notify()
}

// WatchRemote subscribes the store to remote insert notifications until ctx
// is cancelled.
func (s *QueueStore) WatchRemote(ctx context.Context) error {
	ch, err := s.db.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for p := range ch {
			zap.S().Debugf("live patient insert: %v", p.ID)
			s.ApplyRemote(p)
		}
	}()
	return nil
}

// Snapshot returns the current ordered record list.
func (s *QueueStore) Snapshot() []models.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Patient, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.patient
	}
	return out
}

// Subscribe registers a callback invoked with a fresh snapshot after every
// mutation.
func (s *QueueStore) Subscribe(fn func([]models.Patient)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *QueueStore) notify() {
	s.mu.RLock()
	subs := make([]func([]models.Patient), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	if len(subs) == 0 {
		return
	}
	snapshot := s.Snapshot()
	for _, fn := range subs {
		fn(snapshot)
	}
}

// sortLocked applies the queue's total order: severity rank ascending, then
// creation time descending, then id as the final tie-break so repeated sorts
// of the same set are idempotent.
func (s *QueueStore) sortLocked() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		a, b := s.entries[i].patient, s.entries[j].patient
		ra, rb := models.SeverityRank(a.RiskLabel), models.SeverityRank(b.RiskLabel)
		if ra != rb {
			return ra < rb
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// SortPatients orders a standalone patient slice by the queue's total order.
func SortPatients(patients []models.Patient) []models.Patient {
	out := make([]models.Patient, len(patients))
	copy(out, patients)
	sort.SliceStable(out, func(i, j int) bool {
		ra, rb := models.SeverityRank(out[i].RiskLabel), models.SeverityRank(out[j].RiskLabel)
		if ra != rb {
			return ra < rb
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
