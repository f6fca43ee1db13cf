package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/salesfield/fieldsync/internal/client/api"
	"github.com/salesfield/fieldsync/internal/client/models"
	"github.com/salesfield/fieldsync/internal/client/netmon"
	"github.com/salesfield/fieldsync/internal/client/repositories/pending"
	"github.com/salesfield/fieldsync/internal/common"
	"github.com/salesfield/fieldsync/internal/logging"
)

// DrainResult aggregates the outcome of one queue drain.
type DrainResult struct {
	// Success counts notes whose remote create succeeded.
	Success int

	// Failed counts notes whose remote create failed; they stay queued.
	Failed int

	// Errors holds per-note failure messages.
	Errors []string

	// Warnings holds per-note partial-success messages (created but not
	// validated) and local bookkeeping issues.
	Warnings []string
}

// SyncService owns the pending submission queue and the engine that drains
// it against the remote API.
type SyncService struct {
	api     api.Client
	notes   pending.Repository
	monitor *netmon.Monitor
	log     logging.Logger

	draining int32
}

func NewSyncService(apiClient api.Client, noteRepo pending.Repository, monitor *netmon.Monitor, log logging.Logger) *SyncService {
	return &SyncService{
		api:     apiClient,
		notes:   noteRepo,
		monitor: monitor,
		log:     log,
	}
}

// newLocalID generates a device-unique note identifier: millisecond
// timestamp plus a random suffix. Ids are never reused.
func newLocalID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

func validateDraft(draft *models.NoteDraft) error {
	if len(draft.Lines) == 0 {
		return errors.New("delivery note has no lines")
	}
	for i, line := range draft.Lines {
		if !line.Quantity.IsPositive() {
			return fmt.Errorf("line %d: quantity must be positive", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return fmt.Errorf("line %d: unit price must not be negative", i+1)
		}
	}
	return nil
}

// Enqueue appends a note to the local ledger with synced=false and returns
// its generated local id. Notes are always queued, whatever the
// connectivity state; the drain decides when they reach the backend.
func (s *SyncService) Enqueue(ctx context.Context, draft *models.NoteDraft) (string, error) {
	if err := validateDraft(draft); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	note := &models.PendingNote{
		LocalID:       newLocalID(now),
		SalespersonID: draft.SalespersonID,
		ClientID:      draft.ClientID,
		Remark:        draft.Remark,
		Lines:         draft.Lines,
		Synced:        false,
		CreatedAt:     now,
	}

	if err := s.notes.Insert(ctx, note); err != nil {
		return "", fmt.Errorf("failed to queue delivery note: %w", err)
	}

	s.log.Info(ctx, "delivery note queued",
		"local_id", note.LocalID, "client_id", note.ClientID, "lines", len(note.Lines))
	return note.LocalID, nil
}

// PendingCount returns the number of notes awaiting submission.
func (s *SyncService) PendingCount(ctx context.Context) (int, error) {
	return s.notes.CountPending(ctx)
}

// List returns every note in the ledger, synchronized or not.
func (s *SyncService) List(ctx context.Context) ([]*models.PendingNote, error) {
	return s.notes.GetAll(ctx)
}

func buildCreateRequest(note *models.PendingNote) *api.DeliveryNoteRequest {
	req := &api.DeliveryNoteRequest{
		SalespersonID: note.SalespersonID,
		ClientID:      note.ClientID,
		Remark:        note.Remark,
		Lines:         make([]api.NoteLineRequest, 0, len(note.Lines)),
	}
	for _, line := range note.Lines {
		req.Lines = append(req.Lines, api.NoteLineRequest{
			ProductID:    line.ProductID,
			Qte:          line.Quantity,
			PrixUnitaire: line.UnitPrice,
		})
	}
	return req
}

// Drain submits every unsynchronized note sequentially, preserving a
// predictable server-side ordering. Each note is a two-step remote write:
// create, then validate. A failed validate still consumes the queue item,
// because the remote document already exists and re-submitting the create
// would duplicate it; the outcome is reported as a warning for manual
// reconciliation. Only a failed create leaves the note queued for the next
// drain.
//
// A second Drain while one is running returns ErrDrainInProgress.
func (s *SyncService) Drain(ctx context.Context) (*DrainResult, error) {
	if !atomic.CompareAndSwapInt32(&s.draining, 0, 1) {
		return nil, common.ErrDrainInProgress
	}
	defer atomic.StoreInt32(&s.draining, 0)

	result := &DrainResult{}

	if !s.monitor.IsOnline() {
		result.Errors = append(result.Errors, common.ErrOffline.Error())
		return result, nil
	}

	notes, err := s.notes.GetAllPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending notes: %w", err)
	}
	if len(notes) == 0 {
		s.log.Info(ctx, "nothing to synchronize")
		return result, nil
	}

	s.log.Info(ctx, "draining pending notes", "count", len(notes))

	for _, note := range notes {
		log := s.log.With("local_id", note.LocalID, "client_id", note.ClientID)

		created, err := s.api.CreateDeliveryNote(ctx, buildCreateRequest(note))
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: %s", note.LocalID, remoteMessage(err)))
			log.Error(ctx, "delivery note create failed", "error", err)
			continue
		}

		syncedAt := time.Now().UTC()

		if err := s.api.ValidateDeliveryNote(ctx, created.ID); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: created but not validated: %s", note.LocalID, remoteMessage(err)))
			log.Warn(ctx, "delivery note created but not validated",
				"remote_id", created.ID, "error", err)
		}

		// The note is consumed on create success regardless of the
		// validate outcome; see the warning above for the partial case.
		if err := s.notes.MarkSynced(ctx, note.LocalID, syncedAt); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: synchronized but local flag not updated: %s", note.LocalID, err))
			log.Error(ctx, "failed to mark note synced", "error", err)
		}

		result.Success++
		log.Info(ctx, "delivery note synchronized", "remote_id", created.ID)
	}

	s.log.Info(ctx, "drain finished",
		"success", result.Success, "failed", result.Failed, "warnings", len(result.Warnings))
	return result, nil
}

// remoteMessage prefers the server-provided message for user-facing
// per-item reports.
func remoteMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
