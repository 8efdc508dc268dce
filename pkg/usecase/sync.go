package usecase

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/types"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/async"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/errutil"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

// DefaultRunListLimit is the number of runs ListRuns returns when no limit is given
const DefaultRunListLimit = 20

// SyncUseCase reconciles the primary store with the document store. Every
// run, successful or not, is recorded as exactly one SyncRun.
type SyncUseCase struct {
	repo     interfaces.Repository
	store    interfaces.DocumentStore
	adapters []syncAdapter
	notifier interfaces.Notifier
	now      func() time.Time
}

func NewSyncUseCase(repo interfaces.Repository, store interfaces.DocumentStore, status *StatusUseCase, notifier interfaces.Notifier, now func() time.Time) *SyncUseCase {
	if now == nil {
		now = time.Now
	}
	return &SyncUseCase{
		repo:     repo,
		store:    store,
		adapters: newAdapters(repo, store, status),
		notifier: notifier,
		now:      now,
	}
}

// PullAll copies every remote document newer than the watermark and than its
// primary row into the primary store, kind by kind in dependency order. Kinds
// pulled before a failure stay committed; the watermark does not move.
func (uc *SyncUseCase) PullAll(ctx context.Context) *model.SyncResult {
	result, ctx := uc.begin(ctx, types.SyncDirectionPull)

	err := uc.pull(ctx, result.Counts)
	uc.finish(ctx, result, err)
	return result
}

func (uc *SyncUseCase) pull(ctx context.Context, counts map[string]int) error {
	watermark, err := uc.watermark(ctx)
	if err != nil {
		return err
	}
	logging.From(ctx).Info("pull started", "watermark", watermark)

	for _, a := range uc.adapters {
		if err := ctx.Err(); err != nil {
			return goerr.Wrap(err, "pull cancelled", goerr.V(KindKey, a.Kind()))
		}

		n, err := a.PullSince(ctx, watermark)
		if err != nil {
			return goerr.Wrap(err, "failed to pull kind", goerr.V(KindKey, a.Kind()))
		}
		counts[a.Kind().Collection()] = n
	}
	return nil
}

// watermark returns the start time of the latest successful pull
func (uc *SyncUseCase) watermark(ctx context.Context) (time.Time, error) {
	run, err := uc.repo.SyncRun().LatestSuccess(ctx, model.PullRemarkPattern)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return model.DefaultWatermark, nil
		}
		return time.Time{}, goerr.Wrap(err, "failed to read pull watermark")
	}
	return run.RunAt, nil
}

// PushAll empties every remote collection, then writes every primary row to
// it, so the document store mirrors the primary store once it succeeds.
func (uc *SyncUseCase) PushAll(ctx context.Context) *model.SyncResult {
	result, ctx := uc.begin(ctx, types.SyncDirectionPush)

	err := uc.push(ctx, result.Counts)
	uc.finish(ctx, result, err)
	return result
}

func (uc *SyncUseCase) push(ctx context.Context, counts map[string]int) error {
	logger := logging.From(ctx)

	for _, a := range uc.adapters {
		collection := a.Kind().Collection()
		deleted, err := uc.store.DeleteAll(ctx, collection)
		if err != nil {
			return goerr.Wrap(err, "failed to clear remote collection", goerr.V(CollectionKey, collection))
		}
		logger.Debug("cleared remote collection", "collection", collection, "deleted", deleted)
	}

	for _, a := range uc.adapters {
		if err := ctx.Err(); err != nil {
			return goerr.Wrap(err, "push cancelled", goerr.V(KindKey, a.Kind()))
		}

		n, err := a.PushAll(ctx)
		counts[a.Kind().Collection()] = n
		if err != nil {
			return goerr.Wrap(err, "failed to push kind", goerr.V(KindKey, a.Kind()))
		}
	}
	return nil
}

// FullBidirectional pulls then pushes. The push is skipped when the pull fails.
func (uc *SyncUseCase) FullBidirectional(ctx context.Context) *model.FullSyncResult {
	pull := uc.PullAll(ctx)
	if !pull.Success {
		return &model.FullSyncResult{Success: false, Pull: pull}
	}

	push := uc.PushAll(ctx)
	return &model.FullSyncResult{
		Success: push.Success,
		Pull:    pull,
		Push:    push,
	}
}

// ListRuns returns the latest runs, newest first
func (uc *SyncUseCase) ListRuns(ctx context.Context, limit int) ([]*model.SyncRun, error) {
	if limit <= 0 {
		limit = DefaultRunListLimit
	}
	runs, err := uc.repo.SyncRun().ListRecent(ctx, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sync runs", goerr.V("limit", limit))
	}
	return runs, nil
}

func (uc *SyncUseCase) begin(ctx context.Context, direction types.SyncDirection) (*model.SyncResult, context.Context) {
	result := &model.SyncResult{
		RunID:     uuid.NewString(),
		Direction: direction,
		RunAt:     model.Timestamp(uc.now()),
		Counts:    make(map[string]int, len(uc.adapters)),
	}

	logger := logging.From(ctx).With(RunIDKey, result.RunID, "direction", direction)
	return result, logging.With(ctx, logger)
}

// finish fills the outcome of result, records the run and notifies operators
// of failures. Recording errors are reported but do not change the outcome.
func (uc *SyncUseCase) finish(ctx context.Context, result *model.SyncResult, runErr error) {
	logger := logging.From(ctx)

	if runErr != nil {
		result.Success = false
		result.Error = runErr.Error()
		result.Message = model.FailedRemark(result.Direction, runErr)
		_ = errutil.Handle(ctx, runErr, "sync run failed")
	} else {
		result.Success = true
		switch result.Direction {
		case types.SyncDirectionPull:
			result.Message = model.PullRemark(result.Total(), len(result.Counts))
		case types.SyncDirectionPush:
			result.Message = model.PushRemark(result.Total(), len(result.Counts))
		}
		logger.Info("sync run completed", "total", result.Total(), "counts", result.Counts)
	}

	run := &model.SyncRun{
		RunID:     result.RunID,
		RunAt:     result.RunAt,
		Direction: result.Direction,
		Success:   result.Success,
		Remark:    result.Message,
		Counts:    maps.Clone(result.Counts),
	}
	// A cancelled caller must not prevent the audit row from being written.
	if err := uc.repo.SyncRun().Create(context.WithoutCancel(ctx), run); err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err, "failed to record sync run", goerr.V(RunIDKey, result.RunID)), "failed to record sync run")
	}

	if !result.Success && uc.notifier != nil {
		notified := *result
		notified.Counts = maps.Clone(result.Counts)
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.notifier.NotifySyncFailure(ctx, &notified)
		})
	}
}
