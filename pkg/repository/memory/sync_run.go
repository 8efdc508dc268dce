package memory

import (
	"cmp"
	"context"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
)

type syncRunRepository struct {
	mu     sync.RWMutex
	runs   []*model.SyncRun
	nextID int64
}

var _ interfaces.SyncRunRepository = &syncRunRepository{}

func newSyncRunRepository() *syncRunRepository {
	return &syncRunRepository{}
}

func copySyncRun(r *model.SyncRun) *model.SyncRun {
	copied := *r
	copied.Counts = maps.Clone(r.Counts)
	return &copied
}

func (r *syncRunRepository) Create(ctx context.Context, run *model.SyncRun) error {
	if run == nil {
		return goerr.New("cannot create nil sync run")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	run.ID = r.nextID
	r.runs = append(r.runs, copySyncRun(run))
	return nil
}

func (r *syncRunRepository) LatestSuccess(ctx context.Context, remarkPattern string) (*model.SyncRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *model.SyncRun
	for _, run := range r.runs {
		if !run.Success || !likeMatch(remarkPattern, run.Remark) {
			continue
		}
		if latest == nil || run.RunAt.After(latest.RunAt) {
			latest = run
		}
	}
	if latest == nil {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "no successful sync run", goerr.V("pattern", remarkPattern))
	}
	return copySyncRun(latest), nil
}

func (r *syncRunRepository) ListRecent(ctx context.Context, limit int) ([]*model.SyncRun, error) {
	r.mu.RLock()
	sorted := make([]*model.SyncRun, 0, len(r.runs))
	for _, run := range r.runs {
		sorted = append(sorted, copySyncRun(run))
	}
	r.mu.RUnlock()

	slices.SortStableFunc(sorted, func(a, b *model.SyncRun) int {
		if c := b.RunAt.Compare(a.RunAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (r *syncRunRepository) snapshot() func() {
	r.mu.RLock()
	runs := make([]*model.SyncRun, 0, len(r.runs))
	for _, run := range r.runs {
		runs = append(runs, copySyncRun(run))
	}
	nextID := r.nextID
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.runs = runs
		r.nextID = nextID
	}
}

// likeMatch evaluates a SQL LIKE pattern ('%' any run, '_' any single
// character) case-insensitively, as SQLite does for ASCII.
func likeMatch(pattern, s string) bool {
	var b strings.Builder
	b.WriteString("(?is)^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return false
	}
	return re.MatchString(s)
}
