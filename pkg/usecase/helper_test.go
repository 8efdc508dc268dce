package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/document"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model/config"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/repository/memory"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/usecase"
)

var baseTime = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// faultyStore fails List or Set for chosen collections
type faultyStore struct {
	interfaces.DocumentStore

	mu       sync.Mutex
	failList map[string]error
	failSet  map[string]error
}

func newFaultyStore(base interfaces.DocumentStore) *faultyStore {
	return &faultyStore{
		DocumentStore: base,
		failList:      map[string]error{},
		failSet:       map[string]error{},
	}
}

func (s *faultyStore) FailList(collection string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failList, collection)
		return
	}
	s.failList[collection] = err
}

func (s *faultyStore) FailSet(collection string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failSet, collection)
		return
	}
	s.failSet[collection] = err
}

func (s *faultyStore) List(ctx context.Context, collection string) ([]document.Document, error) {
	s.mu.Lock()
	err := s.failList[collection]
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.DocumentStore.List(ctx, collection)
}

func (s *faultyStore) Set(ctx context.Context, collection string, id int64, doc document.Document) error {
	s.mu.Lock()
	err := s.failSet[collection]
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.DocumentStore.Set(ctx, collection, id, doc)
}

type recordingNotifier struct {
	results chan *model.SyncResult
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{results: make(chan *model.SyncResult, 8)}
}

func (n *recordingNotifier) NotifySyncFailure(_ context.Context, result *model.SyncResult) error {
	n.results <- result
	return nil
}

type fixture struct {
	uc       *usecase.UseCases
	repo     *memory.Memory
	store    *faultyStore
	clock    *testClock
	notifier *recordingNotifier
	codes    *config.StatusCodes
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:     memory.New(),
		store:    newFaultyStore(memory.NewDocumentStore()),
		clock:    &testClock{now: baseTime},
		notifier: newRecordingNotifier(),
		codes:    config.DefaultStatusCodes(),
	}
	f.uc = usecase.New(f.repo, f.store,
		usecase.WithStatusCodes(f.codes),
		usecase.WithClock(f.clock.Now),
		usecase.WithNotifier(f.notifier),
	)
	return f
}

// seedStatusCodes stores the default report and assignment status codes
func (f *fixture) seedStatusCodes(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	ts := baseTime.Add(-24 * time.Hour)

	reportLabels := map[int64]string{
		f.codes.Report.Pending:    "pending",
		f.codes.Report.InProgress: "in_progress",
		f.codes.Report.Resolved:   "resolved",
		f.codes.Report.Rejected:   "rejected",
	}
	for id, label := range reportLabels {
		gt.NoError(t, f.repo.ReportStatusCode().Save(ctx, &model.ReportStatusCode{ID: id, Label: label, LastUpdate: ts})).Required()
	}

	assignmentLabels := map[int64]string{
		f.codes.Assignment.Pending:    "pending",
		f.codes.Assignment.Accepted:   "accepted",
		f.codes.Assignment.Refused:    "refused",
		f.codes.Assignment.InProgress: "in_progress",
		f.codes.Assignment.Completed:  "completed",
	}
	for id, label := range assignmentLabels {
		gt.NoError(t, f.repo.AssignmentStatusCode().Save(ctx, &model.AssignmentStatusCode{ID: id, Label: label, LastUpdate: ts})).Required()
	}
}

// seedReport stores a citizen, an enterprise and a report, and returns the report
func (f *fixture) seedReport(t *testing.T) (*model.Report, *model.Enterprise) {
	t.Helper()
	ctx := context.Background()
	ts := baseTime.Add(-time.Hour)

	gt.NoError(t, f.repo.UserType().Save(ctx, &model.UserType{ID: 1, Label: "citizen", LastUpdate: ts})).Required()
	gt.NoError(t, f.repo.User().Save(ctx, &model.User{ID: 1, Email: "citizen@example.com", UserTypeID: 1, LastUpdate: ts})).Required()

	enterprise := &model.Enterprise{ID: 1, Name: "Colas", LastUpdate: ts}
	gt.NoError(t, f.repo.Enterprise().Save(ctx, enterprise)).Required()

	report := &model.Report{ID: 1, Title: "Pothole", UserID: 1, CreatedAt: ts, LastUpdate: ts}
	gt.NoError(t, f.repo.Report().Save(ctx, report)).Required()

	return report, enterprise
}

func millis(t time.Time) int64 {
	return t.UnixMilli()
}

// remoteFixture returns one consistent document per collection, all modified at ts
func remoteFixture(ts time.Time) map[string]document.Document {
	lu := millis(ts)
	return map[string]document.Document{
		"user_types":                {"id": int64(1), "label": "citizen", "last_update": lu},
		"report_status_codes":       {"id": int64(1), "label": "pending", "last_update": lu},
		"work_types":                {"id": int64(1), "label": "road", "last_update": lu},
		"enterprises":               {"id": int64(1), "name": "Colas", "email": "contact@colas.mg", "last_update": lu},
		"assignment_status_codes":   {"id": int64(1), "label": "pending", "last_update": lu},
		"users":                     {"id": int64(1), "last_name": "Rakoto", "first_name": "Jean", "email": "jean@example.com", "is_blocked": "false", "id_user_type": "1", "last_update": lu},
		"sessions":                  {"id": int64(1), "token": "tok-1", "starts_at": lu, "ends_at": lu + 3600000, "id_user": int64(1), "last_update": lu},
		"login_attempts":            {"id": int64(1), "attempted_at": lu, "success": true, "id_user": 1.0, "last_update": lu},
		"reports":                   {"id": int64(1), "title": "Pothole", "latitude": -18.8792, "longitude": "47.5079", "area_m2": 12.5, "created_at": lu, "id_work_type": int64(1), "id_user": int64(1), "last_update": lu},
		"assignments":               {"id": int64(1), "id_report": int64(1), "id_enterprise": int64(1), "id_assignment_status": int64(1), "amount": "1500000", "start_date": lu, "end_date": lu + 86400000, "created_on": lu, "last_update": lu},
		"report_status_history":     {"id": int64(1), "id_report": int64(1), "id_status": int64(1), "changed_at": lu, "last_update": lu},
		"assignment_status_history": {"id": int64(1), "id_assignment": int64(1), "id_status": int64(1), "changed_at": lu, "last_update": rfc3339(lu)},
	}
}

// rfc3339 encodes epoch milliseconds as an RFC 3339 string, another encoding
// clients have written timestamps in
func rfc3339(v int64) string {
	return time.UnixMilli(v).UTC().Format(time.RFC3339Nano)
}

func (f *fixture) putRemote(t *testing.T, docs map[string]document.Document) {
	t.Helper()
	ctx := context.Background()
	for collection, doc := range docs {
		id, ok := doc.ID()
		gt.Bool(t, ok).True()
		gt.NoError(t, f.store.Set(ctx, collection, id, doc)).Required()
	}
}
