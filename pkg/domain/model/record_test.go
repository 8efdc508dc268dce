package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/types"
)

func TestTouch(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	now := time.Date(2025, 3, 4, 10, 11, 12, 345678901, loc)

	r := &model.Report{ID: 1}
	model.Touch(r, now)

	gt.V(t, r.LastUpdate.Location()).Equal(time.UTC)
	gt.N(t, r.LastUpdate.Nanosecond()).Equal(345000000)
	gt.B(t, r.LastUpdate.Equal(now.Truncate(time.Millisecond))).True()
}

func TestTimestampRoundTripsEpochMillis(t *testing.T) {
	ts := model.Timestamp(time.Now())
	back := time.UnixMilli(ts.UnixMilli()).UTC()
	gt.B(t, back.Equal(ts)).True()
}

func TestSessionIsActive(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	s := &model.Session{StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour)}
	gt.B(t, s.IsActive(now)).True()
	gt.B(t, s.IsActive(now.Add(2*time.Hour))).False()
	gt.B(t, s.IsActive(now.Add(-2*time.Hour))).False()

	open := &model.Session{StartsAt: now.Add(-time.Hour)}
	gt.B(t, open.IsActive(now.Add(24*time.Hour))).True()
}

func TestRemarks(t *testing.T) {
	gt.String(t, model.PullRemark(7, 12)).Contains(model.PullMarker)
	gt.String(t, model.PushRemark(7, 12)).Contains(model.PushMarker)
	gt.String(t, model.FailedRemark(types.SyncDirectionPull, errors.New("timeout"))).Contains("timeout")
	gt.String(t, model.FailedRemark(types.SyncDirectionPush, errors.New("x"))).NotContains(model.PullMarker)
}

func TestSyncResultTotal(t *testing.T) {
	r := &model.SyncResult{Counts: map[string]int{"users": 2, "reports": 3}}
	gt.N(t, r.Total()).Equal(5)
}
