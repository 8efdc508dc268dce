package model

import "time"

// Record is implemented by every entity that takes part in reconciliation.
type Record interface {
	RecordID() int64
	SetRecordID(id int64)
	LastUpdated() time.Time
	SetLastUpdated(t time.Time)
}

// Timestamp normalizes t to the precision stored by both stores: UTC,
// truncated to milliseconds.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// Touch stamps r as modified at now. Every create or update of an entity, and
// every append to a history log it owns, goes through here.
func Touch(r Record, now time.Time) {
	r.SetLastUpdated(Timestamp(now))
}
