package model

import "time"

// UserType is a role label (citizen, manager, ...)
type UserType struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Label      string    `gorm:"column:label;not null"`
	LastUpdate time.Time `gorm:"column:last_update;not null"`
}

func (UserType) TableName() string { return "user_types" }

// User is an account of the civic-works platform
type User struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	LastName     string    `gorm:"column:last_name"`
	FirstName    string    `gorm:"column:first_name"`
	Email        string    `gorm:"column:email;index"`
	PasswordHash string    `gorm:"column:password_hash"`
	RemoteUID    string    `gorm:"column:remote_uid"`
	Blocked      bool      `gorm:"column:is_blocked;not null"`
	UserTypeID   int64     `gorm:"column:id_user_type;not null;index"`
	LastUpdate   time.Time `gorm:"column:last_update;not null"`
}

func (User) TableName() string { return "users" }

// Session is an authenticated session issued to a user. Tokens are issued
// outside this module and only looked up here.
type Session struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Token      string    `gorm:"column:token;index"`
	StartsAt   time.Time `gorm:"column:starts_at"`
	EndsAt     time.Time `gorm:"column:ends_at"`
	UserID     int64     `gorm:"column:id_user;not null;index"`
	LastUpdate time.Time `gorm:"column:last_update;not null"`
}

func (Session) TableName() string { return "sessions" }

// IsActive reports whether the session is valid at now
func (s *Session) IsActive(now time.Time) bool {
	if !s.StartsAt.IsZero() && now.Before(s.StartsAt) {
		return false
	}
	return s.EndsAt.IsZero() || now.Before(s.EndsAt)
}

// LoginAttempt records one authentication attempt
type LoginAttempt struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	AttemptedAt time.Time `gorm:"column:attempted_at"`
	Success     bool      `gorm:"column:success;not null"`
	UserID      int64     `gorm:"column:id_user;not null;index"`
	LastUpdate  time.Time `gorm:"column:last_update;not null"`
}

func (LoginAttempt) TableName() string { return "login_attempts" }

func (x *UserType) RecordID() int64 { return x.ID }
func (x *UserType) SetRecordID(id int64) { x.ID = id }
func (x *UserType) LastUpdated() time.Time { return x.LastUpdate }
func (x *UserType) SetLastUpdated(t time.Time) { x.LastUpdate = t }
func (x *User) RecordID() int64 { return x.ID }
func (x *User) SetRecordID(id int64) { x.ID = id }
func (x *User) LastUpdated() time.Time { return x.LastUpdate }
func (x *User) SetLastUpdated(t time.Time) { x.LastUpdate = t }
func (x *Session) RecordID() int64 { return x.ID }
func (x *Session) SetRecordID(id int64) { x.ID = id }
func (x *Session) LastUpdated() time.Time { return x.LastUpdate }
func (x *Session) SetLastUpdated(t time.Time) { x.LastUpdate = t }
func (x *LoginAttempt) RecordID() int64 { return x.ID }
func (x *LoginAttempt) SetRecordID(id int64) { x.ID = id }
func (x *LoginAttempt) LastUpdated() time.Time { return x.LastUpdate }
func (x *LoginAttempt) SetLastUpdated(t time.Time) { x.LastUpdate = t }
