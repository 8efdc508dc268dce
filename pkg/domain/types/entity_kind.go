package types

import "fmt"

// EntityKind identifies one of the synchronized record kinds.
type EntityKind string

const (
	EntityKindUserType                EntityKind = "user_type"
	EntityKindReportStatusCode        EntityKind = "report_status_code"
	EntityKindWorkType                EntityKind = "work_type"
	EntityKindEnterprise              EntityKind = "enterprise"
	EntityKindAssignmentStatusCode    EntityKind = "assignment_status_code"
	EntityKindUser                    EntityKind = "user"
	EntityKindSession                 EntityKind = "session"
	EntityKindLoginAttempt            EntityKind = "login_attempt"
	EntityKindReport                  EntityKind = "report"
	EntityKindAssignment              EntityKind = "assignment"
	EntityKindReportStatusHistory     EntityKind = "report_status_history"
	EntityKindAssignmentStatusHistory EntityKind = "assignment_status_history"
)

// AllEntityKinds returns every kind in dependency order: a kind only
// references kinds that appear before it.
func AllEntityKinds() []EntityKind {
	return []EntityKind{
		EntityKindUserType,
		EntityKindReportStatusCode,
		EntityKindWorkType,
		EntityKindEnterprise,
		EntityKindAssignmentStatusCode,
		EntityKindUser,
		EntityKindSession,
		EntityKindLoginAttempt,
		EntityKindReport,
		EntityKindAssignment,
		EntityKindReportStatusHistory,
		EntityKindAssignmentStatusHistory,
	}
}

var collectionNames = map[EntityKind]string{
	EntityKindUserType:                "user_types",
	EntityKindReportStatusCode:        "report_status_codes",
	EntityKindWorkType:                "work_types",
	EntityKindEnterprise:              "enterprises",
	EntityKindAssignmentStatusCode:    "assignment_status_codes",
	EntityKindUser:                    "users",
	EntityKindSession:                 "sessions",
	EntityKindLoginAttempt:            "login_attempts",
	EntityKindReport:                  "reports",
	EntityKindAssignment:              "assignments",
	EntityKindReportStatusHistory:     "report_status_history",
	EntityKindAssignmentStatusHistory: "assignment_status_history",
}

// IsValid checks if the entity kind is known
func (k EntityKind) IsValid() bool {
	_, ok := collectionNames[k]
	return ok
}

// Collection returns the remote collection name of the kind. It is also the
// key used in per-kind run counts.
func (k EntityKind) Collection() string {
	return collectionNames[k]
}

func (k EntityKind) String() string {
	return string(k)
}

// ParseEntityKind parses a string into an EntityKind
func ParseEntityKind(s string) (EntityKind, error) {
	kind := EntityKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid entity kind: %s", s)
	}
	return kind, nil
}
