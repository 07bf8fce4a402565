package domain

import "time"

// AuditAction names an identity operation recorded in the audit trail.
type AuditAction string

const (
	AuditLogin    AuditAction = "login"
	AuditRegister AuditAction = "register"
	AuditConfirm  AuditAction = "confirm"
	AuditDispatch AuditAction = "dispatch"
)

// AuditEvent records the outcome of one identity operation.
type AuditEvent struct {
	Action    AuditAction
	Username  string
	Success   bool
	Message   string
	Timestamp time.Time
}
