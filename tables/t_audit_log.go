package tables

import "time"

type AuditAction string

const (
	AuditActionReset     AuditAction = "reset"
	AuditActionDelete    AuditAction = "delete"
	AuditActionRemoveAll AuditAction = "remove_all"
	AuditActionWipe      AuditAction = "wipe"
	AuditActionInspect   AuditAction = "inspect"
)

// AuditLog is written to mongo for every privileged override and every inspection.
type AuditLog struct {
	Action    AuditAction `json:"action" bson:"action"`
	Operator  string      `json:"operator" bson:"operator"`
	DealId    string      `json:"deal_id" bson:"deal_id"`
	Code      string      `json:"code" bson:"code"`
	Reason    string      `json:"reason" bson:"reason"`
	Affected  int64       `json:"affected" bson:"affected"`
	Detail    interface{} `json:"detail" bson:"detail"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}

const (
	CollectionNameAuditLog = "discount_code_audit"
)
