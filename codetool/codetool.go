package codetool

import (
	"context"
	"fmt"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/config"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/internal/retry"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/monitor"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/notify"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/tables"
	"github.com/scorpiotzh/mylog"
	"time"
)

var log = mylog.NewLogger("codetool", mylog.LevelDebug)

// Store is the data access the tool needs. *dao.DbDao implements it.
type Store interface {
	CreateDiscountCodes(ctx context.Context, list []tables.TableDiscountCode) error
	CountDiscountCodes(ctx context.Context) (int64, error)
	CountByDealId(ctx context.Context, dealId int64) (int64, error)
	CountByDealIdAndUsed(ctx context.Context, dealId int64, isUsed bool) (int64, error)
	GetUnusedByDealId(ctx context.Context, dealId int64, skip []string) (tables.TableDiscountCode, error)
	GetDiscountCode(ctx context.Context, code string) (tables.TableDiscountCode, error)
	UpdateToUsed(ctx context.Context, code string, customer tables.CustomerInfo, usedAt time.Time) (int64, error)
	UpdateToUnused(ctx context.Context, code string) (int64, error)
	FindRawByDealId(ctx context.Context, value interface{}) ([]tables.RawDiscountCode, error)
	ScanRaw(ctx context.Context, limit int) ([]tables.RawDiscountCode, error)
	FindByDealId(ctx context.Context, dealId int64, limit, offset int) ([]tables.TableDiscountCode, error)
	DeleteByCode(ctx context.Context, code string) (int64, error)
	DeleteByDealId(ctx context.Context, dealId int64) (int64, error)
	DeleteAllDiscountCodes(ctx context.Context) (int64, error)
}

type AuditSink interface {
	WriteAudit(ctx context.Context, entry tables.AuditLog) error
}

// Locker serializes generation runs of one deal.
type Locker interface {
	LockGenerate(ctx context.Context, dealId int64) error
	UnLockGenerate(dealId int64) error
}

type Tool struct {
	Store     Store
	Audit     AuditSink
	Locker    Locker
	Code      config.CfgCode
	Retry     config.CfgRetry
	Inspector config.CfgInspector

	now func() time.Time
}

func NewTool(store Store, cfg *config.CfgServer) *Tool {
	return &Tool{
		Store:     store,
		Code:      cfg.Code,
		Retry:     cfg.Retry,
		Inspector: cfg.Inspector,
	}
}

func (t *Tool) timeNow() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

func (t *Tool) retryPolicy() retry.Policy {
	return retry.Policy{
		Attempts: t.Retry.GetAttempts(),
		Delay:    t.Retry.GetDelay(),
		Linear:   t.Retry.Linear,
	}
}

// accessError logs a failed store call and turns it into an ErrAccess error.
func (t *Tool) accessError(op string, input interface{}, err error) error {
	log.Error(op, " err:", err.Error(), input)
	notify.SendLarkErrNotify(op, err.Error())
	monitor.CodeCounter.WithLabelValues(op, OutcomeAccessError.String()).Inc()
	return fmt.Errorf("%w: %s: %w", ErrAccess, op, err)
}

func (t *Tool) count(op string, o Outcome) {
	monitor.CodeCounter.WithLabelValues(op, o.String()).Inc()
}

func (t *Tool) audit(ctx context.Context, entry tables.AuditLog) {
	if t.Audit == nil {
		return
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = t.timeNow()
	}
	if err := t.Audit.WriteAudit(ctx, entry); err != nil {
		log.Error("WriteAudit err:", err.Error(), entry.Action, entry.Code, entry.DealId)
	}
}
