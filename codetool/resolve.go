package codetool

import (
	"context"
	"errors"
	"fmt"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/config"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/internal/retry"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/notify"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/tables"
	"golang.org/x/sync/errgroup"
	"strings"
)

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// GetAvailableCode returns some unused code of the deal. An exhausted deal is
// OutcomeEmpty with ErrNoCodesAvailable, never an access error.
func (t *Tool) GetAvailableCode(ctx context.Context, dealId interface{}) Result[tables.TableDiscountCode] {
	ref, err := NewDealRef(dealId)
	if err != nil {
		return fail[tables.TableDiscountCode](OutcomeInvalid, err)
	}
	res := t.getAvailable(ctx, ref, nil)
	t.count("get_available", res.Outcome)
	return res
}

func (t *Tool) getAvailable(ctx context.Context, ref DealRef, skip []string) Result[tables.TableDiscountCode] {
	row, err := t.Store.GetUnusedByDealId(ctx, ref.Id, skip)
	if err != nil {
		return fail[tables.TableDiscountCode](OutcomeAccessError, t.accessError("GetAvailableCode", ref.Original, err))
	}
	if row.Id == 0 {
		return fail[tables.TableDiscountCode](OutcomeEmpty, ErrNoCodesAvailable)
	}
	return ok(row)
}

// WaitForAvailableCode retries GetAvailableCode while the deal looks empty, to
// ride out replication lag right after generation.
func (t *Tool) WaitForAvailableCode(ctx context.Context, dealId interface{}) Result[tables.TableDiscountCode] {
	ref, err := NewDealRef(dealId)
	if err != nil {
		return fail[tables.TableDiscountCode](OutcomeInvalid, err)
	}
	var res Result[tables.TableDiscountCode]
	attempts, err := retry.Do(ctx, t.retryPolicy(), func(attempt int) (bool, error) {
		res = t.getAvailable(ctx, ref, nil)
		switch res.Outcome {
		case OutcomeOk:
			return true, nil
		case OutcomeEmpty:
			log.Debug("WaitForAvailableCode empty:", ref.Id, attempt)
			return false, nil
		}
		return false, res.Err
	})
	switch {
	case err == nil:
		return res
	case errors.Is(err, retry.ErrExhausted):
		return fail[tables.TableDiscountCode](OutcomeEmpty, fmt.Errorf("%w after %d attempts: %w", ErrNoCodesAvailable, attempts, err))
	case res.Outcome == OutcomeAccessError:
		return res
	}
	return fail[tables.TableDiscountCode](OutcomeAccessError, t.accessError("WaitForAvailableCode", ref.Original, err))
}

// MarkUsed consumes a code with one conditional update. Only the caller whose
// update hit the row wins. A used code is never overwritten.
func (t *Tool) MarkUsed(ctx context.Context, code string, customer tables.CustomerInfo) (res Result[tables.TableDiscountCode]) {
	defer func() {
		t.count("mark_used", res.Outcome)
	}()

	code = normalizeCode(code)
	if code == "" {
		return fail[tables.TableDiscountCode](OutcomeInvalid, ErrInvalidCode)
	}
	usedAt := t.timeNow()
	affected, err := t.Store.UpdateToUsed(ctx, code, customer, usedAt)
	if err != nil {
		return fail[tables.TableDiscountCode](OutcomeAccessError, t.accessError("MarkUsed", code, err))
	}

	row, err := t.Store.GetDiscountCode(ctx, code)
	if affected == 1 {
		if err != nil || row.Id == 0 {
			log.Warn("MarkUsed read back failed:", code)
			return ok(tables.TableDiscountCode{Code: code, IsUsed: true, UsedAt: &usedAt})
		}
		log.Info("MarkUsed ok:", code, row.DealId)
		return ok(row)
	}

	if err != nil {
		return fail[tables.TableDiscountCode](OutcomeAccessError, t.accessError("MarkUsed", code, err))
	}
	switch {
	case row.Id == 0:
		return fail[tables.TableDiscountCode](OutcomeEmpty, ErrCodeNotFound)
	case row.IsUsed:
		log.Warn("MarkUsed code already used:", code, row.DealId)
		return Result[tables.TableDiscountCode]{Outcome: OutcomeConflict, Value: row, Err: ErrCodeAlreadyUsed}
	}
	return Result[tables.TableDiscountCode]{Outcome: OutcomeConflict, Value: row, Err: ErrCodeStateChanged}
}

// IssueCode picks an unused code of the deal and consumes it, moving on to
// another code when a concurrent redemption wins.
func (t *Tool) IssueCode(ctx context.Context, dealId interface{}, customer tables.CustomerInfo) Result[tables.TableDiscountCode] {
	ref, err := NewDealRef(dealId)
	if err != nil {
		return fail[tables.TableDiscountCode](OutcomeInvalid, err)
	}
	skip := make([]string, 0)
	for i := 0; i <= t.Code.GetMaxRaceRetry(); i++ {
		avail := t.getAvailable(ctx, ref, skip)
		if !avail.Ok() {
			t.count("issue", avail.Outcome)
			return avail
		}
		used := t.MarkUsed(ctx, avail.Value.Code, customer)
		if used.Outcome != OutcomeConflict {
			t.count("issue", used.Outcome)
			return used
		}
		log.Warn("IssueCode lost race:", ref.Id, avail.Value.Code, i)
		skip = append(skip, avail.Value.Code)
	}
	t.count("issue", OutcomeEmpty)
	return fail[tables.TableDiscountCode](OutcomeEmpty, ErrRaceRetryExhausted)
}

// ResetCode puts a used code back into circulation. This overrides the single
// consumption rule, so every successful reset is audited.
func (t *Tool) ResetCode(ctx context.Context, code, operator, reason string) Result[tables.TableDiscountCode] {
	code = normalizeCode(code)
	if code == "" {
		return fail[tables.TableDiscountCode](OutcomeInvalid, ErrInvalidCode)
	}
	if strings.TrimSpace(operator) == "" {
		return fail[tables.TableDiscountCode](OutcomeInvalid, ErrOperatorRequired)
	}
	affected, err := t.Store.UpdateToUnused(ctx, code)
	if err != nil {
		return fail[tables.TableDiscountCode](OutcomeAccessError, t.accessError("ResetCode", code, err))
	}
	row, err := t.Store.GetDiscountCode(ctx, code)
	if err != nil {
		return fail[tables.TableDiscountCode](OutcomeAccessError, t.accessError("ResetCode", code, err))
	}
	if affected == 0 {
		if row.Id == 0 {
			return fail[tables.TableDiscountCode](OutcomeEmpty, ErrCodeNotFound)
		}
		return Result[tables.TableDiscountCode]{Outcome: OutcomeConflict, Value: row, Err: ErrCodeNotUsed}
	}

	log.Warn("ResetCode privileged override:", code, row.DealId, operator, reason)
	notify.SendLarkTextNotify(config.Cfg.Notify.LarkOverrideKey, "ResetCode",
		fmt.Sprintf("code: %s\ndeal: %d\noperator: %s\nreason: %s", code, row.DealId, operator, reason))
	t.audit(ctx, tables.AuditLog{
		Action:   tables.AuditActionReset,
		Operator: operator,
		DealId:   fmt.Sprint(row.DealId),
		Code:     code,
		Reason:   reason,
		Affected: affected,
	})
	t.count("reset", OutcomeOk)
	return ok(row)
}

func (t *Tool) GetCode(ctx context.Context, code string) Result[tables.TableDiscountCode] {
	code = normalizeCode(code)
	if code == "" {
		return fail[tables.TableDiscountCode](OutcomeInvalid, ErrInvalidCode)
	}
	row, err := t.Store.GetDiscountCode(ctx, code)
	if err != nil {
		return fail[tables.TableDiscountCode](OutcomeAccessError, t.accessError("GetCode", code, err))
	}
	if row.Id == 0 {
		return fail[tables.TableDiscountCode](OutcomeEmpty, ErrCodeNotFound)
	}
	return ok(row)
}

type CodeStats struct {
	DealId int64 `json:"deal_id"`
	Total  int64 `json:"total"`
	Used   int64 `json:"used"`
	Unused int64 `json:"unused"`
}

func (t *Tool) CodeStats(ctx context.Context, dealId interface{}) Result[CodeStats] {
	ref, err := NewDealRef(dealId)
	if err != nil {
		return fail[CodeStats](OutcomeInvalid, err)
	}
	stats, err := t.codeStats(ctx, ref.Id)
	if err != nil {
		return fail[CodeStats](OutcomeAccessError, t.accessError("CodeStats", ref.Original, err))
	}
	return ok(stats)
}

func (t *Tool) codeStats(ctx context.Context, dealId int64) (CodeStats, error) {
	stats := CodeStats{DealId: dealId}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Total, err = t.Store.CountByDealId(gCtx, dealId)
		return
	})
	g.Go(func() (err error) {
		stats.Used, err = t.Store.CountByDealIdAndUsed(gCtx, dealId, true)
		return
	})
	if err := g.Wait(); err != nil {
		return stats, err
	}
	stats.Unused = stats.Total - stats.Used
	return stats, nil
}

type CodeList struct {
	CodeStats
	List []tables.TableDiscountCode `json:"list"`
}

// ListCodes pages through a deal's codes, unused first and newest first.
func (t *Tool) ListCodes(ctx context.Context, dealId interface{}, limit, offset int) Result[CodeList] {
	ref, err := NewDealRef(dealId)
	if err != nil {
		return fail[CodeList](OutcomeInvalid, err)
	}
	var res CodeList
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res.CodeStats, err = t.codeStats(gCtx, ref.Id)
		return
	})
	g.Go(func() (err error) {
		res.List, err = t.Store.FindByDealId(gCtx, ref.Id, limit, offset)
		return
	})
	if err := g.Wait(); err != nil {
		return fail[CodeList](OutcomeAccessError, t.accessError("ListCodes", ref.Original, err))
	}
	if res.Total == 0 {
		return Result[CodeList]{Outcome: OutcomeEmpty, Value: res, Err: ErrNoCodesFound}
	}
	return ok(res)
}
