package codetool

import (
	"context"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/tables"
)

func (t *Tool) RemoveCode(ctx context.Context, code, operator string) Result[int64] {
	code = normalizeCode(code)
	if code == "" {
		return fail[int64](OutcomeInvalid, ErrInvalidCode)
	}
	affected, err := t.Store.DeleteByCode(ctx, code)
	if err != nil {
		return fail[int64](OutcomeAccessError, t.accessError("RemoveCode", code, err))
	}
	if affected == 0 {
		return Result[int64]{Outcome: OutcomeEmpty, Err: ErrCodeNotFound}
	}
	log.Warn("RemoveCode:", code, operator)
	t.audit(ctx, tables.AuditLog{
		Action:   tables.AuditActionDelete,
		Operator: operator,
		Code:     code,
		Affected: affected,
	})
	t.count("remove", OutcomeOk)
	return ok(affected)
}

// RemoveAll deletes the codes of one deal. A nil deal id wipes the whole table,
// which is only allowed when code.allow_wipe is set.
func (t *Tool) RemoveAll(ctx context.Context, dealId interface{}, operator string) Result[int64] {
	if dealId == nil {
		if !t.Code.AllowWipe {
			return fail[int64](OutcomeInvalid, ErrWipeDisabled)
		}
		affected, err := t.Store.DeleteAllDiscountCodes(ctx)
		if err != nil {
			return fail[int64](OutcomeAccessError, t.accessError("RemoveAll", "wipe", err))
		}
		log.Warn("RemoveAll wipe:", affected, operator)
		t.audit(ctx, tables.AuditLog{
			Action:   tables.AuditActionWipe,
			Operator: operator,
			Affected: affected,
		})
		t.count("wipe", OutcomeOk)
		return ok(affected)
	}

	ref, err := NewDealRef(dealId)
	if err != nil {
		return fail[int64](OutcomeInvalid, err)
	}
	affected, err := t.Store.DeleteByDealId(ctx, ref.Id)
	if err != nil {
		return fail[int64](OutcomeAccessError, t.accessError("RemoveAll", ref.Original, err))
	}
	log.Warn("RemoveAll:", ref.Id, affected, operator)
	t.audit(ctx, tables.AuditLog{
		Action:   tables.AuditActionRemoveAll,
		Operator: operator,
		DealId:   ref.String(),
		Affected: affected,
	})
	t.count("remove_all", OutcomeOk)
	return ok(affected)
}
