package codetool

import (
	"context"
	"errors"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/tables"
	"testing"
	"time"
)

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	tool, _ := newTestTool(store)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tool.now = func() time.Time { return fixed }

	gen := tool.Generate(ctx, 501, 5)
	if !gen.Success() || len(gen.Codes) != 5 {
		t.Fatalf("generate: %+v", gen)
	}

	avail := tool.GetAvailableCode(ctx, 501)
	if !avail.Ok() || !contains(gen.Codes, avail.Value.Code) {
		t.Fatalf("available: %s %+v", avail, avail.Value)
	}

	used := tool.MarkUsed(ctx, avail.Value.Code, tables.CustomerInfo{Name: "A", Email: "a@x.com", Phone: "000"})
	if !used.Ok() {
		t.Fatalf("mark used: %s", used)
	}
	row := used.Value
	if !row.IsUsed || row.UsedAt == nil || !row.UsedAt.Equal(fixed) || !row.Consumed() {
		t.Fatalf("consumption not recorded: %+v", row)
	}
	if *row.CustomerName != "A" || *row.CustomerEmail != "a@x.com" || *row.CustomerPhone != "000" {
		t.Fatalf("customer fields: %+v", row)
	}

	next := tool.GetAvailableCode(ctx, "501")
	if !next.Ok() || next.Value.Code == avail.Value.Code || !contains(gen.Codes, next.Value.Code) {
		t.Fatalf("second available: %s %+v", next, next.Value)
	}
}

func TestExhaustion(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	tool, _ := newTestTool(store)
	gen := tool.Generate(ctx, 900, 1)
	if !gen.Success() {
		t.Fatalf("generate: %+v", gen)
	}
	if res := tool.MarkUsed(ctx, gen.Codes[0], tables.CustomerInfo{Name: "B"}); !res.Ok() {
		t.Fatalf("mark used: %s", res)
	}
	res := tool.GetAvailableCode(ctx, 900)
	if res.Outcome != OutcomeEmpty || !errors.Is(res.Err, ErrNoCodesAvailable) || errors.Is(res.Err, ErrAccess) {
		t.Fatalf("want empty, got %s", res)
	}
}

func TestMarkUsedTwice(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	tool, _ := newTestTool(store)
	store.add(int64(5), "AAAA1111", false)

	first := tool.MarkUsed(ctx, "aaaa1111", tables.CustomerInfo{Name: "first", Email: "f@x.com"})
	if !first.Ok() {
		t.Fatalf("first: %s", first)
	}
	second := tool.MarkUsed(ctx, "AAAA1111", tables.CustomerInfo{Name: "second", Email: "s@x.com"})
	if second.Outcome != OutcomeConflict || !errors.Is(second.Err, ErrCodeAlreadyUsed) {
		t.Fatalf("second: %s", second)
	}
	row := store.find("AAAA1111").row
	if *row.CustomerName != "first" || *row.CustomerEmail != "f@x.com" {
		t.Fatalf("customer overwritten: %+v", row)
	}
	if !row.UsedAt.Equal(*first.Value.UsedAt) {
		t.Fatal("used_at overwritten")
	}
}

func TestMarkUsedUnknownCode(t *testing.T) {
	store := newMemStore()
	tool, _ := newTestTool(store)
	res := tool.MarkUsed(context.Background(), "NOPE0000", tables.CustomerInfo{})
	if res.Outcome != OutcomeEmpty || !errors.Is(res.Err, ErrCodeNotFound) {
		t.Fatalf("got %s", res)
	}
	res = tool.MarkUsed(context.Background(), "  ", tables.CustomerInfo{})
	if res.Outcome != OutcomeInvalid {
		t.Fatalf("got %s", res)
	}
}

func TestGetAvailableCodeAccessError(t *testing.T) {
	store := newMemStore()
	store.errUnused = errStore
	tool, _ := newTestTool(store)
	res := tool.GetAvailableCode(context.Background(), 1)
	if res.Outcome != OutcomeAccessError || !errors.Is(res.Err, ErrAccess) || !errors.Is(res.Err, errStore) {
		t.Fatalf("got %s", res)
	}
	if res := tool.GetAvailableCode(context.Background(), "none"); res.Outcome != OutcomeInvalid {
		t.Fatalf("got %s", res)
	}
}

func TestIssueCodeRetriesLostRace(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.add(int64(7), "RACE0001", false)
	store.add(int64(7), "FREE0002", false)
	store.raceCodes["RACE0001"] = true
	tool, _ := newTestTool(store)

	res := tool.IssueCode(ctx, 7, tables.CustomerInfo{Name: "C"})
	if !res.Ok() || res.Value.Code != "FREE0002" {
		t.Fatalf("got %s %+v", res, res.Value)
	}
}

func TestIssueCodeRaceExhausted(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	for _, c := range []string{"RACE0001", "RACE0002", "RACE0003", "RACE0004", "RACE0005"} {
		store.add(int64(7), c, false)
		store.raceCodes[c] = true
	}
	tool, _ := newTestTool(store)
	tool.Code.MaxRaceRetry = 2

	res := tool.IssueCode(ctx, 7, tables.CustomerInfo{Name: "C"})
	if res.Outcome != OutcomeEmpty || !errors.Is(res.Err, ErrRaceRetryExhausted) || !errors.Is(res.Err, ErrNoCodesAvailable) {
		t.Fatalf("got %s", res)
	}
	lost := 0
	for _, r := range store.rows {
		if r.row.IsUsed {
			lost++
		}
	}
	if lost != 3 {
		t.Fatalf("want 3 attempts, got %d", lost)
	}
}

func TestWaitForAvailableCode(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.add(int64(8), "LAGG0001", false)
	store.unusedMisses = 2
	tool, _ := newTestTool(store)

	res := tool.WaitForAvailableCode(ctx, 8)
	if !res.Ok() || res.Value.Code != "LAGG0001" {
		t.Fatalf("got %s", res)
	}

	store.unusedMisses = 10
	res = tool.WaitForAvailableCode(ctx, 8)
	if res.Outcome != OutcomeEmpty || !errors.Is(res.Err, ErrNoCodesAvailable) {
		t.Fatalf("got %s", res)
	}
	if store.unusedMisses != 7 {
		t.Fatalf("want exactly 3 attempts, %d misses left", store.unusedMisses)
	}
}

func TestResetCode(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.add(int64(9), "USED0001", true)
	store.add(int64(9), "FREE0001", false)
	tool, audit := newTestTool(store)

	if res := tool.ResetCode(ctx, "USED0001", "", "typo"); res.Outcome != OutcomeInvalid || !errors.Is(res.Err, ErrOperatorRequired) {
		t.Fatalf("got %s", res)
	}
	res := tool.ResetCode(ctx, "USED0001", "ops", "refund")
	if !res.Ok() || res.Value.IsUsed || res.Value.UsedAt != nil {
		t.Fatalf("got %s %+v", res, res.Value)
	}
	if res := tool.ResetCode(ctx, "FREE0001", "ops", "refund"); res.Outcome != OutcomeConflict || !errors.Is(res.Err, ErrCodeNotUsed) {
		t.Fatalf("got %s", res)
	}
	if res := tool.ResetCode(ctx, "GONE0001", "ops", "refund"); res.Outcome != OutcomeEmpty {
		t.Fatalf("got %s", res)
	}
	actions := audit.actions()
	if len(actions) != 1 || actions[0] != tables.AuditActionReset {
		t.Fatalf("audit: %v", actions)
	}
	if audit.entries[0].Operator != "ops" || audit.entries[0].Code != "USED0001" {
		t.Fatalf("audit entry: %+v", audit.entries[0])
	}
}

func TestCodeStatsAndList(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.add(int64(4), "CODE0001", true)
	store.add(int64(4), "CODE0002", false)
	store.add(int64(4), "CODE0003", false)
	store.add(int64(5), "CODE0004", false)
	tool, _ := newTestTool(store)

	stats := tool.CodeStats(ctx, 4)
	if !stats.Ok() || stats.Value.Total != 3 || stats.Value.Used != 1 || stats.Value.Unused != 2 {
		t.Fatalf("stats: %s %+v", stats, stats.Value)
	}

	list := tool.ListCodes(ctx, 4, 2, 0)
	if !list.Ok() || len(list.Value.List) != 2 || list.Value.Total != 3 {
		t.Fatalf("list: %s %+v", list, list.Value)
	}
	if list.Value.List[0].IsUsed || list.Value.List[0].Code != "CODE0003" {
		t.Fatalf("unused newest first: %+v", list.Value.List)
	}
	if res := tool.ListCodes(ctx, 6, 10, 0); res.Outcome != OutcomeEmpty {
		t.Fatalf("got %s", res)
	}

	store.errCount = errStore
	if res := tool.CodeStats(ctx, 4); res.Outcome != OutcomeAccessError {
		t.Fatalf("got %s", res)
	}
}

func TestGetCode(t *testing.T) {
	store := newMemStore()
	store.add(int64(4), "CODE0001", false)
	tool, _ := newTestTool(store)
	if res := tool.GetCode(context.Background(), "code0001"); !res.Ok() || res.Value.DealId != 4 {
		t.Fatalf("got %s", res)
	}
	if res := tool.GetCode(context.Background(), "CODE9999"); res.Outcome != OutcomeEmpty {
		t.Fatalf("got %s", res)
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.add(int64(1), "DEAL1001", false)
	store.add(int64(1), "DEAL1002", true)
	store.add(int64(2), "DEAL2001", false)
	tool, audit := newTestTool(store)

	if res := tool.RemoveAll(ctx, nil, "ops"); res.Outcome != OutcomeInvalid || !errors.Is(res.Err, ErrWipeDisabled) {
		t.Fatalf("wipe without permission: %s", res)
	}
	if len(store.rows) != 3 {
		t.Fatal("rows deleted without permission")
	}

	if res := tool.RemoveCode(ctx, "DEAL2001", "ops"); !res.Ok() || res.Value != 1 {
		t.Fatalf("remove code: %s", res)
	}
	if res := tool.RemoveCode(ctx, "DEAL2001", "ops"); res.Outcome != OutcomeEmpty {
		t.Fatalf("remove missing code: %s", res)
	}
	if res := tool.RemoveAll(ctx, "1", "ops"); !res.Ok() || res.Value != 2 {
		t.Fatalf("remove deal: %s", res)
	}

	store.add(int64(3), "DEAL3001", false)
	tool.Code.AllowWipe = true
	if res := tool.RemoveAll(ctx, nil, "ops"); !res.Ok() || res.Value != 1 || len(store.rows) != 0 {
		t.Fatalf("wipe: %s", res)
	}

	want := []tables.AuditAction{tables.AuditActionDelete, tables.AuditActionRemoveAll, tables.AuditActionWipe}
	got := audit.actions()
	if len(got) != len(want) {
		t.Fatalf("audit: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("audit: %v", got)
		}
	}
}
