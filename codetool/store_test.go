package codetool

import (
	"context"
	"errors"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/config"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/tables"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

var errStore = errors.New("connection refused")

type memRow struct {
	dealId interface{}
	row    tables.TableDiscountCode
}

// memStore behaves like a table whose deal_id column is an integer: equality
// lookups coerce the query value to an integer and only match integer rows.
// Rows added with a string deal id stand for legacy data.
type memStore struct {
	mu     sync.Mutex
	nextId uint64
	rows   []*memRow

	createCalls   int
	failChunks    map[int]bool
	storeAsString bool
	driverTypes   bool
	errCount      error
	errRaw        error
	errScan       error
	errUnused     error
	raceCodes     map[string]bool
	unusedMisses  int
	scanCalls     int
}

func newMemStore() *memStore {
	return &memStore{failChunks: map[int]bool{}, raceCodes: map[string]bool{}}
}

func (m *memStore) add(dealId interface{}, code string, used bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextId++
	row := tables.TableDiscountCode{Id: m.nextId, Code: code, IsUsed: used}
	if id, ok := dealId.(int64); ok {
		row.DealId = id
	}
	if used {
		now := time.Now()
		row.UsedAt = &now
	}
	m.rows = append(m.rows, &memRow{dealId: dealId, row: row})
}

func intDeal(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int64:
		return val, true
	case float64:
		if val == math.Trunc(val) {
			return int64(val), true
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil && f == math.Trunc(f) {
			return int64(f), true
		}
	}
	return 0, false
}

func (r *memRow) is(dealId int64) bool {
	v, ok := r.dealId.(int64)
	return ok && v == dealId
}

func (r *memRow) raw(driverTypes bool) tables.RawDiscountCode {
	if driverTypes {
		// what go-sql-driver/mysql scans into: tinyint(1) NOT NULL as int8,
		// bigint as int64, varchar as bytes or string
		dealId := r.dealId
		if s, ok := dealId.(string); ok {
			dealId = []byte(s)
		}
		var used int8
		if r.row.IsUsed {
			used = 1
		}
		return tables.RawDiscountCode{
			"id":       r.row.Id,
			"deal_id":  dealId,
			"code":     []byte(r.row.Code),
			"batch_no": r.row.BatchNo,
			"is_used":  used,
		}
	}
	used := int64(0)
	if r.row.IsUsed {
		used = 1
	}
	return tables.RawDiscountCode{
		"id":       r.row.Id,
		"deal_id":  r.dealId,
		"code":     r.row.Code,
		"batch_no": r.row.BatchNo,
		"is_used":  used,
	}
}

func (m *memStore) find(code string) *memRow {
	for _, r := range m.rows {
		if r.row.Code == code {
			return r
		}
	}
	return nil
}

func (m *memStore) CreateDiscountCodes(ctx context.Context, list []tables.TableDiscountCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	call := m.createCalls
	m.createCalls++
	if m.failChunks[call] || m.failChunks[-1] {
		return errStore
	}
	for _, v := range list {
		if m.find(v.Code) != nil {
			return errors.New("Duplicate entry for key uk_code")
		}
	}
	for _, v := range list {
		m.nextId++
		v.Id = m.nextId
		var dealId interface{} = v.DealId
		if m.storeAsString {
			dealId = strconv.FormatInt(v.DealId, 10)
		}
		m.rows = append(m.rows, &memRow{dealId: dealId, row: v})
	}
	return nil
}

func (m *memStore) CountDiscountCodes(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errCount != nil {
		return 0, m.errCount
	}
	return int64(len(m.rows)), nil
}

func (m *memStore) CountByDealId(ctx context.Context, dealId int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errCount != nil {
		return 0, m.errCount
	}
	var n int64
	for _, r := range m.rows {
		if r.is(dealId) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountByDealIdAndUsed(ctx context.Context, dealId int64, isUsed bool) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errCount != nil {
		return 0, m.errCount
	}
	var n int64
	for _, r := range m.rows {
		if r.is(dealId) && r.row.IsUsed == isUsed {
			n++
		}
	}
	return n, nil
}

func (m *memStore) GetUnusedByDealId(ctx context.Context, dealId int64, skip []string) (tables.TableDiscountCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errUnused != nil {
		return tables.TableDiscountCode{}, m.errUnused
	}
	if m.unusedMisses > 0 {
		m.unusedMisses--
		return tables.TableDiscountCode{}, nil
	}
	for _, r := range m.rows {
		if !r.is(dealId) || r.row.IsUsed {
			continue
		}
		skipped := false
		for _, s := range skip {
			if s == r.row.Code {
				skipped = true
			}
		}
		if !skipped {
			return r.row, nil
		}
	}
	return tables.TableDiscountCode{}, nil
}

func (m *memStore) GetDiscountCode(ctx context.Context, code string) (tables.TableDiscountCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r := m.find(code); r != nil {
		return r.row, nil
	}
	return tables.TableDiscountCode{}, nil
}

func (m *memStore) UpdateToUsed(ctx context.Context, code string, customer tables.CustomerInfo, usedAt time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.find(code)
	if r == nil || r.row.IsUsed {
		return 0, nil
	}
	if m.raceCodes[code] {
		other := "someone else"
		r.row.IsUsed, r.row.UsedAt, r.row.CustomerName = true, &usedAt, &other
		return 0, nil
	}
	r.row.IsUsed = true
	r.row.UsedAt = &usedAt
	cols := customer.Columns()
	r.row.CustomerName, _ = cols["customer_name"].(*string)
	r.row.CustomerEmail, _ = cols["customer_email"].(*string)
	r.row.CustomerPhone, _ = cols["customer_phone"].(*string)
	return 1, nil
}

func (m *memStore) UpdateToUnused(ctx context.Context, code string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.find(code)
	if r == nil || !r.row.IsUsed {
		return 0, nil
	}
	r.row.IsUsed, r.row.UsedAt = false, nil
	r.row.CustomerName, r.row.CustomerEmail, r.row.CustomerPhone = nil, nil, nil
	return 1, nil
}

func (m *memStore) FindRawByDealId(ctx context.Context, value interface{}) ([]tables.RawDiscountCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errRaw != nil {
		return nil, m.errRaw
	}
	res := make([]tables.RawDiscountCode, 0)
	id, ok := intDeal(value)
	if !ok {
		return res, nil
	}
	for _, r := range m.rows {
		if r.is(id) {
			res = append(res, r.raw(m.driverTypes))
		}
	}
	return res, nil
}

func (m *memStore) ScanRaw(ctx context.Context, limit int) ([]tables.RawDiscountCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanCalls++
	if m.errScan != nil {
		return nil, m.errScan
	}
	res := make([]tables.RawDiscountCode, 0)
	for i := len(m.rows) - 1; i >= 0 && len(res) < limit; i-- {
		res = append(res, m.rows[i].raw(m.driverTypes))
	}
	return res, nil
}

func (m *memStore) FindByDealId(ctx context.Context, dealId int64, limit, offset int) ([]tables.TableDiscountCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]tables.TableDiscountCode, 0)
	for _, r := range m.rows {
		if r.is(dealId) {
			list = append(list, r.row)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsUsed != list[j].IsUsed {
			return !list[i].IsUsed
		}
		return list[i].Id > list[j].Id
	})
	if offset >= len(list) {
		return []tables.TableDiscountCode{}, nil
	}
	list = list[offset:]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *memStore) deleteWhere(match func(r *memRow) bool) int64 {
	kept := m.rows[:0]
	var n int64
	for _, r := range m.rows {
		if match(r) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	return n
}

func (m *memStore) DeleteByCode(ctx context.Context, code string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteWhere(func(r *memRow) bool { return r.row.Code == code }), nil
}

func (m *memStore) DeleteByDealId(ctx context.Context, dealId int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteWhere(func(r *memRow) bool { return r.is(dealId) }), nil
}

func (m *memStore) DeleteAllDiscountCodes(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteWhere(func(r *memRow) bool { return true }), nil
}

type memAudit struct {
	mu      sync.Mutex
	entries []tables.AuditLog
}

func (a *memAudit) WriteAudit(ctx context.Context, entry tables.AuditLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
	return nil
}

func (a *memAudit) actions() []tables.AuditAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	res := make([]tables.AuditAction, 0, len(a.entries))
	for _, e := range a.entries {
		res = append(res, e.Action)
	}
	return res
}

type stubLocker struct {
	err      error
	unlocked []int64
}

func (l *stubLocker) LockGenerate(ctx context.Context, dealId int64) error {
	return l.err
}

func (l *stubLocker) UnLockGenerate(dealId int64) error {
	l.unlocked = append(l.unlocked, dealId)
	return nil
}

func newTestTool(store *memStore) (*Tool, *memAudit) {
	audit := &memAudit{}
	tool := NewTool(store, &config.CfgServer{
		Retry: config.CfgRetry{Attempts: 3, DelayMs: 1},
	})
	tool.Audit = audit
	return tool, audit
}
