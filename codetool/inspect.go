package codetool

import (
	"context"
	"errors"
	"fmt"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/internal/retry"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/monitor"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/tables"
	"strconv"
	"strings"
	"time"
)

type Strategy string

const (
	StrategyExactNormalized Strategy = "exact_normalized"
	StrategyExactOriginal   Strategy = "exact_original"
	StrategyExactString     Strategy = "exact_string"
	StrategyManualScan      Strategy = "manual_scan"
)

type Attempt struct {
	Strategy Strategy      `json:"strategy"`
	Skipped  bool          `json:"skipped"`
	Rows     int           `json:"rows"`
	Err      string        `json:"err,omitempty"`
	Duration time.Duration `json:"duration"`
}

type InspectionResult struct {
	Outcome   Outcome                  `json:"outcome"`
	Err       error                    `json:"-"`
	Deal      DealRef                  `json:"deal"`
	QueryKind tables.DealIdKind        `json:"query_kind"`
	Strategy  Strategy                 `json:"strategy,omitempty"`
	Rows      []tables.RawDiscountCode `json:"rows"`
	Unused    int                      `json:"unused"`
	Attempts  []Attempt                `json:"attempts"`
	Report    *Report                  `json:"report,omitempty"`
}

type strategy struct {
	name Strategy
	skip bool
	run  func(ctx context.Context) ([]tables.RawDiscountCode, error)
}

// Inspect explains why a deal has no codes. The table is probed first and an
// unreachable table ends the inspection. Strategy errors only move on to the next
// strategy. It never writes to the table.
func (t *Tool) Inspect(ctx context.Context, dealId interface{}) (res InspectionResult) {
	res.Outcome = OutcomeEmpty
	res.QueryKind = tables.KindOf(dealId)
	ref, err := NewDealRef(dealId)
	res.Deal = ref
	if err != nil {
		res.Outcome, res.Err = OutcomeInvalid, err
		return
	}
	defer func() {
		t.count("inspect", res.Outcome)
		t.audit(ctx, tables.AuditLog{
			Action:   tables.AuditActionInspect,
			DealId:   ref.String(),
			Affected: int64(len(res.Rows)),
			Detail:   res.Summary(),
		})
	}()

	total, err := t.Store.CountDiscountCodes(ctx)
	if err != nil {
		res.Outcome, res.Err = OutcomeAccessError, t.accessError("Inspect", ref.Original, err)
		return
	}

	var scanned []tables.RawDiscountCode
	scanLimit := t.Inspector.GetScanLimit()
	strategies := []strategy{
		{name: StrategyExactNormalized, run: func(ctx context.Context) ([]tables.RawDiscountCode, error) {
			return t.Store.FindRawByDealId(ctx, ref.Id)
		}},
		{name: StrategyExactOriginal, skip: !originalDiffers(ref), run: func(ctx context.Context) ([]tables.RawDiscountCode, error) {
			return t.Store.FindRawByDealId(ctx, ref.Original)
		}},
		{name: StrategyExactString, run: func(ctx context.Context) ([]tables.RawDiscountCode, error) {
			return t.Store.FindRawByDealId(ctx, ref.String())
		}},
		{name: StrategyManualScan, run: func(ctx context.Context) ([]tables.RawDiscountCode, error) {
			rows, err := t.Store.ScanRaw(ctx, scanLimit)
			if err != nil {
				return nil, err
			}
			scanned = rows
			return matchRows(rows, ref), nil
		}},
	}

	ran, failed := 0, 0
	for _, s := range strategies {
		if s.skip {
			res.Attempts = append(res.Attempts, Attempt{Strategy: s.name, Skipped: true})
			continue
		}
		ran++
		start := time.Now()
		rows, err := s.run(ctx)
		attempt := Attempt{Strategy: s.name, Rows: len(rows), Duration: time.Since(start)}
		if err != nil {
			failed++
			attempt.Err = err.Error()
			res.Attempts = append(res.Attempts, attempt)
			log.Warn("Inspect strategy err:", s.name, err.Error(), ref.Original)
			continue
		}
		res.Attempts = append(res.Attempts, attempt)
		monitor.InspectStrategySummary.WithLabelValues(string(s.name), strconv.FormatBool(len(rows) > 0)).Observe(attempt.Duration.Seconds())
		if s.name == StrategyManualScan {
			res.Report = t.buildReport(ref, res.QueryKind, total, scanLimit, scanned, rows)
		}
		if len(rows) > 0 {
			res.Outcome, res.Strategy, res.Rows = OutcomeOk, s.name, rows
			for _, row := range rows {
				if !row.IsUsed() {
					res.Unused++
				}
			}
			break
		}
	}

	switch {
	case res.Outcome == OutcomeOk:
		if res.Report != nil && res.Report.TypeMismatch {
			log.Warn("Inspect type mismatch:", ref.Original, res.QueryKind, res.Report.StoredKinds)
		}
	case ran > 0 && failed == ran:
		res.Outcome = OutcomeAccessError
		res.Err = t.accessError("Inspect", ref.Original, errors.New("every inspection strategy failed"))
	default:
		res.Err = ErrNoCodesFound
	}
	log.Info("Inspect:", ref.Original, res.Outcome, res.Strategy, len(res.Rows))
	return
}

// InspectWithRetry repeats an empty inspection before reporting it, so that rows
// still replicating are not reported as missing.
func (t *Tool) InspectWithRetry(ctx context.Context, dealId interface{}) InspectionResult {
	var res InspectionResult
	attempts, err := retry.Do(ctx, t.retryPolicy(), func(attempt int) (bool, error) {
		res = t.Inspect(ctx, dealId)
		return res.Outcome != OutcomeEmpty, nil
	})
	if errors.Is(err, retry.ErrExhausted) {
		res.Err = fmt.Errorf("%w after %d attempts: %w", ErrNoCodesFound, attempts, err)
	} else if err != nil && res.Outcome == OutcomeEmpty {
		res.Outcome, res.Err = OutcomeAccessError, fmt.Errorf("%w: %w", ErrAccess, err)
	}
	return res
}

// originalDiffers reports whether the caller's identifier is numeric in its own
// right but not written the way the normalized id is.
func originalDiffers(ref DealRef) bool {
	switch tables.KindOf(ref.Original) {
	case tables.DealIdKindNumber:
	case tables.DealIdKindString:
		if _, err := strconv.ParseFloat(strings.TrimSpace(tables.ValueString(ref.Original)), 64); err != nil {
			return false
		}
	default:
		return false
	}
	return strings.TrimSpace(tables.ValueString(ref.Original)) != ref.String()
}

// matchRows compares stored deal ids in memory against the normalized id and the
// original identifier, independent of the stored type.
func matchRows(rows []tables.RawDiscountCode, ref DealRef) []tables.RawDiscountCode {
	normalized := ref.String()
	original := strings.TrimSpace(tables.ValueString(ref.Original))
	res := make([]tables.RawDiscountCode, 0)
	for _, row := range rows {
		stored := strings.TrimSpace(row.DealIdString())
		if stored == "" {
			continue
		}
		if stored == normalized || stored == original {
			res = append(res, row)
			continue
		}
		if tables.KindOf(row.DealIdValue()) == tables.DealIdKindNumber {
			if f, err := strconv.ParseFloat(stored, 64); err == nil && f == float64(ref.Id) {
				res = append(res, row)
			}
		}
	}
	return res
}

func (r InspectionResult) Summary() map[string]interface{} {
	summary := map[string]interface{}{
		"outcome":    r.Outcome.String(),
		"query_kind": string(r.QueryKind),
		"strategy":   string(r.Strategy),
		"rows":       len(r.Rows),
		"unused":     r.Unused,
	}
	attempts := make([]string, 0, len(r.Attempts))
	for _, a := range r.Attempts {
		switch {
		case a.Skipped:
			attempts = append(attempts, fmt.Sprintf("%s:skipped", a.Strategy))
		case a.Err != "":
			attempts = append(attempts, fmt.Sprintf("%s:error", a.Strategy))
		default:
			attempts = append(attempts, fmt.Sprintf("%s:%d", a.Strategy, a.Rows))
		}
	}
	summary["attempts"] = attempts
	if r.Report != nil {
		summary["diagnosis"] = string(r.Report.Diagnosis)
		summary["type_mismatch"] = r.Report.TypeMismatch
		summary["total_rows"] = r.Report.TotalRows
	}
	return summary
}
