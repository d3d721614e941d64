package codetool

import (
	"fmt"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/tables"
	"github.com/olekukonko/tablewriter"
	"io"
	"sort"
	"strconv"
	"strings"
)

type Diagnosis string

const (
	DiagnosisNoCodes        Diagnosis = "no_codes"
	DiagnosisOtherDealsOnly Diagnosis = "other_deals_only"
	DiagnosisTypeMismatch   Diagnosis = "type_mismatch"
	DiagnosisAllUsed        Diagnosis = "all_used"
	DiagnosisFound          Diagnosis = "found"
)

type DealIdSeen struct {
	Value string              `json:"value"`
	Kinds []tables.DealIdKind `json:"kinds"`
	Rows  int                 `json:"rows"`
}

type Report struct {
	TotalRows       int64                    `json:"total_rows"`
	ScanLimit       int                      `json:"scan_limit"`
	ScannedRows     int                      `json:"scanned_rows"`
	QueryKind       tables.DealIdKind        `json:"query_kind"`
	DistinctDealIds []DealIdSeen             `json:"distinct_deal_ids"`
	StoredKinds     []tables.DealIdKind      `json:"stored_kinds"`
	Samples         []tables.RawDiscountCode `json:"samples"`
	Matches         int                      `json:"matches"`
	UnusedMatches   int                      `json:"unused_matches"`
	TypeMismatch    bool                     `json:"type_mismatch"`
	Diagnosis       Diagnosis                `json:"diagnosis"`
}

func (t *Tool) buildReport(ref DealRef, queryKind tables.DealIdKind, total int64, scanLimit int, scanned, matches []tables.RawDiscountCode) *Report {
	report := &Report{
		TotalRows:   total,
		ScanLimit:   scanLimit,
		ScannedRows: len(scanned),
		QueryKind:   queryKind,
		Matches:     len(matches),
	}

	seen := make(map[string]*DealIdSeen)
	storedKinds := make(map[tables.DealIdKind]struct{})
	for _, row := range scanned {
		value, kind := row.DealIdString(), row.DealIdKind()
		storedKinds[kind] = struct{}{}
		item, ok := seen[value]
		if !ok {
			item = &DealIdSeen{Value: value}
			seen[value] = item
		}
		item.Rows++
		if !hasKind(item.Kinds, kind) {
			item.Kinds = append(item.Kinds, kind)
		}
	}
	for _, v := range seen {
		report.DistinctDealIds = append(report.DistinctDealIds, *v)
	}
	sort.Slice(report.DistinctDealIds, func(i, j int) bool {
		return lessDealId(report.DistinctDealIds[i].Value, report.DistinctDealIds[j].Value)
	})
	for k := range storedKinds {
		report.StoredKinds = append(report.StoredKinds, k)
	}
	sort.Slice(report.StoredKinds, func(i, j int) bool {
		return report.StoredKinds[i] < report.StoredKinds[j]
	})

	for _, row := range matches {
		if row.DealIdKind() != queryKind {
			report.TypeMismatch = true
		}
		if !row.IsUsed() {
			report.UnusedMatches++
		}
	}

	sampleSize := t.Inspector.GetSampleSize()
	report.Samples = append(report.Samples, head(matches, sampleSize)...)
	if len(report.Samples) < sampleSize {
		for _, row := range scanned {
			if len(report.Samples) >= sampleSize {
				break
			}
			if !containsRow(report.Samples, row) {
				report.Samples = append(report.Samples, row)
			}
		}
	}

	switch {
	case total == 0:
		report.Diagnosis = DiagnosisNoCodes
	case report.Matches == 0:
		report.Diagnosis = DiagnosisOtherDealsOnly
	case report.TypeMismatch:
		report.Diagnosis = DiagnosisTypeMismatch
	case report.UnusedMatches == 0:
		report.Diagnosis = DiagnosisAllUsed
	default:
		report.Diagnosis = DiagnosisFound
	}
	log.Info("buildReport:", ref.Id, report.Diagnosis, report.TotalRows, report.ScannedRows, report.Matches)
	return report
}

func hasKind(kinds []tables.DealIdKind, kind tables.DealIdKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func head(rows []tables.RawDiscountCode, n int) []tables.RawDiscountCode {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

func containsRow(rows []tables.RawDiscountCode, row tables.RawDiscountCode) bool {
	for _, r := range rows {
		if r.Code() == row.Code() {
			return true
		}
	}
	return false
}

func lessDealId(a, b string) bool {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil && ai != bi {
		return ai < bi
	}
	return a < b
}

// Render writes the inspection as plain text tables.
func (r InspectionResult) Render(w io.Writer) error {
	fmt.Fprintf(w, "deal: %v (normalized %d, %s)\noutcome: %s\n", r.Deal.Original, r.Deal.Id, r.QueryKind, r.Outcome)
	if r.Err != nil {
		fmt.Fprintf(w, "error: %s\n", r.Err.Error())
	}

	attempts := tablewriter.NewWriter(w)
	attempts.Header("strategy", "rows", "duration", "error")
	for _, a := range r.Attempts {
		rows := strconv.Itoa(a.Rows)
		if a.Skipped {
			rows = "skipped"
		}
		if err := attempts.Append([]string{string(a.Strategy), rows, a.Duration.String(), a.Err}); err != nil {
			return err
		}
	}
	if err := attempts.Render(); err != nil {
		return err
	}

	if len(r.Rows) > 0 {
		fmt.Fprintf(w, "found by %s:\n", r.Strategy)
		if err := renderRows(w, r.Rows); err != nil {
			return err
		}
	}
	if r.Report == nil {
		return nil
	}

	rep := r.Report
	fmt.Fprintf(w, "diagnosis: %s\ntotal rows: %d, scanned: %d (limit %d), matches: %d, unused: %d, type mismatch: %v\n",
		rep.Diagnosis, rep.TotalRows, rep.ScannedRows, rep.ScanLimit, rep.Matches, rep.UnusedMatches, rep.TypeMismatch)
	ids := tablewriter.NewWriter(w)
	ids.Header("deal_id", "stored as", "rows")
	for _, v := range rep.DistinctDealIds {
		kinds := make([]string, 0, len(v.Kinds))
		for _, k := range v.Kinds {
			kinds = append(kinds, string(k))
		}
		if err := ids.Append([]string{v.Value, strings.Join(kinds, ","), strconv.Itoa(v.Rows)}); err != nil {
			return err
		}
	}
	if err := ids.Render(); err != nil {
		return err
	}
	if len(rep.Samples) > 0 {
		fmt.Fprintln(w, "samples:")
		return renderRows(w, rep.Samples)
	}
	return nil
}

func renderRows(w io.Writer, rows []tables.RawDiscountCode) error {
	table := tablewriter.NewWriter(w)
	table.Header("code", "deal_id", "stored as", "is_used", "batch_no")
	for _, row := range rows {
		if err := table.Append([]string{
			row.Code(),
			row.DealIdString(),
			string(row.DealIdKind()),
			strconv.FormatBool(row.IsUsed()),
			row.BatchNo(),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}
