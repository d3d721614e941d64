package codetool

import (
	"context"
	"errors"
	"fmt"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/cache"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/monitor"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/tables"
	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
)

type GenerateResult struct {
	Outcome          Outcome  `json:"outcome"`
	Err              error    `json:"-"`
	Deal             DealRef  `json:"deal"`
	BatchNo          string   `json:"batch_no"`
	Codes            []string `json:"codes"`
	Batches          int      `json:"batches"`
	BatchesSucceeded int      `json:"batches_succeeded"`
	Partial          bool     `json:"partial"`
	VerifyCount      int64    `json:"verify_count"`
	VerifyWarning    bool     `json:"verify_warning"`
}

// Success is true when at least one chunk was stored.
func (g GenerateResult) Success() bool {
	return g.BatchesSucceeded > 0
}

const codeAlphabetSize = 36

// codeSpace is the number of distinct codes of the given length, capped at limit.
func codeSpace(length, limit int) int {
	space := 1
	for i := 0; i < length && space < limit; i++ {
		space *= codeAlphabetSize
	}
	if space > limit {
		return limit
	}
	return space
}

// drawCodes returns n distinct codes of the given length from [A-Z0-9].
// n must not exceed the number of distinct codes of that length.
func drawCodes(n, length int) []string {
	set := make(map[string]struct{}, n)
	codes := make([]string, 0, n)
	for len(codes) < n {
		code := random.String(uint8(length), random.Uppercase, random.Numeric)
		if _, ok := set[code]; ok {
			continue
		}
		set[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}

func (t *Tool) Generate(ctx context.Context, dealId interface{}, quantity int) (res GenerateResult) {
	defer func() {
		t.count("generate", res.Outcome)
	}()

	ref, err := NewDealRef(dealId)
	res.Deal = ref
	if err != nil {
		res.Outcome, res.Err = OutcomeInvalid, err
		return
	}
	if maxQty := t.Code.GetMaxQuantity(); quantity < 1 || quantity > maxQty {
		res.Outcome, res.Err = OutcomeInvalid, fmt.Errorf("%w: %d not in [1,%d]", ErrInvalidQuantity, quantity, maxQty)
		return
	}
	if length := t.Code.GetLength(); codeSpace(length, quantity) < quantity {
		res.Outcome, res.Err = OutcomeInvalid, fmt.Errorf("%w: %d codes of length %d", ErrInvalidQuantity, quantity, length)
		return
	}

	if t.Locker != nil {
		lockCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if err := t.Locker.LockGenerate(lockCtx, ref.Id); err != nil {
			if errors.Is(err, cache.ErrDistributedLockPreemption) {
				res.Outcome, res.Err = OutcomeConflict, ErrGenerateInProgress
				return
			}
			res.Outcome, res.Err = OutcomeAccessError, t.accessError("LockGenerate", ref.Id, err)
			return
		}
		defer func() {
			if err := t.Locker.UnLockGenerate(ref.Id); err != nil {
				log.Error("UnLockGenerate err:", err.Error(), ref.Id)
			}
		}()
	}

	res.BatchNo = uuid.NewString()
	codes := drawCodes(quantity, t.Code.GetLength())
	batchSize := t.Code.GetBatchSize()
	var lastErr error
	for start := 0; start < len(codes); start += batchSize {
		end := start + batchSize
		if end > len(codes) {
			end = len(codes)
		}
		chunk := make([]tables.TableDiscountCode, 0, end-start)
		for _, code := range codes[start:end] {
			chunk = append(chunk, tables.TableDiscountCode{
				DealId:  ref.Id,
				Code:    code,
				BatchNo: res.BatchNo,
			})
		}
		res.Batches++
		if err := t.Store.CreateDiscountCodes(ctx, chunk); err != nil {
			log.Error("CreateDiscountCodes err:", err.Error(), ref.Id, res.BatchNo, res.Batches)
			monitor.ChunkFailCounter.Inc()
			lastErr = err
			continue
		}
		res.BatchesSucceeded++
		res.Codes = append(res.Codes, codes[start:end]...)
	}

	if res.BatchesSucceeded == 0 {
		res.Outcome, res.Err = OutcomeAccessError, t.accessError("Generate", ref.Original, lastErr)
		return
	}
	res.Outcome = OutcomeOk
	if res.BatchesSucceeded < res.Batches {
		res.Partial = true
		log.Warn("Generate partial:", ref.Id, res.BatchNo, res.BatchesSucceeded, "/", res.Batches)
	}

	count, err := t.Store.CountByDealId(ctx, ref.Id)
	if err != nil {
		log.Warn("Generate verify err:", err.Error(), ref.Id)
		res.VerifyWarning = true
		return
	}
	res.VerifyCount = count
	if count == 0 {
		log.Warn("Generate verify found no rows, deal id representation may differ:", ref.Original, ref.Id, res.BatchNo)
		res.VerifyWarning = true
	}
	log.Info("Generate ok:", ref.Id, res.BatchNo, len(res.Codes))
	return
}
