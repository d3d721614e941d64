package task

import (
	"bytes"
	"fmt"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/monitor"
)

const checkConsumedLimit = 50

func (t *CodeTask) doCheckConsumed() error {
	ctx, cancel := t.withTimeout()
	defer cancel()

	list, err := t.Store.FindUsedWithoutUsedAt(ctx, checkConsumedLimit)
	if err != nil {
		return errf("FindUsedWithoutUsedAt", err)
	}
	if len(list) == 0 {
		return nil
	}
	monitor.CodeCounter.WithLabelValues("check_consumed", "inconsistent").Add(float64(len(list)))

	buf := bytes.NewBufferString("")
	for _, v := range list {
		log.Warn("doCheckConsumed used code without used_at:", v.Code, v.DealId)
		buf.WriteString(fmt.Sprintf("-Code: %s DealId: %d\n", v.Code, v.DealId))
	}
	return fmt.Errorf("%d used codes without used_at:\n%s", len(list), buf.String())
}
