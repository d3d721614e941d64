package task

import (
	"bytes"
	"fmt"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/config"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/notify"
	"github.com/robfig/cron/v3"
	"github.com/scorpiotzh/toolib"
)

// RunStockReport posts the deals running low on codes on the configured schedule.
func (t *CodeTask) RunStockReport() (*cron.Cron, error) {
	secondParser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.DowOptional | cron.Descriptor)
	c := cron.New(cron.WithParser(secondParser), cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, err := c.AddFunc(config.Cfg.Code.GetStockReportCron(), func() {
		if err := t.doStockReport(); err != nil {
			log.Error("doStockReport err:", err.Error())
		}
	}); err != nil {
		log.Error("RunStockReport err:", err.Error())
		return nil, err
	}
	c.Start()
	return c, nil
}

func (t *CodeTask) doStockReport() error {
	text, err := t.stockReportText()
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	notify.SendLarkTextNotify(config.Cfg.Notify.LarkStockKey, "LowStockDeals", text)
	return nil
}

func (t *CodeTask) stockReportText() (string, error) {
	ctx, cancel := t.withTimeout()
	defer cancel()

	list, err := t.Store.FindLowStockDeals(ctx, config.Cfg.Code.GetLowStockThreshold())
	if err != nil {
		return "", errf("FindLowStockDeals", err)
	}
	log.Infof("doStockReport: %s", toolib.JsonString(list))
	if len(list) == 0 {
		return "", nil
	}

	buf := bytes.NewBufferString("")
	for _, v := range list {
		buf.WriteString(fmt.Sprintf("-DealId: %d Unused: %d/%d\n", v.DealId, v.Unused, v.Total))
	}
	return buf.String(), nil
}
