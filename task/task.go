package task

import (
	"context"
	"fmt"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/config"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/dao"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/notify"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/tables"
	"github.com/getsentry/sentry-go"
	"github.com/scorpiotzh/mylog"
	"sync"
	"time"
)

var log = mylog.NewLogger("task", mylog.LevelDebug)

// CodeStore is what the background jobs read.
type CodeStore interface {
	FindUsedWithoutUsedAt(ctx context.Context, limit int) ([]tables.TableDiscountCode, error)
	FindLowStockDeals(ctx context.Context, threshold int64) ([]dao.DealStock, error)
}

type CodeTask struct {
	Ctx   context.Context
	Wg    *sync.WaitGroup
	Store CodeStore
}

func recoverPanic() {
	if r := recover(); r != nil {
		log.Error("task panic:", r)
		sentry.CurrentHub().Recover(r)
		sentry.Flush(time.Second * 2)
	}
}

func (t *CodeTask) runTicker(name string, interval time.Duration, fn func() error) {
	ticker := time.NewTicker(interval)
	t.Wg.Add(1)
	go func() {
		defer recoverPanic()
		defer t.Wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				log.Debug(name, " start ...")
				if err := fn(); err != nil {
					log.Error(name, " err:", err.Error())
					notify.SendLarkTextNotify(config.Cfg.Notify.LarkErrorKey, name, err.Error())
				}
				log.Debug(name, " end ...")
			case <-t.Ctx.Done():
				log.Debug("task ", name, " done")
				return
			}
		}
	}()
}

// RunCheckConsumed scans for used codes without a consumption time.
func (t *CodeTask) RunCheckConsumed() {
	t.runTicker("doCheckConsumed", time.Minute*5, t.doCheckConsumed)
}

// RunPushMetrics pushes the registry to the gateway when one is configured.
func (t *CodeTask) RunPushMetrics() {
	if config.Cfg.Server.PrometheusPushGateway == "" {
		log.Warn("RunPushMetrics: prometheus_push_gateway is empty")
		return
	}
	t.runTicker("doPushMetrics", time.Minute, t.doPushMetrics)
}

func (t *CodeTask) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(t.Ctx, time.Minute)
}

func errf(op string, err error) error {
	return fmt.Errorf("%s err: %s", op, err.Error())
}
