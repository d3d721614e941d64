package task

import (
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/config"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/monitor"
)

func (t *CodeTask) doPushMetrics() error {
	if err := monitor.Push(config.Cfg.Server.PrometheusPushGateway, config.Cfg.Server.Name, config.Cfg.Server.HttpServerAddr); err != nil {
		return errf("monitor.Push", err)
	}
	return nil
}
