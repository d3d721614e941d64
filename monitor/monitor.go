package monitor

import (
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/scorpiotzh/mylog"
)

var (
	log          = mylog.NewLogger("monitor", mylog.LevelDebug)
	PromRegister = prometheus.NewRegistry()

	CodeCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "discount_code",
	}, []string{"op", "outcome"})
	ChunkFailCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "discount_code_chunk_fail",
	})
	InspectStrategySummary = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: "discount_code_inspect_strategy",
	}, []string{"strategy", "found"})
)

func init() {
	PromRegister.MustRegister(CodeCounter, ChunkFailCounter, InspectStrategySummary)
}

func Push(gateway, job, instance string) error {
	if gateway == "" {
		return nil
	}
	if err := push.New(gateway, job).Gatherer(PromRegister).Grouping("instance", instance).Push(); err != nil {
		return fmt.Errorf("push err: %s", err.Error())
	}
	log.Debug("Push ok:", gateway, job)
	return nil
}
