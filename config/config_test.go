package config

import (
	"testing"
	"time"
)

func TestCfgDefaults(t *testing.T) {
	var c CfgServer
	if c.Code.GetBatchSize() != 20 || c.Code.GetMaxQuantity() != 100 || c.Code.GetMaxRaceRetry() != 3 {
		t.Fatal("unexpected code defaults")
	}
	if c.Retry.GetAttempts() != 3 || c.Retry.GetDelay() != 2*time.Second {
		t.Fatal("unexpected retry defaults")
	}
	if c.Code.GetStockReportCron() == "" {
		t.Fatal("empty cron default")
	}
}

func TestCodeBounds(t *testing.T) {
	lengths := map[int]int{0: 8, 1: 8, 5: 8, 6: 6, 12: 12, 16: 16, 17: 8}
	for in, want := range lengths {
		if got := (CfgCode{Length: in}).GetLength(); got != want {
			t.Errorf("GetLength(%d) = %d, want %d", in, got, want)
		}
	}
	quantities := map[int]int{0: 100, -3: 100, 40: 40, 100: 100, 500: 100}
	for in, want := range quantities {
		if got := (CfgCode{MaxQuantity: in}).GetMaxQuantity(); got != want {
			t.Errorf("GetMaxQuantity(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestGetScanLimit(t *testing.T) {
	cases := map[int]int{0: 100, 10: 50, 75: 75, 500: 100}
	for in, want := range cases {
		if got := (CfgInspector{ScanLimit: in}).GetScanLimit(); got != want {
			t.Errorf("GetScanLimit(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestInitCfg(t *testing.T) {
	if err := InitCfg("./config.yaml"); err != nil {
		t.Fatal(err)
	}
	if Cfg.Server.HttpServerAddr == "" {
		t.Fatal("http_server_addr not loaded")
	}
	if Cfg.Code.GetBatchSize() != 20 {
		t.Fatal("batch_size not loaded")
	}
}
