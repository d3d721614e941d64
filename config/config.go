package config

import (
	"fmt"
	"github.com/fsnotify/fsnotify"
	"github.com/scorpiotzh/mylog"
	"github.com/scorpiotzh/toolib"
	"time"
)

var (
	Cfg CfgServer
	log = mylog.NewLogger("config", mylog.LevelDebug)
)

const defaultConfigFilePath = "./config/config.yaml"

func InitCfg(configFilePath string) error {
	if configFilePath == "" {
		configFilePath = defaultConfigFilePath
	}
	log.Info("config file：", configFilePath)
	if err := toolib.UnmarshalYamlFile(configFilePath, &Cfg); err != nil {
		return fmt.Errorf("UnmarshalYamlFile err:%s", err.Error())
	}
	log.Info("config file：ok")
	return nil
}

func AddCfgFileWatcher(configFilePath string) (*fsnotify.Watcher, error) {
	if configFilePath == "" {
		configFilePath = defaultConfigFilePath
	}
	return toolib.AddFileWatcher(configFilePath, func() {
		log.Info("update config file：", configFilePath)
		if err := toolib.UnmarshalYamlFile(configFilePath, &Cfg); err != nil {
			log.Error("UnmarshalYamlFile err:", err.Error())
		}
		log.Info("update config file：ok")
	})
}

type DbMysql struct {
	Addr        string `json:"addr" yaml:"addr"`
	User        string `json:"user" yaml:"user"`
	Password    string `json:"password" yaml:"password"`
	DbName      string `json:"db_name" yaml:"db_name"`
	MaxOpenConn int    `json:"max_open_conn" yaml:"max_open_conn"`
	MaxIdleConn int    `json:"max_idle_conn" yaml:"max_idle_conn"`
}

type CfgCode struct {
	Length            int    `json:"length" yaml:"length"`
	BatchSize         int    `json:"batch_size" yaml:"batch_size"`
	MaxQuantity       int    `json:"max_quantity" yaml:"max_quantity"`
	MaxRaceRetry      int    `json:"max_race_retry" yaml:"max_race_retry"`
	AllowWipe         bool   `json:"allow_wipe" yaml:"allow_wipe"`
	LowStockThreshold int64  `json:"low_stock_threshold" yaml:"low_stock_threshold"`
	StockReportCron   string `json:"stock_report_cron" yaml:"stock_report_cron"`
}

type CfgRetry struct {
	Attempts int   `json:"attempts" yaml:"attempts"`
	DelayMs  int64 `json:"delay_ms" yaml:"delay_ms"`
	Linear   bool  `json:"linear" yaml:"linear"`
}

type CfgInspector struct {
	ScanLimit  int `json:"scan_limit" yaml:"scan_limit"`
	SampleSize int `json:"sample_size" yaml:"sample_size"`
}

type CfgServer struct {
	Server struct {
		Name                   string `json:"name" yaml:"name"`
		IsUpdate               bool   `json:"is_update" yaml:"is_update"`
		HttpServerAddr         string `json:"http_server_addr" yaml:"http_server_addr"`
		HttpServerInternalAddr string `json:"http_server_internal_addr" yaml:"http_server_internal_addr"`
		PushLogUrl             string `json:"push_log_url" yaml:"push_log_url"`
		PushLogIndex           string `json:"push_log_index" yaml:"push_log_index"`
		PrometheusPushGateway  string `json:"prometheus_push_gateway" yaml:"prometheus_push_gateway"`
	} `json:"server" yaml:"server"`
	Code      CfgCode      `json:"code" yaml:"code"`
	Retry     CfgRetry     `json:"retry" yaml:"retry"`
	Inspector CfgInspector `json:"inspector" yaml:"inspector"`
	JwtKey    string       `json:"jwt_key" yaml:"jwt_key"`
	Origins   []string     `json:"origins" yaml:"origins"`
	Notify    struct {
		LarkErrorKey      string `json:"lark_error_key" yaml:"lark_error_key"`
		LarkOverrideKey   string `json:"lark_override_key" yaml:"lark_override_key"`
		LarkStockKey      string `json:"lark_stock_key" yaml:"lark_stock_key"`
		SentryDsn         string `json:"sentry_dsn" yaml:"sentry_dsn"`
		SentryEnvironment string `json:"sentry_environment" yaml:"sentry_environment"`
	} `json:"notify" yaml:"notify"`
	DB struct {
		Mysql DbMysql `json:"mysql" yaml:"mysql"`
		Mongo struct {
			Uri    string `json:"uri" yaml:"uri"`
			DbName string `json:"db_name" yaml:"db_name"`
		} `json:"mongo" yaml:"mongo"`
	} `json:"db" yaml:"db"`
	Cache struct {
		Redis struct {
			Addr     string `json:"addr" yaml:"addr"`
			Password string `json:"password" yaml:"password"`
			DbNum    int    `json:"db_num" yaml:"db_num"`
		} `json:"redis" yaml:"redis"`
	} `json:"cache" yaml:"cache"`
}

const (
	DefaultCodeLength        = 8
	MinCodeLength            = 6
	MaxCodeLength            = 16
	DefaultBatchSize         = 20
	DefaultMaxQuantity       = 100
	DefaultMaxRaceRetry      = 3
	DefaultLowStockThreshold = 5
	DefaultStockReportCron   = "0 0 9 * * ?"
	DefaultRetryAttempts     = 3
	DefaultRetryDelay        = 2 * time.Second
	DefaultScanLimit         = 100
	MinScanLimit             = 50
	DefaultSampleSize        = 5
)

func (c CfgCode) GetLength() int {
	if c.Length < MinCodeLength || c.Length > MaxCodeLength {
		return DefaultCodeLength
	}
	return c.Length
}

func (c CfgCode) GetBatchSize() int {
	if c.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return c.BatchSize
}

func (c CfgCode) GetMaxQuantity() int {
	if c.MaxQuantity <= 0 || c.MaxQuantity > DefaultMaxQuantity {
		return DefaultMaxQuantity
	}
	return c.MaxQuantity
}

func (c CfgCode) GetMaxRaceRetry() int {
	if c.MaxRaceRetry <= 0 {
		return DefaultMaxRaceRetry
	}
	return c.MaxRaceRetry
}

func (c CfgCode) GetLowStockThreshold() int64 {
	if c.LowStockThreshold <= 0 {
		return DefaultLowStockThreshold
	}
	return c.LowStockThreshold
}

func (c CfgCode) GetStockReportCron() string {
	if c.StockReportCron == "" {
		return DefaultStockReportCron
	}
	return c.StockReportCron
}

func (c CfgRetry) GetAttempts() int {
	if c.Attempts <= 0 {
		return DefaultRetryAttempts
	}
	return c.Attempts
}

func (c CfgRetry) GetDelay() time.Duration {
	if c.DelayMs <= 0 {
		return DefaultRetryDelay
	}
	return time.Duration(c.DelayMs) * time.Millisecond
}

// GetScanLimit keeps the manual scan between 50 and 100 rows.
func (c CfgInspector) GetScanLimit() int {
	switch {
	case c.ScanLimit <= 0:
		return DefaultScanLimit
	case c.ScanLimit < MinScanLimit:
		return MinScanLimit
	case c.ScanLimit > DefaultScanLimit:
		return DefaultScanLimit
	}
	return c.ScanLimit
}

func (c CfgInspector) GetSampleSize() int {
	if c.SampleSize <= 0 {
		return DefaultSampleSize
	}
	return c.SampleSize
}
