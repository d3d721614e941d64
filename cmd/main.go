package main

import (
	"context"
	"fmt"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/cache"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/codetool"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/config"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/dao"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/handle"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/task"
	"github.com/getsentry/sentry-go"
	"github.com/scorpiotzh/mylog"
	"github.com/scorpiotzh/toolib"
	"github.com/urfave/cli/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"os"
	"sync"
	"time"
)

var (
	log               = mylog.NewLogger("main", mylog.LevelDebug)
	exit              = make(chan struct{})
	ctxServer, cancel = context.WithCancel(context.Background())
	wgServer          = sync.WaitGroup{}
)

func main() {
	log.Debugf("start：")
	app := &cli.App{
		Name:  "discount-code-svr",
		Usage: "discount code issuance and reconciliation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
			},
		},
		Action:   runServer,
		Commands: commands(),
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runServer(ctx *cli.Context) error {
	// config file
	configFilePath := ctx.String("config")
	if err := config.InitCfg(configFilePath); err != nil {
		return err
	}

	// config file watcher
	watcher, err := config.AddCfgFileWatcher(configFilePath)
	if err != nil {
		return fmt.Errorf("AddCfgFileWatcher err: %s", err.Error())
	}
	// ============= service start =============

	if err := initSentry(); err != nil {
		return fmt.Errorf("initSentry err: %s", err.Error())
	}

	// db
	dbDao, err := dao.NewGormDB(config.Cfg.DB.Mysql)
	if err != nil {
		return fmt.Errorf("NewGormDB err: %s", err.Error())
	}
	log.Infof("db ok")

	// redis
	red, err := toolib.NewRedisClient(config.Cfg.Cache.Redis.Addr, config.Cfg.Cache.Redis.Password, config.Cfg.Cache.Redis.DbNum)
	if err != nil {
		return fmt.Errorf("NewRedisClient err:%s", err.Error())
	} else {
		log.Info("redis ok")
	}
	rc := &cache.RedisCache{
		Ctx: ctxServer,
		Red: red,
	}

	// code tool
	codeTool := codetool.NewTool(dbDao, &config.Cfg)
	codeTool.Locker = rc
	mongoAudit, err := initMongoAudit()
	if err != nil {
		return fmt.Errorf("initMongoAudit err: %s", err.Error())
	}
	if mongoAudit != nil {
		codeTool.Audit = mongoAudit
	}
	log.Infof("code tool ok")

	// task
	codeTask := task.CodeTask{
		Ctx:   ctxServer,
		Wg:    &wgServer,
		Store: dbDao,
	}
	codeTask.RunCheckConsumed()
	codeTask.RunPushMetrics()
	stockCron, err := codeTask.RunStockReport()
	if err != nil {
		return fmt.Errorf("RunStockReport err: %s", err.Error())
	}
	log.Infof("task ok")

	// http
	hs := http_server.HttpServer{
		Ctx:             ctxServer,
		Name:            config.Cfg.Server.Name,
		Address:         config.Cfg.Server.HttpServerAddr,
		InternalAddress: config.Cfg.Server.HttpServerInternalAddr,
		H: &handle.HttpHandle{
			Ctx:   ctxServer,
			Tool:  codeTool,
			DbDao: dbDao,
			RC:    rc,
			Audit: mongoAudit,
		},
	}
	hs.Run()
	log.Info("http server ok")
	// ============= service end =============
	toolib.ExitMonitoring(func(sig os.Signal) {
		log.Warn("ExitMonitoring:", sig.String())
		if watcher != nil {
			log.Warn("close watcher ... ")
			_ = watcher.Close()
		}
		<-stockCron.Stop().Done()
		hs.Shutdown()
		cancel()
		wgServer.Wait()
		sentry.Flush(time.Second * 2)
		log.Warn("success exit server. bye bye!")
		time.Sleep(time.Second)
		exit <- struct{}{}
	})

	<-exit

	return nil
}

func initSentry() error {
	if config.Cfg.Notify.SentryDsn == "" {
		return nil
	}
	return sentry.Init(sentry.ClientOptions{
		Dsn:         config.Cfg.Notify.SentryDsn,
		Environment: config.Cfg.Notify.SentryEnvironment,
		ServerName:  config.Cfg.Server.Name,
	})
}

// initMongoAudit returns nil when no mongo uri is configured.
func initMongoAudit() (*dao.MongoAudit, error) {
	if config.Cfg.DB.Mongo.Uri == "" {
		log.Warn("mongo uri is empty, audit log disabled")
		return nil, nil
	}
	mongoClient, err := mongo.Connect(ctxServer, options.Client().ApplyURI(config.Cfg.DB.Mongo.Uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect err:%s", err.Error())
	}
	log.Infof("mongo ok")
	return dao.NewMongoAudit(mongoClient, config.Cfg.DB.Mongo.DbName), nil
}
