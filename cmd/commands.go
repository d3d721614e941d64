package main

import (
	"context"
	"fmt"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/codetool"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/config"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/dao"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/handle"
	"github.com/scorpiotzh/toolib"
	"github.com/urfave/cli/v2"
	"os"
	"time"
)

func commands() []*cli.Command {
	operatorFlag := &cli.StringFlag{Name: "operator", Usage: "who runs the override", Required: true}
	return []*cli.Command{
		{
			Name:   "migrate",
			Usage:  "create or update t_discount_code",
			Action: withTool(func(ctx *cli.Context, tool *codetool.Tool, dbDao *dao.DbDao) error {
				return dbDao.EnsureSchema()
			}),
		},
		{
			Name:  "generate",
			Usage: "generate codes for a deal",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "deal", Required: true},
				&cli.IntFlag{Name: "quantity", Value: 10},
			},
			Action: withTool(func(ctx *cli.Context, tool *codetool.Tool, dbDao *dao.DbDao) error {
				res := tool.Generate(ctx.Context, ctx.String("deal"), ctx.Int("quantity"))
				fmt.Println(toolib.JsonString(res))
				if !res.Success() {
					return res.Err
				}
				return nil
			}),
		},
		{
			Name:  "inspect",
			Usage: "show how a deal id matches the stored codes",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "deal", Required: true},
				&cli.BoolFlag{Name: "retry"},
			},
			Action: withTool(func(ctx *cli.Context, tool *codetool.Tool, dbDao *dao.DbDao) error {
				var res codetool.InspectionResult
				if ctx.Bool("retry") {
					res = tool.InspectWithRetry(ctx.Context, ctx.String("deal"))
				} else {
					res = tool.Inspect(ctx.Context, ctx.String("deal"))
				}
				if err := res.Render(os.Stdout); err != nil {
					return err
				}
				if res.Outcome == codetool.OutcomeAccessError || res.Outcome == codetool.OutcomeInvalid {
					return res.Err
				}
				return nil
			}),
		},
		{
			Name:  "reset",
			Usage: "put a used code back into circulation",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "code", Required: true},
				&cli.StringFlag{Name: "reason", Required: true},
				operatorFlag,
			},
			Action: withTool(func(ctx *cli.Context, tool *codetool.Tool, dbDao *dao.DbDao) error {
				res := tool.ResetCode(ctx.Context, ctx.String("code"), ctx.String("operator"), ctx.String("reason"))
				fmt.Println(res.String())
				return res.Err
			}),
		},
		{
			Name:  "remove",
			Usage: "delete one code, or every code of a deal",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "code"},
				&cli.StringFlag{Name: "deal"},
				&cli.BoolFlag{Name: "wipe", Usage: "delete every code, needs code.allow_wipe"},
				operatorFlag,
			},
			Action: withTool(func(ctx *cli.Context, tool *codetool.Tool, dbDao *dao.DbDao) error {
				var res codetool.Result[int64]
				switch {
				case ctx.String("code") != "":
					res = tool.RemoveCode(ctx.Context, ctx.String("code"), ctx.String("operator"))
				case ctx.String("deal") != "":
					res = tool.RemoveAll(ctx.Context, ctx.String("deal"), ctx.String("operator"))
				case ctx.Bool("wipe"):
					res = tool.RemoveAll(ctx.Context, nil, ctx.String("operator"))
				default:
					return fmt.Errorf("one of --code, --deal or --wipe is required")
				}
				fmt.Println(res.String())
				return res.Err
			}),
		},
		{
			Name:  "token",
			Usage: "sign an operator token for the internal api",
			Flags: []cli.Flag{
				operatorFlag,
				&cli.DurationFlag{Name: "ttl", Value: time.Hour * 24},
			},
			Action: func(ctx *cli.Context) error {
				if err := config.InitCfg(ctx.String("config")); err != nil {
					return err
				}
				token, err := handle.NewOperatorToken(config.Cfg.JwtKey, ctx.String("operator"), ctx.Duration("ttl"))
				if err != nil {
					return err
				}
				fmt.Println(token)
				return nil
			},
		},
	}
}

// withTool loads the config and opens the database for a one-shot command.
func withTool(fn func(ctx *cli.Context, tool *codetool.Tool, dbDao *dao.DbDao) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		if err := config.InitCfg(ctx.String("config")); err != nil {
			return err
		}
		dbDao, err := dao.NewGormDB(config.Cfg.DB.Mysql)
		if err != nil {
			return fmt.Errorf("NewGormDB err: %s", err.Error())
		}
		tool := codetool.NewTool(dbDao, &config.Cfg)
		mongoAudit, err := initMongoAudit()
		if err != nil {
			return err
		}
		if mongoAudit != nil {
			tool.Audit = mongoAudit
		}
		c, cancelCmd := context.WithTimeout(ctx.Context, time.Minute*5)
		defer cancelCmd()
		ctx.Context = c
		return fn(ctx, tool, dbDao)
	}
}
