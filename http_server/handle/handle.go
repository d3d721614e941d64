package handle

import (
	"context"
	"errors"
	"fmt"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/cache"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/codetool"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/config"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/dao"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/gin-gonic/gin"
	"github.com/scorpiotzh/mylog"
	"net"
)

var (
	log = mylog.NewLogger("http_handle", mylog.LevelDebug)
)

type HttpHandle struct {
	Ctx   context.Context
	Tool  *codetool.Tool
	DbDao *dao.DbDao
	RC    *cache.RedisCache
	Audit *dao.MongoAudit
}

func GetClientIp(ctx *gin.Context) (string, string) {
	clientIP := fmt.Sprintf("%v", ctx.Request.Header.Get("X-Real-IP"))
	remoteAddrIP, _, _ := net.SplitHostPort(ctx.Request.RemoteAddr)
	return clientIP, remoteAddrIP
}

func (h *HttpHandle) checkSystemUpgrade(apiResp *api_code.ApiResp) error {
	if config.Cfg.Server.IsUpdate {
		apiResp.ApiRespErr(api_code.ApiCodeSystemUpgrade, api_code.TextSystemUpgrade)
		return fmt.Errorf("backend system upgrade")
	}
	return nil
}

// doOutcomeError maps a failed codetool result onto the response.
func doOutcomeError(outcome codetool.Outcome, err error, apiResp *api_code.ApiResp) error {
	switch outcome {
	case codetool.OutcomeInvalid:
		if errors.Is(err, codetool.ErrWipeDisabled) {
			apiResp.ApiRespErr(api_code.ApiCodeWipeDisabled, err.Error())
		} else {
			apiResp.ApiRespErr(api_code.ApiCodeParamsInvalid, err.Error())
		}
		return nil
	case codetool.OutcomeEmpty:
		switch {
		case errors.Is(err, codetool.ErrCodeNotFound):
			apiResp.ApiRespErr(api_code.ApiCodeCodeNotExist, "code does not exist")
		case errors.Is(err, codetool.ErrNoCodesFound):
			apiResp.ApiRespErr(api_code.ApiCodeNoCodesFound, "no codes found")
		default:
			apiResp.ApiRespErr(api_code.ApiCodeNoCodesAvailable, "no codes available")
		}
		return nil
	case codetool.OutcomeConflict:
		switch {
		case errors.Is(err, codetool.ErrCodeNotUsed):
			apiResp.ApiRespErr(api_code.ApiCodeCodeNotUsed, "code is not used")
		case errors.Is(err, codetool.ErrGenerateInProgress):
			apiResp.ApiRespErr(api_code.ApiCodeDistributedLockPreemption, "generation in progress, try again later")
		default:
			apiResp.ApiRespErr(api_code.ApiCodeCodeAlreadyUsed, "code already used")
		}
		return nil
	}
	apiResp.ApiRespErr(api_code.ApiCodeDbError, api_code.TextAccessError)
	return err
}
