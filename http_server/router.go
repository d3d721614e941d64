package http_server

import (
	"encoding/json"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/config"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/gin-gonic/gin"
	"github.com/scorpiotzh/toolib"
	"net/http"
	"time"
)

func (h *HttpServer) initRouter() {
	shortExpireTime, shortDataTime, lockTime := time.Second*5, time.Minute*3, time.Minute
	cacheHandleShort := func(ctx *gin.Context) { ctx.Next() }
	if h.H.RC != nil && h.H.RC.Red != nil {
		cacheHandleShort = toolib.MiddlewareCacheByRedis(h.H.RC.Red, false, shortDataTime, lockTime, shortExpireTime, respHandle)
	}

	log.Info("initRouter:", len(config.Cfg.Origins))
	if len(config.Cfg.Origins) > 0 {
		toolib.AllowOriginList = append(toolib.AllowOriginList, config.Cfg.Origins...)
	}
	h.internalEngine.Use(toolib.MiddlewareCors())
	h.engine.Use(toolib.MiddlewareCors())

	v1 := h.engine.Group("v1")
	{
		v1.POST("/code/available", api_code.DoMonitorLog("code_available"), h.H.CodeAvailable)
		v1.POST("/code/redeem", api_code.DoMonitorLog("code_redeem"), h.H.CodeRedeem)
		v1.POST("/code/use", api_code.DoMonitorLog("code_use"), h.H.CodeUse)
		v1.POST("/code/info", api_code.DoMonitorLog("code_info"), h.H.CodeInfo)
		v1.POST("/code/stats", api_code.DoMonitorLog("code_stats"), cacheHandleShort, h.H.CodeStats)
	}
	internalV1 := h.internalEngine.Group("v1", h.H.CheckPermissions)
	{
		internalV1.POST("/internal/code/generate", api_code.DoMonitorLog("internal_code_generate"), h.H.InternalCodeGenerate)
		internalV1.POST("/internal/code/list", api_code.DoMonitorLog("internal_code_list"), h.H.InternalCodeList)
		internalV1.POST("/internal/code/inspect", api_code.DoMonitorLog("internal_code_inspect"), h.H.InternalCodeInspect)
		internalV1.POST("/internal/code/reset", api_code.DoMonitorLog("internal_code_reset"), h.H.InternalCodeReset)
		internalV1.POST("/internal/code/remove", api_code.DoMonitorLog("internal_code_remove"), h.H.InternalCodeRemove)
		internalV1.POST("/internal/code/delete", api_code.DoMonitorLog("internal_code_delete"), h.H.InternalCodeDelete)
		internalV1.POST("/internal/code/audit", h.H.InternalCodeAudit)
	}
}

func respHandle(c *gin.Context, res string, err error) {
	if err != nil {
		log.Error("respHandle err:", err.Error())
		c.AbortWithStatusJSON(http.StatusOK, api_code.ApiRespErr(http.StatusInternalServerError, err.Error()))
	} else if res != "" {
		var respMap map[string]interface{}
		_ = json.Unmarshal([]byte(res), &respMap)
		c.AbortWithStatusJSON(http.StatusOK, respMap)
	}
}
