package handle

import (
	"context"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/gin-gonic/gin"
	"github.com/scorpiotzh/toolib"
	"net/http"
)

type ReqCodeStats struct {
	DealId interface{} `json:"deal_id" binding:"required"`
}

func (h *HttpHandle) CodeStats(ctx *gin.Context) {
	var (
		funcName               = "CodeStats"
		clientIp, remoteAddrIP = GetClientIp(ctx)
		req                    ReqCodeStats
		apiResp                api_code.ApiResp
		err                    error
	)
	log.Info("ApiReq:", funcName, clientIp, remoteAddrIP, ctx)

	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Error("ShouldBindJSON err: ", err.Error(), funcName, clientIp, ctx)
		apiResp.ApiRespErr(api_code.ApiCodeParamsInvalid, "params invalid")
		ctx.JSON(http.StatusOK, apiResp)
		return
	}
	log.Info("ApiReq:", funcName, clientIp, toolib.JsonString(req))

	if err = h.doCodeStats(ctx.Request.Context(), &req, &apiResp); err != nil {
		log.Error("doCodeStats err:", err.Error(), funcName, clientIp, ctx)
	}

	ctx.JSON(http.StatusOK, apiResp)
}

func (h *HttpHandle) doCodeStats(ctx context.Context, req *ReqCodeStats, apiResp *api_code.ApiResp) error {
	res := h.Tool.CodeStats(ctx, req.DealId)
	if !res.Ok() {
		return doOutcomeError(res.Outcome, res.Err, apiResp)
	}
	apiResp.ApiRespOK(res.Value)
	return nil
}
