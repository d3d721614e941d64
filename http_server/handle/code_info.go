package handle

import (
	"context"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/gin-gonic/gin"
	"github.com/scorpiotzh/toolib"
	"net/http"
)

type ReqCodeInfo struct {
	Code string `json:"code" binding:"required"`
}

func (h *HttpHandle) CodeInfo(ctx *gin.Context) {
	var (
		funcName               = "CodeInfo"
		clientIp, remoteAddrIP = GetClientIp(ctx)
		req                    ReqCodeInfo
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

	if err = h.doCodeInfo(ctx.Request.Context(), &req, &apiResp); err != nil {
		log.Error("doCodeInfo err:", err.Error(), funcName, clientIp, ctx)
	}

	ctx.JSON(http.StatusOK, apiResp)
}

func (h *HttpHandle) doCodeInfo(ctx context.Context, req *ReqCodeInfo, apiResp *api_code.ApiResp) error {
	res := h.Tool.GetCode(ctx, req.Code)
	if !res.Ok() {
		return doOutcomeError(res.Outcome, res.Err, apiResp)
	}
	apiResp.ApiRespOK(toCodeInfo(res.Value, false))
	return nil
}
