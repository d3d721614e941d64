package handle

import (
	"context"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/gin-gonic/gin"
	"github.com/scorpiotzh/toolib"
	"net/http"
)

type ReqInternalCodeReset struct {
	Code   string `json:"code" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

func (h *HttpHandle) InternalCodeReset(ctx *gin.Context) {
	var (
		funcName               = "InternalCodeReset"
		clientIp, remoteAddrIP = GetClientIp(ctx)
		req                    ReqInternalCodeReset
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
	operator := getOperator(ctx)
	log.Info("ApiReq:", funcName, clientIp, operator, toolib.JsonString(req))

	if err = h.doInternalCodeReset(ctx.Request.Context(), operator, &req, &apiResp); err != nil {
		log.Error("doInternalCodeReset err:", err.Error(), funcName, clientIp, ctx)
	}

	ctx.JSON(http.StatusOK, apiResp)
}

func (h *HttpHandle) doInternalCodeReset(ctx context.Context, operator string, req *ReqInternalCodeReset, apiResp *api_code.ApiResp) error {
	res := h.Tool.ResetCode(ctx, req.Code, operator, req.Reason)
	if !res.Ok() {
		return doOutcomeError(res.Outcome, res.Err, apiResp)
	}
	apiResp.ApiRespOK(toCodeInfo(res.Value, true))
	return nil
}
