package handle

import (
	"context"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/gin-gonic/gin"
	"github.com/scorpiotzh/toolib"
	"net/http"
)

type ReqInternalCodeRemove struct {
	Code string `json:"code" binding:"required"`
}

type RespInternalCodeRemove struct {
	Deleted int64 `json:"deleted"`
}

func (h *HttpHandle) InternalCodeRemove(ctx *gin.Context) {
	var (
		funcName               = "InternalCodeRemove"
		clientIp, remoteAddrIP = GetClientIp(ctx)
		req                    ReqInternalCodeRemove
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

	if err = h.doInternalCodeRemove(ctx.Request.Context(), operator, &req, &apiResp); err != nil {
		log.Error("doInternalCodeRemove err:", err.Error(), funcName, clientIp, ctx)
	}

	ctx.JSON(http.StatusOK, apiResp)
}

func (h *HttpHandle) doInternalCodeRemove(ctx context.Context, operator string, req *ReqInternalCodeRemove, apiResp *api_code.ApiResp) error {
	res := h.Tool.RemoveCode(ctx, req.Code, operator)
	if !res.Ok() {
		return doOutcomeError(res.Outcome, res.Err, apiResp)
	}
	apiResp.ApiRespOK(RespInternalCodeRemove{Deleted: res.Value})
	return nil
}
