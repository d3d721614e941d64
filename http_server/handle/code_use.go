package handle

import (
	"context"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/gin-gonic/gin"
	"github.com/scorpiotzh/toolib"
	"net/http"
)

type ReqCodeUse struct {
	Code     string   `json:"code" binding:"required"`
	Customer Customer `json:"customer"`
}

func (h *HttpHandle) CodeUse(ctx *gin.Context) {
	var (
		funcName               = "CodeUse"
		clientIp, remoteAddrIP = GetClientIp(ctx)
		req                    ReqCodeUse
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

	if err = h.doCodeUse(ctx.Request.Context(), &req, &apiResp); err != nil {
		log.Error("doCodeUse err:", err.Error(), funcName, clientIp, ctx)
	}

	ctx.JSON(http.StatusOK, apiResp)
}

func (h *HttpHandle) doCodeUse(ctx context.Context, req *ReqCodeUse, apiResp *api_code.ApiResp) error {
	if err := h.checkSystemUpgrade(apiResp); err != nil {
		return err
	}
	res := h.Tool.MarkUsed(ctx, req.Code, req.Customer.Info())
	if !res.Ok() {
		return doOutcomeError(res.Outcome, res.Err, apiResp)
	}
	apiResp.ApiRespOK(toCodeInfo(res.Value, false))
	return nil
}
