package handle

import (
	"context"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/codetool"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/gin-gonic/gin"
	"github.com/scorpiotzh/toolib"
	"net/http"
)

type ReqCodeRedeem struct {
	DealId   interface{} `json:"deal_id" binding:"required"`
	Customer Customer    `json:"customer"`
}

type RespCodeRedeem struct {
	Exhausted bool      `json:"exhausted"`
	Fallback  string    `json:"fallback,omitempty"`
	Code      *CodeInfo `json:"code,omitempty"`
}

func (h *HttpHandle) CodeRedeem(ctx *gin.Context) {
	var (
		funcName               = "CodeRedeem"
		clientIp, remoteAddrIP = GetClientIp(ctx)
		req                    ReqCodeRedeem
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

	if err = h.doCodeRedeem(ctx.Request.Context(), &req, &apiResp); err != nil {
		log.Error("doCodeRedeem err:", err.Error(), funcName, clientIp, ctx)
	}

	ctx.JSON(http.StatusOK, apiResp)
}

func (h *HttpHandle) doCodeRedeem(ctx context.Context, req *ReqCodeRedeem, apiResp *api_code.ApiResp) error {
	if err := h.checkSystemUpgrade(apiResp); err != nil {
		return err
	}
	res := h.Tool.IssueCode(ctx, req.DealId, req.Customer.Info())
	var resp RespCodeRedeem
	switch res.Outcome {
	case codetool.OutcomeOk:
		info := toCodeInfo(res.Value, false)
		resp.Code = &info
	case codetool.OutcomeEmpty:
		resp.Exhausted = true
		resp.Fallback = FallbackDirectBooking
	default:
		return doOutcomeError(res.Outcome, res.Err, apiResp)
	}
	apiResp.ApiRespOK(resp)
	return nil
}
