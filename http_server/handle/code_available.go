package handle

import (
	"context"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/codetool"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/gin-gonic/gin"
	"github.com/scorpiotzh/toolib"
	"net/http"
)

type ReqCodeAvailable struct {
	DealId interface{} `json:"deal_id" binding:"required"`
}

// RespCodeAvailable reports exhaustion as a normal answer with a fallback.
type RespCodeAvailable struct {
	DealId    int64  `json:"deal_id"`
	Available bool   `json:"available"`
	Exhausted bool   `json:"exhausted"`
	Fallback  string `json:"fallback,omitempty"`
}

func (h *HttpHandle) CodeAvailable(ctx *gin.Context) {
	var (
		funcName               = "CodeAvailable"
		clientIp, remoteAddrIP = GetClientIp(ctx)
		req                    ReqCodeAvailable
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

	if err = h.doCodeAvailable(ctx.Request.Context(), &req, &apiResp); err != nil {
		log.Error("doCodeAvailable err:", err.Error(), funcName, clientIp, ctx)
	}

	ctx.JSON(http.StatusOK, apiResp)
}

func (h *HttpHandle) doCodeAvailable(ctx context.Context, req *ReqCodeAvailable, apiResp *api_code.ApiResp) error {
	res := h.Tool.GetAvailableCode(ctx, req.DealId)
	var resp RespCodeAvailable
	switch res.Outcome {
	case codetool.OutcomeOk:
		resp.DealId = res.Value.DealId
		resp.Available = true
	case codetool.OutcomeEmpty:
		resp.Exhausted = true
		resp.Fallback = FallbackDirectBooking
		resp.DealId, _ = codetool.Normalize(req.DealId)
	default:
		return doOutcomeError(res.Outcome, res.Err, apiResp)
	}
	apiResp.ApiRespOK(resp)
	return nil
}
