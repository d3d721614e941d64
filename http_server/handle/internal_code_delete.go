package handle

import (
	"context"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/gin-gonic/gin"
	"github.com/scorpiotzh/toolib"
	"net/http"
)

// ReqInternalCodeDelete deletes one deal's codes, or every code when Wipe is
// set and no deal id is given.
type ReqInternalCodeDelete struct {
	DealId interface{} `json:"deal_id"`
	Wipe   bool        `json:"wipe"`
}

func (h *HttpHandle) InternalCodeDelete(ctx *gin.Context) {
	var (
		funcName               = "InternalCodeDelete"
		clientIp, remoteAddrIP = GetClientIp(ctx)
		req                    ReqInternalCodeDelete
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

	if err = h.doInternalCodeDelete(ctx.Request.Context(), operator, &req, &apiResp); err != nil {
		log.Error("doInternalCodeDelete err:", err.Error(), funcName, clientIp, ctx)
	}

	ctx.JSON(http.StatusOK, apiResp)
}

func (h *HttpHandle) doInternalCodeDelete(ctx context.Context, operator string, req *ReqInternalCodeDelete, apiResp *api_code.ApiResp) error {
	if req.DealId == nil && !req.Wipe {
		apiResp.ApiRespErr(api_code.ApiCodeParamsInvalid, "deal_id is required unless wipe is set")
		return nil
	}
	if req.DealId != nil && req.Wipe {
		apiResp.ApiRespErr(api_code.ApiCodeParamsInvalid, "wipe does not take a deal_id")
		return nil
	}
	res := h.Tool.RemoveAll(ctx, req.DealId, operator)
	if !res.Ok() {
		return doOutcomeError(res.Outcome, res.Err, apiResp)
	}
	apiResp.ApiRespOK(RespInternalCodeRemove{Deleted: res.Value})
	return nil
}
