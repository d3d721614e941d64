package handle

import (
	"context"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/codetool"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/gin-gonic/gin"
	"github.com/scorpiotzh/toolib"
	"net/http"
)

type ReqInternalCodeList struct {
	Pagination
	DealId interface{} `json:"deal_id" binding:"required"`
}

// RespInternalCodeList exposes redeemable codes, so it is only served to operators.
type RespInternalCodeList struct {
	codetool.CodeStats
	List []CodeInfo `json:"list"`
}

func (h *HttpHandle) InternalCodeList(ctx *gin.Context) {
	var (
		funcName               = "InternalCodeList"
		clientIp, remoteAddrIP = GetClientIp(ctx)
		req                    ReqInternalCodeList
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
	log.Info("ApiReq:", funcName, clientIp, getOperator(ctx), toolib.JsonString(req))

	if err = h.doInternalCodeList(ctx.Request.Context(), &req, &apiResp); err != nil {
		log.Error("doInternalCodeList err:", err.Error(), funcName, clientIp, ctx)
	}

	ctx.JSON(http.StatusOK, apiResp)
}

func (h *HttpHandle) doInternalCodeList(ctx context.Context, req *ReqInternalCodeList, apiResp *api_code.ApiResp) error {
	res := h.Tool.ListCodes(ctx, req.DealId, req.GetLimit(), req.GetOffset())
	resp := RespInternalCodeList{List: make([]CodeInfo, 0)}
	switch res.Outcome {
	case codetool.OutcomeOk, codetool.OutcomeEmpty:
	default:
		return doOutcomeError(res.Outcome, res.Err, apiResp)
	}
	resp.CodeStats = res.Value.CodeStats
	for _, v := range res.Value.List {
		resp.List = append(resp.List, toCodeInfo(v, true))
	}
	apiResp.ApiRespOK(resp)
	return nil
}
