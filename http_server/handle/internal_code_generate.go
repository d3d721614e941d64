package handle

import (
	"context"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/gin-gonic/gin"
	"github.com/scorpiotzh/toolib"
	"net/http"
)

type ReqInternalCodeGenerate struct {
	DealId   interface{} `json:"deal_id" binding:"required"`
	Quantity int         `json:"quantity"`
}

func (h *HttpHandle) InternalCodeGenerate(ctx *gin.Context) {
	var (
		funcName               = "InternalCodeGenerate"
		clientIp, remoteAddrIP = GetClientIp(ctx)
		req                    ReqInternalCodeGenerate
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

	if err = h.doInternalCodeGenerate(ctx.Request.Context(), &req, &apiResp); err != nil {
		log.Error("doInternalCodeGenerate err:", err.Error(), funcName, clientIp, ctx)
	}

	ctx.JSON(http.StatusOK, apiResp)
}

func (h *HttpHandle) doInternalCodeGenerate(ctx context.Context, req *ReqInternalCodeGenerate, apiResp *api_code.ApiResp) error {
	res := h.Tool.Generate(ctx, req.DealId, req.Quantity)
	if !res.Success() {
		if err := doOutcomeError(res.Outcome, res.Err, apiResp); err != nil {
			apiResp.ApiRespErr(api_code.ApiCodeGenerateFailed, "every batch failed")
			return err
		}
		return nil
	}
	apiResp.ApiRespOK(res)
	return nil
}
