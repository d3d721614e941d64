package handle

import (
	"bytes"
	"context"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/codetool"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/gin-gonic/gin"
	"github.com/scorpiotzh/toolib"
	"net/http"
)

type ReqInternalCodeInspect struct {
	DealId interface{} `json:"deal_id" binding:"required"`
	Retry  bool        `json:"retry"`
	Text   bool        `json:"text"`
}

type RespInternalCodeInspect struct {
	codetool.InspectionResult
	ErrMsg string `json:"err_msg,omitempty"`
	Text   string `json:"text,omitempty"`
}

func (h *HttpHandle) InternalCodeInspect(ctx *gin.Context) {
	var (
		funcName               = "InternalCodeInspect"
		clientIp, remoteAddrIP = GetClientIp(ctx)
		req                    ReqInternalCodeInspect
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

	if err = h.doInternalCodeInspect(ctx.Request.Context(), &req, &apiResp); err != nil {
		log.Error("doInternalCodeInspect err:", err.Error(), funcName, clientIp, ctx)
	}

	ctx.JSON(http.StatusOK, apiResp)
}

// doInternalCodeInspect returns the inspection even when nothing was found,
// since the report is what the operator needs.
func (h *HttpHandle) doInternalCodeInspect(ctx context.Context, req *ReqInternalCodeInspect, apiResp *api_code.ApiResp) error {
	var res codetool.InspectionResult
	if req.Retry {
		res = h.Tool.InspectWithRetry(ctx, req.DealId)
	} else {
		res = h.Tool.Inspect(ctx, req.DealId)
	}
	switch res.Outcome {
	case codetool.OutcomeInvalid, codetool.OutcomeAccessError:
		return doOutcomeError(res.Outcome, res.Err, apiResp)
	}
	resp := RespInternalCodeInspect{InspectionResult: res}
	if res.Err != nil {
		resp.ErrMsg = res.Err.Error()
	}
	if req.Text {
		var buf bytes.Buffer
		if err := res.Render(&buf); err != nil {
			log.Warn("Render err:", err.Error())
		}
		resp.Text = buf.String()
	}
	apiResp.ApiRespOK(resp)
	return nil
}
