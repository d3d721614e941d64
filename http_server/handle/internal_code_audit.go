package handle

import (
	"context"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/tables"
	"github.com/gin-gonic/gin"
	"github.com/scorpiotzh/toolib"
	"net/http"
	"strings"
)

type ReqInternalCodeAudit struct {
	Code  string `json:"code" binding:"required"`
	Limit int64  `json:"limit"`
}

type RespInternalCodeAudit struct {
	List []tables.AuditLog `json:"list"`
}

func (h *HttpHandle) InternalCodeAudit(ctx *gin.Context) {
	var (
		funcName               = "InternalCodeAudit"
		clientIp, remoteAddrIP = GetClientIp(ctx)
		req                    ReqInternalCodeAudit
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

	if err = h.doInternalCodeAudit(ctx.Request.Context(), &req, &apiResp); err != nil {
		log.Error("doInternalCodeAudit err:", err.Error(), funcName, clientIp, ctx)
	}

	ctx.JSON(http.StatusOK, apiResp)
}

func (h *HttpHandle) doInternalCodeAudit(ctx context.Context, req *ReqInternalCodeAudit, apiResp *api_code.ApiResp) error {
	if h.Audit == nil {
		apiResp.ApiRespErr(api_code.ApiCodeMethodNotExist, "audit log is not configured")
		return nil
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}
	list, err := h.Audit.FindAudit(ctx, strings.ToUpper(strings.TrimSpace(req.Code)), req.Limit)
	if err != nil {
		apiResp.ApiRespErr(api_code.ApiCodeDbError, "Failed to query audit log")
		return err
	}
	apiResp.ApiRespOK(RespInternalCodeAudit{List: list})
	return nil
}
