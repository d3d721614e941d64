package api_code

type ApiCode = int

const (
	ApiCodeSuccess        ApiCode = 0
	ApiCodeError500       ApiCode = 500
	ApiCodeParamsInvalid  ApiCode = 10000
	ApiCodeMethodNotExist ApiCode = 10001
	ApiCodeDbError        ApiCode = 10002
	ApiCodeCacheError     ApiCode = 10003
	ApiCodeUnauthorized   ApiCode = 10004

	ApiCodeSystemUpgrade    ApiCode = 30019
	ApiCodePermissionDenied ApiCode = 30011

	ApiCodeNoCodesAvailable          ApiCode = 50000
	ApiCodeCodeNotExist              ApiCode = 50001
	ApiCodeCodeAlreadyUsed           ApiCode = 50002
	ApiCodeCodeNotUsed               ApiCode = 50003
	ApiCodeNoCodesFound              ApiCode = 50004
	ApiCodeWipeDisabled              ApiCode = 50005
	ApiCodeDistributedLockPreemption ApiCode = 50006
	ApiCodeGenerateFailed            ApiCode = 50007
)

const (
	TextSystemUpgrade = "The service is under maintenance, please try again later."
	TextAccessError   = "Something went wrong, please retry."
)

type ApiResp struct {
	ErrNo  ApiCode     `json:"err_no"`
	ErrMsg string      `json:"err_msg"`
	Data   interface{} `json:"data"`
}

func (a *ApiResp) ApiRespErr(errNo ApiCode, errMsg string) {
	a.ErrNo = errNo
	a.ErrMsg = errMsg
}

func (a *ApiResp) ApiRespOK(data interface{}) {
	a.ErrNo = ApiCodeSuccess
	a.Data = data
}

func ApiRespErr(errNo ApiCode, errMsg string) ApiResp {
	return ApiResp{
		ErrNo:  errNo,
		ErrMsg: errMsg,
		Data:   nil,
	}
}
