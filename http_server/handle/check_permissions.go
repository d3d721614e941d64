package handle

import (
	"errors"
	"fmt"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/config"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"net/http"
	"strings"
	"time"
)

const ctxKeyOperator = "operator"

type Claims struct {
	Operator string `json:"operator"`
	jwt.RegisteredClaims
}

// NewOperatorToken signs a token for the internal api.
func NewOperatorToken(key, operator string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", fmt.Errorf("jwt key is empty")
	}
	if operator == "" {
		return "", fmt.Errorf("operator is empty")
	}
	now := time.Now()
	claims := &Claims{
		Operator: operator,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operator,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
}

func getToken(ctx *gin.Context) (string, error) {
	if auth := ctx.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer "), nil
	}
	return ctx.Cookie("token")
}

func (h *HttpHandle) CheckPermissions(ctx *gin.Context) {
	var apiResp api_code.ApiResp
	defer func() {
		if apiResp.ErrNo != 0 {
			ctx.JSON(http.StatusOK, apiResp)
			ctx.Abort()
		}
	}()

	if config.Cfg.JwtKey == "" {
		apiResp.ApiRespErr(api_code.ApiCodeUnauthorized, "internal api disabled")
		return
	}
	tokenVal, err := getToken(ctx)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			apiResp.ApiRespErr(api_code.ApiCodeUnauthorized, "unauthorized")
			return
		}
		apiResp.ApiRespErr(api_code.ApiCodeError500, err.Error())
		return
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenVal, claims, func(token *jwt.Token) (any, error) {
		return []byte(config.Cfg.JwtKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		log.Warn("CheckPermissions ParseWithClaims err:", err.Error())
		apiResp.ApiRespErr(api_code.ApiCodeUnauthorized, "unauthorized")
		return
	}
	if !tkn.Valid || claims.Operator == "" {
		apiResp.ApiRespErr(api_code.ApiCodeUnauthorized, "unauthorized")
		return
	}
	ctx.Set(ctxKeyOperator, claims.Operator)
}

func getOperator(ctx *gin.Context) string {
	return ctx.GetString(ctxKeyOperator)
}
