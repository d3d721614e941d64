package http_server

import (
	"context"
	"errors"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/handle"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/scorpiotzh/mylog"
	"net/http"
	"time"
)

var (
	log = mylog.NewLogger("http_server", mylog.LevelDebug)
)

// HttpServer serves the public code api on Address and the operator api on
// InternalAddress.
type HttpServer struct {
	Ctx             context.Context
	Name            string
	Address         string
	InternalAddress string
	H               *handle.HttpHandle
	engine          *gin.Engine
	internalEngine  *gin.Engine
	srv             *http.Server
	internalSrv     *http.Server
}

func (h *HttpServer) Run() {
	// deal ids arrive as json.Number so large ids keep their digits
	binding.EnableDecoderUseNumber = true
	h.engine = gin.New()
	h.internalEngine = gin.New()
	h.engine.Use(h.recoverPanic("public"))
	h.internalEngine.Use(h.recoverPanic("internal"))

	h.initRouter()

	h.srv = &http.Server{
		Addr:    h.Address,
		Handler: h.engine,
	}
	h.internalSrv = &http.Server{
		Addr:    h.InternalAddress,
		Handler: h.internalEngine,
	}
	h.listen("public", h.srv)
	h.listen("internal", h.internalSrv)
	log.Info("http server run:", h.Name, h.Address, h.InternalAddress)
}

func (h *HttpServer) listen(kind string, srv *http.Server) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_server run err:", h.Name, kind, err)
		}
	}()
}

// recoverPanic answers a panicking handler with the usual envelope and reports it.
func (h *HttpServer) recoverPanic(kind string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("http_server panic:", h.Name, kind, ctx.Request.URL.Path, r)
				sentry.CurrentHub().Recover(r)
				ctx.AbortWithStatusJSON(http.StatusOK, api_code.ApiRespErr(api_code.ApiCodeError500, api_code.TextAccessError))
			}
		}()
		ctx.Next()
	}
}

func (h *HttpServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	for kind, srv := range map[string]*http.Server{"public": h.srv, "internal": h.internalSrv} {
		if srv == nil {
			continue
		}
		log.Warn("http server Shutdown ... ", h.Name, kind)
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("http server Shutdown err:", h.Name, kind, err.Error())
		}
	}
}
