package notify

import (
	"fmt"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/monitor"
	"github.com/getsentry/sentry-go"
	"github.com/parnurzeal/gorequest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/scorpiotzh/mylog"
	"time"
)

var (
	log           = mylog.NewLogger("notify", mylog.LevelDebug)
	counterNotify = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notify",
	}, []string{"title"})
)

const (
	LarkNotifyUrl = "https://open.larksuite.com/open-apis/bot/v2/hook/%s"
	svrTitle      = "discount-code-svr"
)

func init() {
	monitor.PromRegister.MustRegister(counterNotify)
}

type MsgContent struct {
	Tag      string `json:"tag"`
	UnEscape bool   `json:"un_escape"`
	Text     string `json:"text"`
}
type MsgData struct {
	Email   string `json:"email"`
	MsgType string `json:"msg_type"`
	Content struct {
		Post struct {
			ZhCn struct {
				Title   string         `json:"title"`
				Content [][]MsgContent `json:"content"`
			} `json:"zh_cn"`
		} `json:"post"`
	} `json:"content"`
}

func SendLarkTextNotify(key, title, text string) {
	SendLarkTextNotifyWithSvr(key, title, text, true)
}

// SendLarkErrNotify counts the error and forwards it to sentry when a client is bound.
func SendLarkErrNotify(title, text string) {
	if title == "" || text == "" {
		return
	}
	counterNotify.WithLabelValues(title).Inc()
	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.CaptureMessage(fmt.Sprintf("%s: %s", title, text))
	}
}

func BuildLarkMsg(title, text string, withSvr bool) MsgData {
	var data MsgData
	data.MsgType = "post"
	if withSvr {
		data.Content.Post.ZhCn.Title = fmt.Sprintf("%s: %s", svrTitle, title)
	} else {
		data.Content.Post.ZhCn.Title = title
	}
	data.Content.Post.ZhCn.Content = [][]MsgContent{
		{
			MsgContent{
				Tag:      "text",
				UnEscape: false,
				Text:     text,
			},
		},
	}
	return data
}

func SendLarkTextNotifyWithSvr(key, title, text string, withSvr bool) {
	if key == "" || text == "" {
		return
	}
	data := BuildLarkMsg(title, text, withSvr)
	url := fmt.Sprintf(LarkNotifyUrl, key)
	_, body, errs := gorequest.New().Post(url).Timeout(time.Second * 10).SendStruct(&data).End()
	if len(errs) > 0 {
		log.Error("sendLarkTextNotify req err:", errs)
	} else {
		log.Info("sendLarkTextNotify req:", body)
	}
}

func GetLarkTextNotifyStr(funcName, keyInfo, errInfo string) string {
	msg := fmt.Sprintf(`func：%s
key：%s
error：%s`, funcName, keyInfo, errInfo)
	return msg
}
