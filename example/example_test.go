package example

import (
	"fmt"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/api_code"
	"github.com/parnurzeal/gorequest"
	"github.com/scorpiotzh/toolib"
	"os"
	"testing"
	"time"
)

// These run against a live server, e.g.
// DISCOUNT_API_URL=http://127.0.0.1:8125/v1 DISCOUNT_INTERNAL_URL=http://127.0.0.1:8126/v1 DISCOUNT_TOKEN=... go test ./example
func apiUrl(t *testing.T) string {
	url := os.Getenv("DISCOUNT_API_URL")
	if url == "" {
		t.Skip("DISCOUNT_API_URL is empty")
	}
	return url
}

func internalUrl(t *testing.T) (string, string) {
	url, token := os.Getenv("DISCOUNT_INTERNAL_URL"), os.Getenv("DISCOUNT_TOKEN")
	if url == "" || token == "" {
		t.Skip("DISCOUNT_INTERNAL_URL or DISCOUNT_TOKEN is empty")
	}
	return url, token
}

func testDealId() string {
	if id := os.Getenv("DISCOUNT_DEAL_ID"); id != "" {
		return id
	}
	return "900001"
}

func doReq(url string, req, data interface{}) error {
	return doReqWithToken(url, "", req, data)
}

func doReqWithToken(url, token string, req, data interface{}) error {
	var resp api_code.ApiResp
	resp.Data = &data

	r := gorequest.New().Post(url).Timeout(time.Minute)
	if token != "" {
		r = r.Set("Authorization", "Bearer "+token)
	}
	_, body, errs := r.SendStruct(&req).EndStruct(&resp)
	if errs != nil {
		return fmt.Errorf("%v , %s", errs, string(body))
	}
	fmt.Println("=========== doReq:", toolib.JsonString(data))
	if resp.ErrNo != api_code.ApiCodeSuccess {
		return fmt.Errorf("%d - %s", resp.ErrNo, resp.ErrMsg)
	}
	return nil
}
