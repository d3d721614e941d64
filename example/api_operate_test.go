package example

import (
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/http_server/handle"
	"testing"
)

// TestGenerateRedeem generates a couple of codes, then redeems and inspects one.
func TestGenerateRedeem(t *testing.T) {
	internal, token := internalUrl(t)
	public := apiUrl(t)

	var gen map[string]interface{}
	if err := doReqWithToken(internal+"/internal/code/generate", token, handle.ReqInternalCodeGenerate{
		DealId:   testDealId(),
		Quantity: 2,
	}, &gen); err != nil {
		t.Fatal(err)
	}

	var redeem handle.RespCodeRedeem
	if err := doReq(public+"/code/redeem", handle.ReqCodeRedeem{
		DealId:   testDealId(),
		Customer: handle.Customer{Name: "test", Email: "test@example.com"},
	}, &redeem); err != nil {
		t.Fatal(err)
	}
	if redeem.Exhausted || redeem.Code == nil {
		t.Fatalf("expected a code right after generation: %+v", redeem)
	}

	var info handle.CodeInfo
	if err := doReq(public+"/code/info", handle.ReqCodeInfo{Code: redeem.Code.Code}, &info); err != nil {
		t.Fatal(err)
	}
	if !info.IsUsed {
		t.Fatal("redeemed code is not used")
	}

	var inspect map[string]interface{}
	if err := doReqWithToken(internal+"/internal/code/inspect", token, handle.ReqInternalCodeInspect{
		DealId: testDealId(),
	}, &inspect); err != nil {
		t.Fatal(err)
	}

	var reset handle.CodeInfo
	if err := doReqWithToken(internal+"/internal/code/reset", token, handle.ReqInternalCodeReset{
		Code:   redeem.Code.Code,
		Reason: "example test",
	}, &reset); err != nil {
		t.Fatal(err)
	}
}
