package tables

import "testing"

func TestRawDiscountCodeIsUsed(t *testing.T) {
	used := []interface{}{true, int8(1), int16(1), int32(1), int64(1), int(1), uint8(1), uint64(1), float64(1), []byte("1"), []byte{1}, "true", "1"}
	for _, v := range used {
		if !(RawDiscountCode{"is_used": v}).IsUsed() {
			t.Errorf("IsUsed(%T %v) = false, want true", v, v)
		}
	}
	unused := []interface{}{nil, false, int8(0), int16(0), int32(0), int64(0), int(0), uint8(0), uint64(0), float64(0), []byte("0"), []byte{0}, []byte{}, "false", "0", ""}
	for _, v := range unused {
		if (RawDiscountCode{"is_used": v}).IsUsed() {
			t.Errorf("IsUsed(%T %v) = true, want false", v, v)
		}
	}
}

func TestRawDiscountCodeDriverTypes(t *testing.T) {
	row := RawDiscountCode{
		"id":       uint64(9),
		"deal_id":  int64(64),
		"code":     []byte("USED0064"),
		"batch_no": "b-1",
		"is_used":  int8(1),
	}
	if !row.IsUsed() || row.Code() != "USED0064" || row.DealIdString() != "64" || row.DealIdKind() != DealIdKindNumber {
		t.Fatalf("unexpected view of %v", row)
	}
	legacy := RawDiscountCode{"deal_id": []byte("64")}
	if legacy.DealIdKind() != DealIdKindString || legacy.DealIdString() != "64" {
		t.Fatalf("unexpected view of %v", legacy)
	}
}
