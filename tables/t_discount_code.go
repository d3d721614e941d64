package tables

import (
	"encoding/json"
	"fmt"
	"github.com/gogf/gf/v2/util/gconv"
	"strconv"
	"strings"
	"time"
)

type TableDiscountCode struct {
	Id            uint64     `json:"id" gorm:"column:id;primary_key;AUTO_INCREMENT;NOT NULL"`
	DealId        int64      `json:"deal_id" gorm:"column:deal_id;index:idx_deal_id;NOT NULL"`
	Code          string     `json:"code" gorm:"column:code;size:16;uniqueIndex:uk_code;NOT NULL"`
	BatchNo       string     `json:"batch_no" gorm:"column:batch_no;size:64;index:idx_batch_no;default:''"`
	IsUsed        bool       `json:"is_used" gorm:"column:is_used;index:idx_deal_id;default:0;NOT NULL"`
	UsedAt        *time.Time `json:"used_at" gorm:"column:used_at"`
	CustomerName  *string    `json:"customer_name" gorm:"column:customer_name;size:128"`
	CustomerEmail *string    `json:"customer_email" gorm:"column:customer_email;size:255"`
	CustomerPhone *string    `json:"customer_phone" gorm:"column:customer_phone;size:32"`
	CreatedAt     time.Time  `json:"created_at" gorm:"column:created_at;default:CURRENT_TIMESTAMP;NOT NULL"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"column:updated_at;default:CURRENT_TIMESTAMP;NOT NULL"`
}

const (
	TableNameDiscountCode = "t_discount_code"
)

func (t *TableDiscountCode) TableName() string {
	return TableNameDiscountCode
}

// Consumed reports whether the row is in the used state with its consumption time set.
func (t *TableDiscountCode) Consumed() bool {
	return t.IsUsed && t.UsedAt != nil
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (c CustomerInfo) ptr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// Columns returns the customer columns written when a code is consumed.
func (c CustomerInfo) Columns() map[string]interface{} {
	return map[string]interface{}{
		"customer_name":  c.ptr(c.Name),
		"customer_email": c.ptr(c.Email),
		"customer_phone": c.ptr(c.Phone),
	}
}

type DealIdKind string

const (
	DealIdKindNumber  DealIdKind = "number"
	DealIdKindString  DealIdKind = "string"
	DealIdKindNull    DealIdKind = "null"
	DealIdKindUnknown DealIdKind = "unknown"
)

// RawDiscountCode is a discount code row exactly as the driver returned it.
// The inspector works on these so that the stored type of deal_id stays visible.
type RawDiscountCode map[string]interface{}

func (r RawDiscountCode) DealIdValue() interface{} {
	return r["deal_id"]
}

func (r RawDiscountCode) DealIdKind() DealIdKind {
	return KindOf(r["deal_id"])
}

// DealIdString renders the stored deal id without any normalization.
func (r RawDiscountCode) DealIdString() string {
	return ValueString(r["deal_id"])
}

func (r RawDiscountCode) Code() string {
	return ValueString(r["code"])
}

func (r RawDiscountCode) BatchNo() string {
	return ValueString(r["batch_no"])
}

// IsUsed reads is_used whatever type the driver scanned it into. MySQL returns
// a NOT NULL tinyint(1) as int8.
func (r RawDiscountCode) IsUsed() bool {
	switch v := r["is_used"].(type) {
	case bool:
		return v
	case []byte:
		return len(v) > 0 && v[0] != '0' && v[0] != 0
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return gconv.Bool(r["is_used"])
}

// KindOf classifies a value the way the inspector reports stored deal ids.
func KindOf(v interface{}) DealIdKind {
	switch v.(type) {
	case nil:
		return DealIdKindNull
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return DealIdKindNumber
	case string, []byte:
		return DealIdKindString
	}
	return DealIdKindUnknown
}

func ValueString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
