package handle

import (
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/tables"
	"time"
)

type Pagination struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

func (p Pagination) GetLimit() int {
	if p.Size < 1 || p.Size > 100 {
		return 100
	}
	return p.Size
}

func (p Pagination) GetOffset() int {
	page := p.Page
	if p.Page < 1 {
		page = 1
	}
	size := p.GetLimit()
	return (page - 1) * size
}

// FallbackDirectBooking is where callers send customers when a deal has no codes left.
const FallbackDirectBooking = "direct_booking"

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (c Customer) Info() tables.CustomerInfo {
	return tables.CustomerInfo{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

type CodeInfo struct {
	Code          string  `json:"code"`
	DealId        int64   `json:"deal_id"`
	BatchNo       string  `json:"batch_no"`
	IsUsed        bool    `json:"is_used"`
	UsedAt        int64   `json:"used_at"`
	CustomerName  *string `json:"customer_name,omitempty"`
	CustomerEmail *string `json:"customer_email,omitempty"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	CreatedAt     int64   `json:"created_at"`
}

func toCodeInfo(row tables.TableDiscountCode, withCustomer bool) CodeInfo {
	info := CodeInfo{
		Code:      row.Code,
		DealId:    row.DealId,
		BatchNo:   row.BatchNo,
		IsUsed:    row.IsUsed,
		UsedAt:    unixMilli(row.UsedAt),
		CreatedAt: row.CreatedAt.UnixMilli(),
	}
	if withCustomer {
		info.CustomerName, info.CustomerEmail, info.CustomerPhone = row.CustomerName, row.CustomerEmail, row.CustomerPhone
	}
	return info
}

func unixMilli(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}
