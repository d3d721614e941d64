package dao

import (
	"context"
	"errors"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/tables"
	"gorm.io/gorm"
	"time"
)

func (d *DbDao) CreateDiscountCodes(ctx context.Context, list []tables.TableDiscountCode) error {
	if len(list) == 0 {
		return nil
	}
	return d.db.WithContext(ctx).Create(&list).Error
}

func (d *DbDao) CountDiscountCodes(ctx context.Context) (count int64, err error) {
	err = d.db.WithContext(ctx).Model(tables.TableDiscountCode{}).Count(&count).Error
	return
}

func (d *DbDao) CountByDealId(ctx context.Context, dealId int64) (count int64, err error) {
	err = d.db.WithContext(ctx).Model(tables.TableDiscountCode{}).
		Where("deal_id=?", dealId).Count(&count).Error
	return
}

func (d *DbDao) CountByDealIdAndUsed(ctx context.Context, dealId int64, isUsed bool) (count int64, err error) {
	err = d.db.WithContext(ctx).Model(tables.TableDiscountCode{}).
		Where("deal_id=? AND is_used=?", dealId, isUsed).Count(&count).Error
	return
}

// GetUnusedByDealId returns any unused code of the deal, skipping the given codes.
func (d *DbDao) GetUnusedByDealId(ctx context.Context, dealId int64, skip []string) (res tables.TableDiscountCode, err error) {
	db := d.db.WithContext(ctx).Where("deal_id=? AND is_used=?", dealId, false)
	if len(skip) > 0 {
		db = db.Where("code NOT IN(?)", skip)
	}
	if err = db.Limit(1).Take(&res).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = nil
		}
	}
	return
}

func (d *DbDao) GetDiscountCode(ctx context.Context, code string) (res tables.TableDiscountCode, err error) {
	if err = d.db.WithContext(ctx).Where("code=?", code).First(&res).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = nil
		}
	}
	return
}

// UpdateToUsed flips an unused code to used. The caller owns the code only
// when exactly one row was affected.
func (d *DbDao) UpdateToUsed(ctx context.Context, code string, customer tables.CustomerInfo, usedAt time.Time) (int64, error) {
	updates := customer.Columns()
	updates["is_used"] = true
	updates["used_at"] = usedAt
	res := d.db.WithContext(ctx).Model(tables.TableDiscountCode{}).
		Where("code=? AND is_used=?", code, false).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (d *DbDao) UpdateToUnused(ctx context.Context, code string) (int64, error) {
	res := d.db.WithContext(ctx).Model(tables.TableDiscountCode{}).
		Where("code=? AND is_used=?", code, true).
		Updates(map[string]interface{}{
			"is_used":        false,
			"used_at":        nil,
			"customer_name":  nil,
			"customer_email": nil,
			"customer_phone": nil,
		})
	return res.RowsAffected, res.Error
}

// FindRawByDealId compares deal_id with value as given, without normalizing it.
func (d *DbDao) FindRawByDealId(ctx context.Context, value interface{}) ([]tables.RawDiscountCode, error) {
	rows := make([]map[string]interface{}, 0)
	if err := d.db.WithContext(ctx).Table(tables.TableNameDiscountCode).
		Where("deal_id=?", value).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toRaw(rows), nil
}

func (d *DbDao) ScanRaw(ctx context.Context, limit int) ([]tables.RawDiscountCode, error) {
	rows := make([]map[string]interface{}, 0)
	if err := d.db.WithContext(ctx).Table(tables.TableNameDiscountCode).
		Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toRaw(rows), nil
}

func toRaw(rows []map[string]interface{}) []tables.RawDiscountCode {
	res := make([]tables.RawDiscountCode, 0, len(rows))
	for _, v := range rows {
		res = append(res, v)
	}
	return res
}

func (d *DbDao) FindByDealId(ctx context.Context, dealId int64, limit, offset int) (list []tables.TableDiscountCode, err error) {
	err = d.db.WithContext(ctx).Where("deal_id=?", dealId).
		Order("is_used,id DESC").Limit(limit).Offset(offset).Find(&list).Error
	return
}

func (d *DbDao) DeleteByCode(ctx context.Context, code string) (int64, error) {
	res := d.db.WithContext(ctx).Where("code=?", code).Delete(&tables.TableDiscountCode{})
	return res.RowsAffected, res.Error
}

func (d *DbDao) DeleteByDealId(ctx context.Context, dealId int64) (int64, error) {
	res := d.db.WithContext(ctx).Where("deal_id=?", dealId).Delete(&tables.TableDiscountCode{})
	return res.RowsAffected, res.Error
}

func (d *DbDao) DeleteAllDiscountCodes(ctx context.Context) (int64, error) {
	res := d.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&tables.TableDiscountCode{})
	return res.RowsAffected, res.Error
}

// FindUsedWithoutUsedAt returns rows breaking the is_used/used_at pairing.
func (d *DbDao) FindUsedWithoutUsedAt(ctx context.Context, limit int) (list []tables.TableDiscountCode, err error) {
	err = d.db.WithContext(ctx).Where("is_used=? AND used_at IS NULL", true).
		Limit(limit).Find(&list).Error
	return
}

type DealStock struct {
	DealId int64 `json:"deal_id" gorm:"column:deal_id"`
	Total  int64 `json:"total" gorm:"column:total"`
	Unused int64 `json:"unused" gorm:"column:unused"`
}

func (d *DbDao) FindLowStockDeals(ctx context.Context, threshold int64) (list []DealStock, err error) {
	err = d.db.WithContext(ctx).Model(tables.TableDiscountCode{}).
		Select("deal_id, COUNT(*) AS total, SUM(CASE WHEN is_used=0 THEN 1 ELSE 0 END) AS unused").
		Group("deal_id").
		Having("unused<?", threshold).
		Order("unused").
		Scan(&list).Error
	return
}
