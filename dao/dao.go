package dao

import (
	"fmt"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/config"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/tables"
	"github.com/scorpiotzh/mylog"
	"github.com/scorpiotzh/toolib"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var log = mylog.NewLogger("dao", mylog.LevelDebug)

type DbDao struct {
	db *gorm.DB
}

func NewGormDB(dbMysql config.DbMysql) (*DbDao, error) {
	db, err := toolib.NewGormDB(dbMysql.Addr, dbMysql.User, dbMysql.Password, dbMysql.DbName, dbMysql.MaxOpenConn, dbMysql.MaxIdleConn)
	if err != nil {
		return nil, fmt.Errorf("toolib.NewGormDB err: %s", err.Error())
	}
	db.Logger = logger.Default.LogMode(logger.Warn)
	return &DbDao{db: db}, nil
}

// NewDbDao wraps an already opened connection.
func NewDbDao(db *gorm.DB) *DbDao {
	return &DbDao{db: db}
}

// EnsureSchema creates or updates t_discount_code. deal_id is created as BIGINT so
// that every new row carries a single integer representation.
func (d *DbDao) EnsureSchema() error {
	if err := d.db.AutoMigrate(&tables.TableDiscountCode{}); err != nil {
		return fmt.Errorf("AutoMigrate err: %s", err.Error())
	}
	log.Info("EnsureSchema ok:", tables.TableNameDiscountCode)
	return nil
}
