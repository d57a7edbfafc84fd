package rdb

import (
	"context"

	"gorm.io/gorm"
)

// Schema 表结构初始化器,只被重置操作调用
// 删除顺序 borrow → book → card,创建顺序相反
type Schema struct {
	db *gorm.DB
}

// NewSchema 创建Schema
func NewSchema(db *gorm.DB) *Schema {
	return &Schema{db: db}
}

// DropAll 删除三张表
// MySQL的DDL会隐式提交当前事务,PostgreSQL和SQLite支持事务内DDL
func (s *Schema) DropAll(ctx context.Context) error {
	migrator := getDB(ctx, s.db).Migrator()
	// 逐个删除:Migrator.DropTable传多个模型时会自行排序
	for _, model := range []interface{}{&BorrowModel{}, &BookModel{}, &CardModel{}} {
		if err := migrator.DropTable(model); err != nil {
			return wrapDBError(err, "删除数据表失败")
		}
	}
	return nil
}

// CreateAll 创建三张表
func (s *Schema) CreateAll(ctx context.Context) error {
	migrator := getDB(ctx, s.db).Migrator()
	for _, model := range []interface{}{&CardModel{}, &BookModel{}, &BorrowModel{}} {
		if err := migrator.CreateTable(model); err != nil {
			return wrapDBError(err, "创建数据表失败")
		}
	}
	return nil
}
