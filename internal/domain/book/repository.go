package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 所有方法都会参与ctx中携带的事务
type Repository interface {
	// Create 创建图书,回填ID
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// ExistsIdentity 是否已有相同五元组的其他图书(book.ID非0时排除自身)
	ExistsIdentity(ctx context.Context, book *Book) (bool, error)

	// UpdateInfo 覆盖描述字段和价格,不修改库存
	UpdateInfo(ctx context.Context, book *Book) error

	// Delete 删除图书
	Delete(ctx context.Context, id uint) error

	// UpdateStock 调整库存(原子操作)
	// delta为正数表示增加,负数表示减少
	// 图书不存在返回ErrBookNotFound,调整后为负返回ErrInvalidStock
	UpdateStock(ctx context.Context, id uint, delta int) error

	// Find 按条件查询图书
	Find(ctx context.Context, q Query) ([]*Book, error)
}
