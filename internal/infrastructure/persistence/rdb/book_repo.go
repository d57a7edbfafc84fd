package rdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/book"
)

// bookRepository 图书仓储实现
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(唯一索引冲突),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := fromBookEntity(b)
	model.BookID = 0

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrBookDuplicate
		}
		return wrapDBError(err, "创建图书失败")
	}

	// 回填自增ID
	b.ID = model.BookID
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Where("book_id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, wrapDBError(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// ExistsIdentity 五元组查重
func (r *bookRepository) ExistsIdentity(ctx context.Context, b *book.Book) (bool, error) {
	var count int64
	query := getDB(ctx, r.db).Model(&BookModel{}).Where(map[string]interface{}{
		"category":     b.Category,
		"title":        b.Title,
		"press":        b.Press,
		"publish_year": b.PublishYear,
		"author":       b.Author,
	})
	if b.ID != 0 {
		query = query.Where("book_id <> ?", b.ID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, wrapDBError(err, "图书查重失败")
	}
	return count > 0, nil
}

// UpdateInfo 更新图书信息
// 一条UPDATE覆盖描述字段和价格,库存不在更新列里
func (r *bookRepository) UpdateInfo(ctx context.Context, b *book.Book) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("book_id = ?", b.ID).
		Updates(map[string]interface{}{
			"category":     b.Category,
			"title":        b.Title,
			"press":        b.Press,
			"publish_year": b.PublishYear,
			"author":       b.Author,
			"price":        b.Price,
		})

	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrBookDuplicate
		}
		return wrapDBError(result.Error, "更新图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// Delete 删除图书
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Where("book_id = ?", id).Delete(&BookModel{})
	if result.Error != nil {
		return wrapDBError(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// UpdateStock 更新库存(原子操作)
func (r *bookRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	// UPDATE book SET stock = stock + delta WHERE book_id = ? AND stock + delta >= 0
	db := getDB(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("book_id = ?", id).
		Where("stock + ? >= 0", delta). // 防止库存为负
		Update("stock", gorm.Expr("stock + ?", delta))

	if result.Error != nil {
		return wrapDBError(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		// 可能是图书不存在,或者库存不足
		// 再查一次确定原因
		var model BookModel
		if err := db.Where("book_id = ?", id).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return wrapDBError(err, "查询图书失败")
		}
		if model.Stock+delta < 0 {
			return book.ErrInvalidStock
		}
		// 行存在且库存足够:驱动只统计了实际变更的行(delta=0)
	}

	return nil
}

// Find 按条件查询
// SQL由goqu按当前方言拼装,在事务DB上执行
func (r *bookRepository) Find(ctx context.Context, q book.Query) ([]*book.Book, error) {
	db := getDB(ctx, r.db)

	sqlQuery, err := buildBookQuery(goquDialect(db), q)
	if err != nil {
		return nil, err
	}

	var models []BookModel
	if err := db.Raw(sqlQuery).Scan(&models).Error; err != nil {
		return nil, wrapDBError(err, "查询图书失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}
