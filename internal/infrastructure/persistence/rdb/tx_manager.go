package rdb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/xiebiao/library/pkg/metrics"
)

// txKey context中事务DB的key
type txKey struct{}

// TxManager 事务管理器
// 设计说明:
// 1. 显式Begin/Commit/Rollback,隔离级别由调用方通过sql.TxOptions指定
// 2. 通过context传递事务DB(避免全局变量)
// 3. ctx中已有事务时直接加入该事务,不开启新事务也不使用Savepoint,
//    内层的失败由最外层统一回滚
type TxManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB, logger *slog.Logger) *TxManager {
	return &TxManager{db: db, logger: logger}
}

// Transaction 执行事务
// fn返回error时ROLLBACK,返回nil时COMMIT;
// 回滚失败只记录日志,返回给调用方的始终是fn的原始错误
//
// 使用示例:
//
//	err := txManager.Transaction(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(ctx context.Context) error {
//	    if err := bookRepo.UpdateStock(ctx, bookID, -1); err != nil {
//	        return err // 回滚
//	    }
//	    return borrowRepo.Create(ctx, record)
//	})
func (m *TxManager) Transaction(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	tx := m.db.WithContext(ctx).Begin(opts)
	if tx.Error != nil {
		return wrapTxError(tx.Error, "开启事务失败")
	}

	defer func() {
		if p := recover(); p != nil {
			m.rollback(ctx, tx, nil)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		m.rollback(ctx, tx, err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		// Commit失败后database/sql已结束该事务,无需再回滚
		metrics.RecordRollback()
		return wrapTxError(err, "提交事务失败")
	}
	return nil
}

func (m *TxManager) rollback(ctx context.Context, tx *gorm.DB, cause error) {
	metrics.RecordRollback()
	if err := tx.Rollback().Error; err != nil && !errors.Is(err, sql.ErrTxDone) {
		m.logger.ErrorContext(ctx, "事务回滚失败",
			slog.Any("error", err),
			slog.Any("cause", cause),
		)
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
