package rdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// isDuplicateError 判断是否为唯一索引/主键冲突
// - MySQL: 1062 Duplicate entry 'xxx' for key 'yyy'
// - PostgreSQL: 23505 unique_violation
// - SQLite: SQLITE_CONSTRAINT_UNIQUE / SQLITE_CONSTRAINT_PRIMARYKEY
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	// TranslateError开启后三种方言都会转换成这个错误
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) &&
		(liteErr.ExtendedCode == sqlite3.ErrConstraintUnique || liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return true
	}

	// 兼容检查:错误信息
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// isConflictError 并发事务冲突:死锁、锁等待超时、串行化失败、库被锁
func isConflictError(err error) bool {
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1213 || myErr.Number == 1205
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}
	return false
}

// isUnavailableError 连接层面的失败
func isUnavailableError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, mysqldriver.ErrInvalidConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 08xxx: connection_exception
		return strings.HasPrefix(pgErr.Code, "08")
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.Timeout(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// wrapDBError 数据库错误 → AppError
// 冲突和连接错误有固定分类,其余按message包装成内部错误
func wrapDBError(err error, message string) error {
	switch {
	case isConflictError(err):
		return apperrors.WrapCode(err, apperrors.ErrCodeWriteConflict, "数据写入冲突，请重试")
	case isUnavailableError(err):
		return apperrors.WrapCode(err, apperrors.ErrCodeStoreUnavailable, "数据库不可用")
	default:
		return apperrors.Wrap(err, message)
	}
}

// wrapTxError 开启/提交事务失败
// 除写冲突外一律视为数据库不可用
func wrapTxError(err error, message string) error {
	if isConflictError(err) {
		return apperrors.WrapCode(err, apperrors.ErrCodeWriteConflict, "数据写入冲突，请重试")
	}
	return apperrors.WrapCode(err, apperrors.ErrCodeStoreUnavailable, message)
}
