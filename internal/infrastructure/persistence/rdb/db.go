package rdb

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 按database.driver选择方言(mysql / postgres / sqlite)
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. auto_migrate开启时自动建表
// 返回的cleanup在进程退出时关闭连接池
func NewDB(cfg *config.Config, lg *slog.Logger) (*gorm.DB, func(), error) {
	db, err := Open(cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, nil, err
	}

	lg.Info("数据库连接成功", slog.String("db", cfg.Database.Describe()))

	// 注意：生产环境应使用专门的迁移工具
	if cfg.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			_ = Close(db)
			return nil, nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	cleanup := func() {
		if err := Close(db); err != nil {
			lg.Error("关闭数据库失败", slog.Any("error", err))
		}
	}
	return db, cleanup, nil
}

// Open 打开连接并配置连接池，不做迁移
func Open(cfg config.DatabaseConfig, mode string) (*gorm.DB, error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
		// 唯一索引冲突统一转换成gorm.ErrDuplicatedKey
		TranslateError: true,
		// 事务由TxManager显式控制，单条写入不再包一层事务
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	maxOpen, maxIdle, lifetime := cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime
	if cfg.Driver == config.DriverSQLite {
		// 内存库每个连接都是独立的库，只能保持一个长连接
		if cfg.Path == ":memory:" || maxOpen <= 0 {
			maxOpen, maxIdle, lifetime = 1, 1, 0
		}
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	return db, nil
}

// Close 关闭连接池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		return gormmysql.Open(cfg.DSN()), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// Migrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&CardModel{},
		&BookModel{},
		&BorrowModel{},
	)
}
