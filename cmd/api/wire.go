//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/rdb"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖
// 包含：配置加载、日志、数据库连接、Redis连接
var infrastructureSet = wire.NewSet(
	config.Load,
	provideLogger,
	rdb.NewDB,
	redis.NewClient,
	provideIdempotencyStore,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	rdb.NewBookRepository,
	rdb.NewCardRepository,
	rdb.NewBorrowRepository,
	rdb.NewTxManager,
	rdb.NewSchema,
	wire.Bind(new(library.TxRunner), new(*rdb.TxManager)),
	wire.Bind(new(library.Schema), new(*rdb.Schema)),
)

// applicationSet 领域服务
var applicationSet = wire.NewSet(
	library.NewService,
)

// handlerSet HTTP处理器和路由
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewCardHandler,
	handler.NewBorrowHandler,
	handler.NewAdminHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 初始化整个应用
// 返回的cleanup按创建的逆序关闭Redis、数据库和日志文件
func InitializeApp() (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		applicationSet,
		handlerSet,
		newApp,
	)
	return nil, nil, nil
}
