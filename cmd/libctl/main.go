// libctl 图书馆管理命令行工具
//
// 与API共用同一套配置和领域服务，直接连接数据库执行：
//
//	libctl reset [--yes]
//	libctl import books.csv
//	libctl books --category 计算机 --max-price 100 --sort-by price --sort-order desc
//	libctl cards
//	libctl history 1
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/rdb"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// cli 命令共享的状态
type cli struct {
	configFile string
	out        io.Writer
	in         *os.File

	svc     *library.Service
	cleanup func()
}

func main() {
	c := &cli{out: os.Stdout, in: os.Stdin}
	root := c.rootCommand()
	err := root.Execute()
	c.close()
	if err != nil {
		if apperrors.IsAppError(err) {
			appErr := apperrors.GetAppError(err)
			fmt.Fprintf(os.Stderr, "错误[%d %s]: %s\n", appErr.Code, appErr.Kind(), appErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		}
		os.Exit(1)
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "libctl",
		Short:         "图书馆管理工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "配置文件路径(默认按./config/config.yaml查找)")

	root.AddCommand(
		c.resetCommand(),
		c.importCommand(),
		c.booksCommand(),
		c.cardsCommand(),
		c.historyCommand(),
	)
	return root
}

// service 懒加载领域服务，只有真正执行命令时才连接数据库
func (c *cli) service() (*library.Service, error) {
	if c.svc != nil {
		return c.svc, nil
	}

	cfg, err := config.LoadFrom(c.configFile)
	if err != nil {
		return nil, err
	}

	// 标准输出留给JSON结果：日志一律写stderr，也不打印SQL
	cfg.Server.Mode = "release"
	lg, closeLog, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "stderr",
	})
	if err != nil {
		return nil, err
	}

	db, closeDB, err := rdb.NewDB(cfg, lg)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	if err := rdb.Migrate(db); err != nil {
		closeDB()
		_ = closeLog()
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	c.svc = library.NewService(
		rdb.NewTxManager(db, lg),
		rdb.NewBookRepository(db),
		rdb.NewCardRepository(db),
		rdb.NewBorrowRepository(db),
		rdb.NewSchema(db),
		lg,
	)
	c.cleanup = func() {
		closeDB()
		_ = closeLog()
	}
	slog.SetDefault(lg)
	return c.svc, nil
}

func (c *cli) close() {
	if c.cleanup != nil {
		c.cleanup()
	}
}

// printJSON 结果统一以缩进JSON输出
func (c *cli) printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, string(data))
	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
