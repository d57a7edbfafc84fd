package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

func (c *cli) resetCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "清空全部数据并重建表",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				ok, err := c.confirm("将删除全部图书、借书证和借阅记录，确认继续? [y/N] ")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(c.out, "已取消")
					return nil
				}
			}

			svc, err := c.service()
			if err != nil {
				return err
			}
			if err := svc.ResetAll(commandContext(cmd)); err != nil {
				return err
			}
			return c.printJSON(map[string]bool{"reset": true})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "跳过确认")
	return cmd
}

// confirm 交互确认
// 标准输入不是终端(脚本、管道)时不能确认，要求显式--yes
func (c *cli) confirm(prompt string) (bool, error) {
	if !term.IsTerminal(int(c.in.Fd())) {
		return false, apperrors.New(apperrors.ErrCodeInvalidParams, "非交互环境请使用 --yes 确认")
	}
	fmt.Fprint(c.out, prompt)
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func (c *cli) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv>",
		Short: "从CSV批量入库(整批成功或整批失败)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			svc, err := c.service()
			if err != nil {
				return err
			}
			n, err := svc.ImportBooks(commandContext(cmd), f)
			if err != nil {
				return err
			}
			return c.printJSON(dto.ImportBooksResponse{Count: n})
		},
	}
}

// bookFilter books命令的过滤参数
// 只有用户显式传入的flag才会成为查询条件
type bookFilter struct {
	category, title, press, author string
	minYear, maxYear               int
	minPrice, maxPrice             float64
	sortBy, sortOrder              string
}

func (f *bookFilter) bindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.category, "category", "", "类别(精确匹配)")
	flags.StringVar(&f.title, "title", "", "书名(子串匹配)")
	flags.StringVar(&f.press, "press", "", "出版社(子串匹配)")
	flags.StringVar(&f.author, "author", "", "作者(子串匹配)")
	flags.IntVar(&f.minYear, "min-year", 0, "最早出版年份")
	flags.IntVar(&f.maxYear, "max-year", 0, "最晚出版年份")
	flags.Float64Var(&f.minPrice, "min-price", 0, "最低价格")
	flags.Float64Var(&f.maxPrice, "max-price", 0, "最高价格")
	flags.StringVar(&f.sortBy, "sort-by", "book_id", "排序字段")
	flags.StringVar(&f.sortOrder, "sort-order", "asc", "排序方向 asc|desc")
}

func (f *bookFilter) toQuery(cmd *cobra.Command) (book.Query, error) {
	var q book.Query
	flags := cmd.Flags()
	if flags.Changed("category") {
		q.Category = &f.category
	}
	if flags.Changed("title") {
		q.Title = &f.title
	}
	if flags.Changed("press") {
		q.Press = &f.press
	}
	if flags.Changed("author") {
		q.Author = &f.author
	}
	if flags.Changed("min-year") {
		q.MinPublishYear = &f.minYear
	}
	if flags.Changed("max-year") {
		q.MaxPublishYear = &f.maxYear
	}
	if flags.Changed("min-price") {
		q.MinPrice = &f.minPrice
	}
	if flags.Changed("max-price") {
		q.MaxPrice = &f.maxPrice
	}

	var err error
	if q.SortBy, err = book.ParseSortField(f.sortBy); err != nil {
		return q, err
	}
	if q.SortOrder, err = book.ParseSortOrder(f.sortOrder); err != nil {
		return q, err
	}
	return q, nil
}

func (c *cli) booksCommand() *cobra.Command {
	var f bookFilter
	cmd := &cobra.Command{
		Use:   "books",
		Short: "查询图书",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := f.toQuery(cmd)
			if err != nil {
				return err
			}
			svc, err := c.service()
			if err != nil {
				return err
			}
			books, err := svc.QueryBooks(commandContext(cmd), q)
			if err != nil {
				return err
			}
			return c.printJSON(dto.NewBookListResponse(books))
		},
	}

	f.bindFlags(cmd)
	return cmd
}

func (c *cli) cardsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cards",
		Short: "列出全部借书证",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.service()
			if err != nil {
				return err
			}
			cards, err := svc.ListCards(commandContext(cmd))
			if err != nil {
				return err
			}
			return c.printJSON(dto.NewCardListResponse(cards))
		},
	}
}

func (c *cli) historyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history <card-id>",
		Short: "查看借书证的借阅历史",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return apperrors.New(apperrors.ErrCodeInvalidParams, "无效的借书证ID: "+args[0])
			}
			svc, err := c.service()
			if err != nil {
				return err
			}
			items, err := svc.BorrowHistory(commandContext(cmd), uint(id))
			if err != nil {
				return err
			}
			return c.printJSON(dto.NewHistoryResponse(items))
		},
	}
}
