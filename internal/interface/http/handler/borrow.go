package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// BorrowHandler 借阅HTTP处理器
type BorrowHandler struct {
	svc *library.Service
}

// NewBorrowHandler 创建借阅处理器
func NewBorrowHandler(svc *library.Service) *BorrowHandler {
	return &BorrowHandler{svc: svc}
}

// BorrowBook 借书
// @Summary      借书
// @Description  库存-1并写入借阅记录；同一借书证不能同时借两本相同的书
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string            false "幂等键"
// @Param        request         body   dto.BorrowRequest true  "借书信息"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "40001 库存不足 / 40007 已借未还"
// @Router       /api/v1/borrows [post]
func (h *BorrowHandler) BorrowBook(c *gin.Context) {
	var req dto.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.svc.BorrowBook(c.Request.Context(), req.CardID, req.BookID, req.BorrowTime); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ReturnBook 还书
// @Summary      还书
// @Description  (借书证,图书,借出时间)必须匹配一条未归还记录
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string            false "幂等键"
// @Param        request         body   dto.ReturnRequest true  "还书信息"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "40405 借阅记录不存在或已归还"
// @Router       /api/v1/borrows/return [post]
func (h *BorrowHandler) ReturnBook(c *gin.Context) {
	var req dto.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	err := h.svc.ReturnBook(c.Request.Context(), req.CardID, req.BookID, req.BorrowTime, req.ReturnTime)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// BorrowHistory 借阅历史
// @Summary      借阅历史
// @Description  按借出时间降序；return_time为0表示未归还
// @Tags         借阅
// @Produce      json
// @Param        id path int true "借书证ID"
// @Success      200 {object} response.Response{data=[]dto.HistoryItemResponse}
// @Router       /api/v1/cards/{id}/borrows [get]
func (h *BorrowHandler) BorrowHistory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	items, err := h.svc.BorrowHistory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewHistoryResponse(items))
}
