package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// CardHandler 借书证HTTP处理器
type CardHandler struct {
	svc *library.Service
}

// NewCardHandler 创建借书证处理器
func NewCardHandler(svc *library.Service) *CardHandler {
	return &CardHandler{svc: svc}
}

// RegisterCard 办理借书证
// @Summary      办理借书证
// @Tags         借书证
// @Accept       json
// @Produce      json
// @Param        request body dto.CardRequest true "借书证信息"
// @Success      200 {object} response.Response{data=dto.RegisterCardResponse}
// @Failure      200 {object} response.Response "40009 借书证已存在"
// @Router       /api/v1/cards [post]
func (h *CardHandler) RegisterCard(c *gin.Context) {
	var req dto.CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	entity, err := req.ToEntity(0)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := h.svc.RegisterCard(c.Request.Context(), entity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.RegisterCardResponse{CardID: id})
}

// UpdateCard 修改借书证
// @Summary      修改借书证
// @Tags         借书证
// @Accept       json
// @Produce      json
// @Param        id      path int             true "借书证ID"
// @Param        request body dto.CardRequest true "借书证信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/cards/{id} [put]
func (h *CardHandler) UpdateCard(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	entity, err := req.ToEntity(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.svc.UpdateCard(c.Request.Context(), entity); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// RemoveCard 注销借书证
// @Summary      注销借书证
// @Description  有未归还的图书时不能注销
// @Tags         借书证
// @Produce      json
// @Param        id path int true "借书证ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/cards/{id} [delete]
func (h *CardHandler) RemoveCard(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.RemoveCard(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListCards 借书证列表
// @Summary      借书证列表
// @Tags         借书证
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.CardResponse}
// @Router       /api/v1/cards [get]
func (h *CardHandler) ListCards(c *gin.Context) {
	cards, err := h.svc.ListCards(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCardListResponse(cards))
}
