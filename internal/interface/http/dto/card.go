package dto

import (
	"github.com/xiebiao/library/internal/domain/card"
)

// CardRequest 办证/修改借书证请求
// type接受 S/T、student/teacher、学生/教师
type CardRequest struct {
	Name       string `json:"name" binding:"required,max=63" example:"张三"`
	Department string `json:"department" binding:"required,max=63" example:"计算机学院"`
	Type       string `json:"type" binding:"required" example:"S"`
}

// ToEntity 转换为领域实体
func (r *CardRequest) ToEntity(id uint) (*card.Card, error) {
	cardType, err := card.ParseCardType(r.Type)
	if err != nil {
		return nil, err
	}
	return &card.Card{
		ID:         id,
		Name:       r.Name,
		Department: r.Department,
		Type:       cardType,
	}, nil
}

// CardResponse 借书证响应
type CardResponse struct {
	CardID     uint   `json:"card_id" example:"1"`
	Name       string `json:"name" example:"张三"`
	Department string `json:"department" example:"计算机学院"`
	Type       string `json:"type" example:"S"`
}

// NewCardListResponse 列表响应
func NewCardListResponse(cards []*card.Card) []CardResponse {
	list := make([]CardResponse, len(cards))
	for i, c := range cards {
		list[i] = CardResponse{
			CardID:     c.ID,
			Name:       c.Name,
			Department: c.Department,
			Type:       string(c.Type),
		}
	}
	return list
}

// RegisterCardResponse 办证响应
type RegisterCardResponse struct {
	CardID uint `json:"card_id" example:"1"`
}
