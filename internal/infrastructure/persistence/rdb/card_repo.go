package rdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/card"
)

// cardRepository 借书证仓储实现
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository 创建借书证仓储
func NewCardRepository(db *gorm.DB) card.Repository {
	return &cardRepository{db: db}
}

// Create 创建借书证
func (r *cardRepository) Create(ctx context.Context, c *card.Card) error {
	model := fromCardEntity(c)
	model.CardID = 0

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return card.ErrCardDuplicate
		}
		return wrapDBError(err, "创建借书证失败")
	}

	c.ID = model.CardID
	return nil
}

// FindByID 根据ID查找借书证
func (r *cardRepository) FindByID(ctx context.Context, id uint) (*card.Card, error) {
	var model CardModel
	err := getDB(ctx, r.db).Where("card_id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, card.ErrCardNotFound
		}
		return nil, wrapDBError(err, "查询借书证失败")
	}
	return toCardEntity(&model), nil
}

// ExistsIdentity (姓名,单位,类型)查重
func (r *cardRepository) ExistsIdentity(ctx context.Context, c *card.Card) (bool, error) {
	var count int64
	query := getDB(ctx, r.db).Model(&CardModel{}).Where(map[string]interface{}{
		"name":       c.Name,
		"department": c.Department,
		"type":       string(c.Type),
	})
	if c.ID != 0 {
		query = query.Where("card_id <> ?", c.ID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, wrapDBError(err, "借书证查重失败")
	}
	return count > 0, nil
}

// Update 覆盖姓名、单位、类型
func (r *cardRepository) Update(ctx context.Context, c *card.Card) error {
	result := getDB(ctx, r.db).Model(&CardModel{}).
		Where("card_id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":       c.Name,
			"department": c.Department,
			"type":       string(c.Type),
		})

	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return card.ErrCardDuplicate
		}
		return wrapDBError(result.Error, "更新借书证失败")
	}
	if result.RowsAffected == 0 {
		return card.ErrCardNotFound
	}
	return nil
}

// Delete 删除借书证
func (r *cardRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Where("card_id = ?", id).Delete(&CardModel{})
	if result.Error != nil {
		return wrapDBError(result.Error, "删除借书证失败")
	}
	if result.RowsAffected == 0 {
		return card.ErrCardNotFound
	}
	return nil
}

// List 全部借书证
func (r *cardRepository) List(ctx context.Context) ([]*card.Card, error) {
	var models []CardModel
	if err := getDB(ctx, r.db).Order("card_id ASC").Find(&models).Error; err != nil {
		return nil, wrapDBError(err, "查询借书证列表失败")
	}

	cards := make([]*card.Card, len(models))
	for i := range models {
		cards[i] = toCardEntity(&models[i])
	}
	return cards, nil
}
