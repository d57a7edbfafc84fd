package card

import "context"

// Repository 借书证仓储接口
type Repository interface {
	Create(ctx context.Context, card *Card) error
	FindByID(ctx context.Context, id uint) (*Card, error)
	// ExistsIdentity 是否已有相同(姓名,单位,类型)的其他借书证(card.ID非0时排除自身)
	ExistsIdentity(ctx context.Context, card *Card) (bool, error)
	Update(ctx context.Context, card *Card) error
	Delete(ctx context.Context, id uint) error
	// List 按card_id升序返回全部借书证
	List(ctx context.Context) ([]*Card, error)
}
