package book

// Book 图书实体(聚合根)
// 设计说明:
// 1. ID由数据库生成,创建后不可变
// 2. (Category, Title, Press, PublishYear, Author)唯一,入库前在事务内检查
// 3. Stock只能通过库存调整修改,整体修改图书信息时不会覆盖库存
type Book struct {
	ID          uint
	Category    string  // 类别
	Title       string  // 书名
	Press       string  // 出版社
	PublishYear int     // 出版年份
	Author      string  // 作者
	Price       float64 // 价格,非负
	Stock       int     // 库存,非负
}

// Validate 校验图书字段
// 业务规则:价格、库存不能为负数
func (b *Book) Validate() error {
	if b.Price < 0 {
		return ErrInvalidPrice
	}
	if b.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

// SameIdentity 判断两本书的唯一性五元组是否相同
func (b *Book) SameIdentity(other *Book) bool {
	return b.Category == other.Category &&
		b.Title == other.Title &&
		b.Press == other.Press &&
		b.PublishYear == other.PublishYear &&
		b.Author == other.Author
}
