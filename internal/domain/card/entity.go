package card

import "strings"

// CardType 借书证类型,存储为单字符
type CardType string

const (
	Student CardType = "S"
	Teacher CardType = "T"
)

// Valid 是否为已知类型
func (t CardType) Valid() bool {
	return t == Student || t == Teacher
}

// String 返回可读名称
func (t CardType) String() string {
	switch t {
	case Student:
		return "Student"
	case Teacher:
		return "Teacher"
	default:
		return string(t)
	}
}

// ParseCardType 解析借书证类型
// 接受 S/T、Student/Teacher 以及 学生/教师
func ParseCardType(s string) (CardType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "student", "学生":
		return Student, nil
	case "t", "teacher", "教师", "老师":
		return Teacher, nil
	default:
		return "", ErrInvalidCardType
	}
}

// Card 借书证实体
// (Name, Department, Type)唯一;存在未归还借阅时不能删除
type Card struct {
	ID         uint
	Name       string
	Department string
	Type       CardType
}

// Validate 校验借书证字段
func (c *Card) Validate() error {
	if !c.Type.Valid() {
		return ErrInvalidCardType
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidCard
	}
	return nil
}
