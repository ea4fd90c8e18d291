package model

// DefaultPersonRole 未指定角色时使用的默认角色
const DefaultPersonRole = "Employee"

// Person 人员表 — 对应 persons
type Person struct {
	PersonID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex:uk_persons_name"  json:"name"`
	Role     string `gorm:"type:varchar(50);not null;default:'Employee'"          json:"role"`
	BaseModel
}

// TableName 指定表名
func (Person) TableName() string { return "persons" }
