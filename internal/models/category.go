package models

import (
	"strings"
	"time"

	"github.com/ait-marketplace/internal/constants"
)

// Category 商品分类（支持多级）
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`                               // 主键
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // 分类名称
	Description string    `gorm:"type:text" json:"description"`                       // 描述
	ParentID    *uint     `gorm:"index" json:"parent_id"`                             // 父分类
	ImageURL    string    `gorm:"type:varchar(500)" json:"image_url"`                 // 分类图片
	IsActive    bool      `gorm:"not null;index" json:"is_active"`                    // 是否启用
	SortOrder   int       `gorm:"not null;default:0;index" json:"sort_order"`         // 排序权重
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                         // 更新时间

	Parent     *Category           `gorm:"foreignKey:ParentID" json:"-"`                      // 父分类
	Children   []Category          `gorm:"foreignKey:ParentID" json:"children,omitempty"`     // 子分类
	Parameters []CategoryParameter `gorm:"foreignKey:CategoryID" json:"parameters,omitempty"` // 分类参数
	FullPath   string              `gorm:"-" json:"full_path,omitempty"`                      // 完整路径（A > B）
	ItemCount  int64               `gorm:"-" json:"item_count,omitempty"`                     // 在售商品数
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// CategoryParameter 分类参数定义
type CategoryParameter struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CategoryID    uint      `gorm:"not null;index" json:"category_id"`
	Name          string    `gorm:"type:varchar(100);not null" json:"name"`
	ParameterType string    `gorm:"type:varchar(20);not null;default:'text'" json:"parameter_type"`
	IsRequired    bool      `gorm:"not null;default:false" json:"is_required"`
	Choices       string    `gorm:"type:text" json:"choices"` // 以换行分隔的候选项
	SortOrder     int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`

	ChoiceItems []string `gorm:"-" json:"choice_list"` // 解析后的候选项
}

// TableName 指定表名
func (CategoryParameter) TableName() string {
	return "category_parameters"
}

// ChoiceList 返回候选项列表
func (p CategoryParameter) ChoiceList() []string {
	if p.ParameterType != constants.CategoryParamChoice && p.ParameterType != constants.CategoryParamMultiChoice {
		return []string{}
	}
	result := make([]string, 0)
	for _, line := range strings.Split(p.Choices, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}
