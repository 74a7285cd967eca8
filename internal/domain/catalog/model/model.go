package model

import (
	"cmp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uint    `gorm:"column:product_id;primaryKey" json:"product_id"`
	Name        string  `gorm:"column:product_name;size:150;not null" json:"product_name"`
	Price       float64 `gorm:"type:numeric(10,2);not null;check:price > 0" json:"price"`
	Description string  `gorm:"size:250;not null" json:"description"`
	Category    string  `gorm:"size:50;not null" json:"category"`
	Available   bool    `gorm:"not null" json:"available"`
}

// ChangeLogEntry records one catalog mutation and who made it.
type ChangeLogEntry struct {
	ID     uint      `gorm:"column:id_log;primaryKey" json:"log_id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Log    string    `gorm:"size:250;not null" json:"log"`
	Date   time.Time `gorm:"not null" json:"date"`
}

func (ChangeLogEntry) TableName() string { return "change_log" }

// MenuItem is the public projection of an available product.
type MenuItem struct {
	Name        string  `json:"product_name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

type SortField string

const (
	SortByID          SortField = "product_id"
	SortByName        SortField = "product_name"
	SortByPrice       SortField = "price"
	SortByDescription SortField = "description"
	SortByCategory    SortField = "category"
	SortByAvailable   SortField = "available"
)

// SortFields lists the supported orderings in the order they are reported to clients.
var SortFields = []SortField{
	SortByID, SortByName, SortByPrice, SortByDescription, SortByCategory, SortByAvailable,
}

var comparators = map[SortField]func(a, b Product) int{
	SortByID:          func(a, b Product) int { return cmp.Compare(a.ID, b.ID) },
	SortByName:        func(a, b Product) int { return strings.Compare(a.Name, b.Name) },
	SortByPrice:       func(a, b Product) int { return cmp.Compare(a.Price, b.Price) },
	SortByDescription: func(a, b Product) int { return strings.Compare(a.Description, b.Description) },
	SortByCategory:    func(a, b Product) int { return strings.Compare(a.Category, b.Category) },
	SortByAvailable:   func(a, b Product) int { return compareBool(a.Available, b.Available) },
}

// Comparator returns the ordering function for f, or false if f is not sortable.
func (f SortField) Comparator() (func(a, b Product) int, bool) {
	c, ok := comparators[f]
	return c, ok
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
