package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model
	Name        string
	Description string
	PriceCents  int
	ImageURL    string
	Stock       int  `gorm:"default:0"`
	Active      bool `gorm:"default:true"`
}

type Order struct {
	gorm.Model
	Reference  string `gorm:"unique;not null"` // uuid shown to the customer
	UserID     uint
	Status     string `gorm:"default:pending"` // pending, paid, shipped, cancelled
	TotalCents int
	Items      []OrderItem
}

type OrderItem struct {
	gorm.Model
	OrderID        uint
	ProductID      uint
	ProductName    string // snapshot at purchase time
	UnitPriceCents int
	Quantity       int
}
