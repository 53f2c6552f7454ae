package models

// DefaultCartID identifies the single anonymous cart served over HTTP.
const DefaultCartID = "default"

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null"                 json:"name"`
}

func (Category) TableName() string {
	return "categories"
}

type Product struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null"                 json:"name"`
	Description string `json:"description"`
	Price       int64  `gorm:"not null"                 json:"price"`
	Images      Images `gorm:"type:text"                json:"images"`
	CategoryID  uint   `gorm:"index"                    json:"category_id"`
}

func (Product) TableName() string {
	return "products"
}

// ProductView is a product joined with the name of its category.
type ProductView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Images      Images `json:"images"`
	Category    string `json:"category"`
}

// CartItem is one product line of a cart. Name, price and images are a
// snapshot taken when the product was first added.
type CartItem struct {
	CartID    string `gorm:"primaryKey;size:64"               json:"-"`
	ProductID int64  `gorm:"primaryKey;autoIncrement:false"      json:"id"`
	Name      string `gorm:"not null"                            json:"name"`
	Price     int64  `gorm:"not null"                            json:"price"`
	Images    Images `gorm:"type:text"                           json:"images"`
	Quantity  int64  `gorm:"not null;default:1"                  json:"quantity"`
}

func (CartItem) TableName() string {
	return "cart"
}
