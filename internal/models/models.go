package models

type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string  `gorm:"not null"                 json:"name"`
	Surname      string  `gorm:"not null"                 json:"surname"`
	Patronymic   *string `json:"patronymic,omitempty"`
	Login        string  `gorm:"uniqueIndex;not null"     json:"login"`
	PasswordHash string  `gorm:"not null"                 json:"-"`
	Photo        *string `json:"photo,omitempty"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Description *string `json:"description,omitempty"`
	Photo       *string `json:"photo,omitempty"`
}

type BasketItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"                     json:"id"`
	UserID    uint    `gorm:"uniqueIndex:idx_basket_user_product;not null" json:"user_id"`
	ProductID uint    `gorm:"uniqueIndex:idx_basket_user_product;not null" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID"                         json:"product"`
}
