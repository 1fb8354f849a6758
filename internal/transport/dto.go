package transport

type RegisterRequest struct {
	Login      string  `json:"login" form:"login"`
	Password   string  `json:"password" form:"password"`
	Name       string  `json:"name" form:"name"`
	Surname    string  `json:"surname" form:"surname"`
	Patronymic *string `json:"patronymic" form:"patronymic"`
}

type LoginRequest struct {
	Login    string `json:"login" form:"login"`
	Password string `json:"password" form:"password"`
}

type UpdateProfileRequest struct {
	Name       *string `json:"name" form:"name"`
	Surname    *string `json:"surname" form:"surname"`
	Patronymic *string `json:"patronymic" form:"patronymic"`
	Login      *string `json:"login" form:"login"`
	Password   *string `json:"password" form:"password"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" form:"name"`
	Price       float64 `json:"price" form:"price"`
	Description *string `json:"description" form:"description"`
}

type PatchProductRequest struct {
	Name        *string  `json:"name" form:"name"`
	Price       *float64 `json:"price" form:"price"`
	Description *string  `json:"description" form:"description"`
}

type AddToBasketRequest struct {
	ProductID uint `json:"product_id" form:"product_id"`
}
