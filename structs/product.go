package structs

type ProductRequest struct {
	Name         string  `json:"name" validate:"required,min=3,max=200"`
	Description  string  `json:"description" validate:"required,min=10,max=2000"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Category     string  `json:"category" validate:"omitempty,min=2,max=100"`
	MainImageUrl string  `json:"main_image_url" validate:"omitempty,url"`
}
