package mapper

import "github.com/unclebandit/ecommerce-services/internal/model"

func ToProduct(req model.ProductRequest) *model.Product {
	return &model.Product{
		Name:              req.Name,
		Description:       req.Description,
		AvailableQuantity: req.AvailableQuantity,
		Price:             req.Price,
	}
}

func ToProductResponse(p model.Product) model.ProductResponse {
	return model.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		AvailableQuantity: p.AvailableQuantity,
		Price:             p.Price,
	}
}

func ToPurchaseResponse(p model.Product, quantity int) model.PurchaseResponse {
	return model.PurchaseResponse{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    quantity,
	}
}
