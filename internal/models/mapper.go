package models

// =============================================================================
// MAPPER - Convert between DTOs and persistence models
// =============================================================================
//
// Pure field-for-field conversion. No validation happens here (that is done
// by the binding tags before a handler ever calls these), and none of these
// functions can fail. List variants always return a non-nil slice so the
// JSON encoder writes [] instead of null.

// ToCategoryModel converts a CategoryDTO into a Category model
func ToCategoryModel(dto CategoryDTO) *Category {
	return &Category{
		ID:   dto.ID,
		Name: dto.Name,
	}
}

// ToCategoryDTO converts a Category model into its wire format
func ToCategoryDTO(c *Category) CategoryDTO {
	return CategoryDTO{
		ID:   c.ID,
		Name: c.Name,
	}
}

// ToCategoryDTOList converts a slice of categories
func ToCategoryDTOList(categories []Category) []CategoryDTO {
	dtos := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, ToCategoryDTO(&categories[i]))
	}
	return dtos
}

// ToProductModel converts a ProductDTO into a Product model.
// A missing category yields CategoryID 0 and a nil Category.
func ToProductModel(dto ProductDTO) *Product {
	product := &Product{
		ID:   dto.ID,
		Name: dto.Name,
	}
	if dto.Price != nil {
		product.Price = *dto.Price
	}
	if dto.Category != nil {
		product.CategoryID = dto.Category.ID
		product.Category = &Category{
			ID:   dto.Category.ID,
			Name: dto.Category.Name,
		}
	}
	return product
}

// ToProductDTO converts a Product model into its wire format
func ToProductDTO(p *Product) ProductDTO {
	price := p.Price
	dto := ProductDTO{
		ID:    p.ID,
		Name:  p.Name,
		Price: &price,
	}

	switch {
	case p.Category != nil:
		dto.Category = &ProductCategoryDTO{ID: p.Category.ID, Name: p.Category.Name}
	case p.CategoryID != 0:
		dto.Category = &ProductCategoryDTO{ID: p.CategoryID}
	}
	return dto
}

// ToProductDTOList converts a slice of products
func ToProductDTOList(products []Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, ToProductDTO(&products[i]))
	}
	return dtos
}

// ToProductSummaryDTOList converts products listed under a category,
// leaving out the category back-pointer
func ToProductSummaryDTOList(products []Product) []ProductSummaryDTO {
	dtos := make([]ProductSummaryDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, ProductSummaryDTO{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
		})
	}
	return dtos
}
