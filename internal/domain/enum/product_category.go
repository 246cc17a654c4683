package enum

// ProductCategory classifies stock items.
type ProductCategory string

const (
	ProductCategoryFrame     ProductCategory = "frame"
	ProductCategoryLens      ProductCategory = "lens"
	ProductCategoryAccessory ProductCategory = "accessory"
	ProductCategoryService   ProductCategory = "service"
)

func (c ProductCategory) String() string {
	return string(c)
}

func (c ProductCategory) IsValid() bool {
	switch c {
	case ProductCategoryFrame, ProductCategoryLens, ProductCategoryAccessory, ProductCategoryService:
		return true
	}
	return false
}

func (c ProductCategory) Label() string {
	switch c {
	case ProductCategoryFrame:
		return "Armação"
	case ProductCategoryLens:
		return "Lente"
	case ProductCategoryAccessory:
		return "Acessório"
	case ProductCategoryService:
		return "Serviço"
	}
	return string(c)
}

// Tracked reports whether the category carries physical stock.
func (c ProductCategory) Tracked() bool {
	return c != ProductCategoryService
}

func (c *ProductCategory) UnmarshalJSON(data []byte) error {
	v, err := decodeCode(data, ProductCategory.IsValid, "product category")
	if err != nil {
		return err
	}
	*c = v
	return nil
}
