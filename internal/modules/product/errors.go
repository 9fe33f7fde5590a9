package product

import "errors"

var (
	ErrNotFound           = errors.New("product not found")
	ErrDuplicateProductID = errors.New("product_id already exists")
)
