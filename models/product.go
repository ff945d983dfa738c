package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/apperr"
)

type Product struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name" binding:"required"`
	Description        string             `bson:"description" json:"description" binding:"required"`
	Price              float64            `bson:"price" json:"price"`
	Images             []string           `bson:"images" json:"images" binding:"required"`
	Category           string             `bson:"category" json:"category" binding:"required"`
	Tags               []string           `bson:"tags" json:"tags"`
	Rating             float64            `bson:"rating" json:"rating"`
	Reviews            int                `bson:"reviews" json:"reviews"`
	Stock              int                `bson:"stock" json:"stock"`
	Featured           bool               `bson:"featured" json:"featured"`
	DiscountPercentage *float64           `bson:"discountPercentage,omitempty" json:"discountPercentage,omitempty"`
	IsNew              bool               `bson:"new" json:"new"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate enforces the catalog invariants before a product is written.
func (p *Product) Validate() error {
	if p.Price < 0 {
		return apperr.Invalid("price must not be negative")
	}
	if p.Stock < 0 {
		return apperr.Invalid("stock must not be negative")
	}
	if len(p.Images) == 0 {
		return apperr.Invalid("at least one product image is required")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return apperr.Invalid("rating must be between 0 and 5")
	}
	if p.DiscountPercentage != nil && (*p.DiscountPercentage < 0 || *p.DiscountPercentage > 100) {
		return apperr.Invalid("discount percentage must be between 0 and 100")
	}
	return nil
}

// ProductUpdate is the partial-update payload: nil fields are left alone.
type ProductUpdate struct {
	Name               *string   `json:"name"`
	Description        *string   `json:"description"`
	Price              *float64  `json:"price"`
	Images             *[]string `json:"images"`
	Category           *string   `json:"category"`
	Tags               *[]string `json:"tags"`
	Rating             *float64  `json:"rating"`
	Reviews            *int      `json:"reviews"`
	Stock              *int      `json:"stock"`
	Featured           *bool     `json:"featured"`
	DiscountPercentage *float64  `json:"discountPercentage"`
	IsNew              *bool     `json:"new"`
}

func (u *ProductUpdate) Validate() error {
	if u.Price != nil && *u.Price < 0 {
		return apperr.Invalid("price must not be negative")
	}
	if u.Stock != nil && *u.Stock < 0 {
		return apperr.Invalid("stock must not be negative")
	}
	if u.Images != nil && len(*u.Images) == 0 {
		return apperr.Invalid("at least one product image is required")
	}
	if u.Rating != nil && (*u.Rating < 0 || *u.Rating > 5) {
		return apperr.Invalid("rating must be between 0 and 5")
	}
	if u.DiscountPercentage != nil && (*u.DiscountPercentage < 0 || *u.DiscountPercentage > 100) {
		return apperr.Invalid("discount percentage must be between 0 and 100")
	}
	return nil
}
