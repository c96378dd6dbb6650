package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product representa el documento crudo de la colección `products`.
// Todos los campos son opcionales: los documentos vienen de fuentes
// distintas y ninguna forma está garantizada.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        *string            `bson:"name,omitempty"`
	Description *string            `bson:"description,omitempty"`
	Brand       *string            `bson:"brand,omitempty"`
	Category    interface{}        `bson:"category,omitempty"`
	Price       *float64           `bson:"price,omitempty"`
	Currency    *string            `bson:"currency,omitempty"`
	Images      []string           `bson:"images,omitempty"`
	Stock       *int64             `bson:"stock,omitempty"`
	Active      *bool              `bson:"active,omitempty"`
	Rating      interface{}        `bson:"rating,omitempty"`
}

// ListItem es la proyección reducida para listados.
type ListItem struct {
	ID       *string  `json:"id"`
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Currency *string  `json:"currency"`
	Image    *string  `json:"image"`
	Stock    *int64   `json:"stock"`
	Active   bool     `json:"active"`
}

// Detail es la proyección completa para la vista de detalle.
type Detail struct {
	ID          *string     `json:"id"`
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Price       *float64    `json:"price"`
	Currency    *string     `json:"currency"`
	Images      []string    `json:"images"`
	Stock       *int64      `json:"stock"`
	Active      bool        `json:"active"`
	Brand       *string     `json:"brand"`
	Category    *string     `json:"category"`
	Rating      interface{} `json:"rating"`
}

// ToListItem proyecta el documento a la vista de listado.
// Sin `_id` no hay id usable; sin `images` la imagen queda en null;
// sin `active` el producto se asume activo.
func (p *Product) ToListItem() ListItem {
	item := ListItem{
		Name:     p.Name,
		Price:    p.Price,
		Currency: p.Currency,
		Stock:    p.Stock,
		Active:   p.Active == nil || *p.Active,
	}
	if !p.ID.IsZero() {
		id := p.ID.Hex()
		item.ID = &id
	}
	if len(p.Images) > 0 {
		item.Image = &p.Images[0]
	}
	return item
}

// ToDetail proyecta el documento a la vista de detalle.
// `images` nunca es null en la salida, `category` se fuerza a string.
func (p *Product) ToDetail() Detail {
	detail := Detail{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		Images:      p.Images,
		Stock:       p.Stock,
		Active:      p.Active == nil || *p.Active,
		Brand:       p.Brand,
		Rating:      p.Rating,
	}
	if !p.ID.IsZero() {
		id := p.ID.Hex()
		detail.ID = &id
	}
	if detail.Images == nil {
		detail.Images = []string{}
	}
	if p.Category != nil {
		category := fmt.Sprintf("%v", p.Category)
		detail.Category = &category
	}
	return detail
}
