package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	Price       float64        `json:"price"`
	ImageURL    *string        `json:"image_url,omitempty"`
	Category    string         `json:"category"`
	Sizes       pq.StringArray `json:"sizes"`
	Stock       int            `json:"stock"`
	CreatedAt   time.Time      `json:"created_at"`
}

type CreateProductParams struct {
	Name        string
	Description *string
	Price       float64
	ImageURL    *string
	Category    string
	Sizes       []string
	Stock       int
}

type UpdateProductParams struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	Category    *string
	Sizes       []string
	Stock       *int
}
