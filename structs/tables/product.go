package tables

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	tableName    struct{}   `bun:"table:products,alias:p"`
	Id           uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name         string     `bun:"name,notnull" json:"name"`
	Description  string     `bun:"description,notnull" json:"description"`
	PriceCents   uint64     `bun:"price_cents,notnull" json:"price_cents"`
	Category     string     `bun:"category,nullzero" json:"category,omitempty"`
	MainImageUrl string     `bun:"main_image_url,nullzero" json:"main_image_url,omitempty"`
	CreatedById  *uuid.UUID `bun:"created_by_id,type:uuid" json:"created_by_id,omitempty"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
