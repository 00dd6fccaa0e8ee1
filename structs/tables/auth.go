package tables

import (
	"time"

	"github.com/google/uuid"
)

type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type User struct {
	tableName    struct{}  `bun:"table:users,alias:u"`
	Id           uuid.UUID `json:"id" bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name         string    `json:"name" bun:"name,notnull"`
	Email        string    `json:"email" bun:"email,unique,notnull"`
	PasswordHash string    `json:"-" bun:"password_hash,notnull"`
	Role         string    `json:"role" bun:"role,notnull,default:'CLIENT'"`
	Approved     bool      `json:"approved" bun:"approved,notnull,default:false"`
	LastLogin    time.Time `json:"last_login" bun:"last_login,default:now()"`
	CreatedAt    time.Time `json:"created_at" bun:"created_at,notnull,default:now()"`
	UpdatedAt    time.Time `json:"updated_at" bun:"updated_at,notnull,default:now()"`
}

const (
	RoleClient = "CLIENT"
	RoleAdmin  = "ADMIN"
)
