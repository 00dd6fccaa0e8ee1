package tables

import "time"

// BlingToken is the singleton OAuth token record for the Bling integration.
// A refresh replaces the row, it never appends.
type BlingToken struct {
	tableName    struct{}  `bun:"table:bling_tokens,alias:bt"`
	Id           int64     `bun:"id,pk" json:"id"` // always 1
	AccessToken  string    `bun:"access_token,notnull" json:"-"`
	RefreshToken string    `bun:"refresh_token,notnull" json:"-"`
	ExpiresAt    time.Time `bun:"expires_at,notnull" json:"expires_at"`
	TokenType    string    `bun:"token_type" json:"token_type,omitempty"`
	Scope        string    `bun:"scope" json:"scope,omitempty"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// BlingTokenID is the fixed primary key of the singleton row.
const BlingTokenID int64 = 1
