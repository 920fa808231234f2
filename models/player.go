package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Player holds roster and biographical data for one team member.
type Player struct {
	bun.BaseModel `bun:"table:player_bio,alias:p"`

	PlayerID   int       `bun:"player_id,pk,autoincrement" json:"id"`
	BamID      int64     `bun:"bam_id,notnull,unique" json:"bamId"`
	FirstName  string    `bun:"first_name,notnull" json:"firstName"`
	LastName   string    `bun:"last_name,notnull" json:"lastName"`
	Age        *int      `bun:"age" json:"age"`
	Height     *float64  `bun:"height" json:"height"`
	Weight     *float64  `bun:"weight" json:"weight"`
	Position   *string   `bun:"position" json:"position"`
	BirthPlace *string   `bun:"birth_place" json:"birthPlace"`
	ImageURL   *string   `bun:"image_url" json:"imageUrl"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"-"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"-"`
}

// FullName returns "First Last".
func (p *Player) FullName() string {
	return p.FirstName + " " + p.LastName
}
