package models

import (
	"time"

	"github.com/uptrace/bun"
)

// BattingEvent is one pitch seen by a team batter.
// Every pitch of a plate appearance is its own row; (GameID, AtBatNumber)
// identifies the plate appearance.
type BattingEvent struct {
	bun.BaseModel `bun:"table:batting_info,alias:b"`

	ID          int       `bun:"id,pk,autoincrement" json:"id"`
	PlayerID    int       `bun:"player_id,notnull" json:"playerID"`
	GameDate    time.Time `bun:"game_date,notnull,type:date" json:"gameDate"`
	GameID      int64     `bun:"game_bam_id,notnull" json:"gameID"`
	AtBatNumber int       `bun:"at_bat_number,notnull" json:"atBatNumber"`
	Inning      int       `bun:"inning,notnull" json:"inning"`
	PitchSeq    int       `bun:"pitch_seq,notnull" json:"pitchSeq"`

	EventType   *string `bun:"event_type" json:"eventType,omitempty"`
	Description *string `bun:"description" json:"description,omitempty"`
	Outcome     string  `bun:"outcome,notnull,default:''" json:"outcome"`

	HitTrajectory      *string  `bun:"hit_trajectory" json:"hitTrajectory,omitempty"`
	HitExitSpeed       *float64 `bun:"hit_exit_speed" json:"hitExitSpeed,omitempty"`
	HitVerticalAngle   *float64 `bun:"hit_vertical_angle" json:"hitVerticalAngle,omitempty"`
	HitHorizontalAngle *float64 `bun:"hit_horizontal_angle" json:"hitHorizontalAngle,omitempty"`
	HitDistance        *float64 `bun:"hit_distance" json:"hitDistance,omitempty"`
	HitBearing         *float64 `bun:"hit_bearing" json:"hitBearing,omitempty"`

	PreBalls     *int `bun:"pre_balls" json:"preBalls,omitempty"`
	PreStrikes   *int `bun:"pre_strikes" json:"preStrikes,omitempty"`
	PostBalls    *int `bun:"post_balls" json:"postBalls,omitempty"`
	PostStrikes  *int `bun:"post_strikes" json:"postStrikes,omitempty"`
	PreVScore    *int `bun:"pre_vscore" json:"preVScore,omitempty"`
	PostVScore   *int `bun:"post_vscore" json:"postVScore,omitempty"`
	PreBasecode  *int `bun:"pre_basecode" json:"preBasecode,omitempty"`
	PostBasecode *int `bun:"post_basecode" json:"postBasecode,omitempty"`

	PreR1BamID  *int64 `bun:"pre_r1_bam_id" json:"preR1BamID,omitempty"`
	PreR2BamID  *int64 `bun:"pre_r2_bam_id" json:"preR2BamID,omitempty"`
	PreR3BamID  *int64 `bun:"pre_r3_bam_id" json:"preR3BamID,omitempty"`
	PostR1BamID *int64 `bun:"post_r1_bam_id" json:"postR1BamID,omitempty"`
	PostR2BamID *int64 `bun:"post_r2_bam_id" json:"postR2BamID,omitempty"`
	PostR3BamID *int64 `bun:"post_r3_bam_id" json:"postR3BamID,omitempty"`

	Swing          *bool    `bun:"swing" json:"swing,omitempty"`
	Contact        *bool    `bun:"contact" json:"contact,omitempty"`
	InPlay         *bool    `bun:"in_play" json:"inPlay,omitempty"`
	PitchType      *string  `bun:"pitch_type" json:"pitchType,omitempty"`
	PlateX         *float64 `bun:"plate_x" json:"plateX,omitempty"`
	PlateZ         *float64 `bun:"plate_z" json:"plateZ,omitempty"`
	CalledStrike   *bool    `bun:"called_strike" json:"calledStrike,omitempty"`
	SwingingStrike *bool    `bun:"swinging_strike" json:"swingingStrike,omitempty"`
	Chase          *bool    `bun:"chase" json:"chase,omitempty"`
	Ball           *bool    `bun:"ball" json:"ball,omitempty"`

	FirstName string `bun:"first_name,notnull" json:"firstName"`
	LastName  string `bun:"last_name,notnull" json:"lastName"`
}
