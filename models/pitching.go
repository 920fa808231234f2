package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PitchingEvent is one pitch thrown by a team pitcher.
type PitchingEvent struct {
	bun.BaseModel `bun:"table:pitching_info,alias:pi"`

	ID          int       `bun:"id,pk,autoincrement" json:"id"`
	PlayerID    int       `bun:"player_id,notnull" json:"playerID"`
	GameDate    time.Time `bun:"game_date,notnull,type:date" json:"gameDate"`
	GameID      int64     `bun:"game_bam_id,notnull" json:"gameID"`
	AtBatNumber int       `bun:"at_bat_number,notnull" json:"atBatNumber"`
	Inning      int       `bun:"inning,notnull" json:"inning"`
	PitchSeq    int       `bun:"pitch_seq,notnull" json:"pitchSeq"`

	PitchType        *string  `bun:"pitch_type" json:"pitchType,omitempty"`
	HorzBreak        *float64 `bun:"horz_break" json:"horzBreak,omitempty"`
	InducedVertBreak *float64 `bun:"induced_vert_break" json:"inducedVertBreak,omitempty"`
	RelSpeed         *float64 `bun:"rel_speed" json:"relSpeed,omitempty"`
	SpinRate         *float64 `bun:"spin_rate" json:"spinRate,omitempty"`
	SpinAxis         *float64 `bun:"spin_axis" json:"spinAxis,omitempty"`
	ZoneSpeed        *float64 `bun:"zone_speed" json:"zoneSpeed,omitempty"`
	PlateX           *float64 `bun:"plate_x" json:"plateX,omitempty"`
	PlateZ           *float64 `bun:"plate_z" json:"plateZ,omitempty"`
	Extension        *float64 `bun:"extension" json:"extension,omitempty"`
	Tilt             *string  `bun:"tilt" json:"tilt,omitempty"`

	PreOuts     *int `bun:"pre_outs" json:"preOuts,omitempty"`
	PostOuts    *int `bun:"post_outs" json:"postOuts,omitempty"`
	PreVScore   *int `bun:"pre_vscore" json:"preVScore,omitempty"`
	PostVScore  *int `bun:"post_vscore" json:"postVScore,omitempty"`
	PreBalls    *int `bun:"pre_balls" json:"preBalls,omitempty"`
	PreStrikes  *int `bun:"pre_strikes" json:"preStrikes,omitempty"`
	PostBalls   *int `bun:"post_balls" json:"postBalls,omitempty"`
	PostStrikes *int `bun:"post_strikes" json:"postStrikes,omitempty"`

	EventType   *string `bun:"event_type" json:"eventType,omitempty"`
	Description *string `bun:"description" json:"description,omitempty"`
	Outcome     string  `bun:"outcome,notnull,default:''" json:"outcome"`

	HitExitSpeed       *float64 `bun:"hit_exit_speed" json:"hitExitSpeed,omitempty"`
	HitDistance        *float64 `bun:"hit_distance" json:"hitDistance,omitempty"`
	HitVerticalAngle   *float64 `bun:"hit_vertical_angle" json:"hitVerticalAngle,omitempty"`
	HitHorizontalAngle *float64 `bun:"hit_horizontal_angle" json:"hitHorizontalAngle,omitempty"`
	HitTrajectory      *string  `bun:"hit_trajectory" json:"hitTrajectory,omitempty"`
	InPlay             *bool    `bun:"in_play" json:"inPlay,omitempty"`

	FirstName string `bun:"first_name,notnull" json:"firstName"`
	LastName  string `bun:"last_name,notnull" json:"lastName"`
}
