package data

import (
	"time"
)

// Dive is one logged dive: the planned profile summary plus the oxygen
// toxicity state it left the diver with.
type Dive struct {
	DiveID     int64     `db:"dive_id"`
	CreatedAt  time.Time `db:"created_at"`
	Depth      float64   `db:"depth"`
	BottomTime float64   `db:"bottom_time"`
	Mode       string    `db:"mode"`
	Bailout    bool      `db:"bailout"`
	RunTime    float64   `db:"run_time"`
	TTS        float64   `db:"tts"`
	Cns        float64   `db:"cns"`
	Otu        float64   `db:"otu"`
}

// OxTox is the toxicity dose accumulated over a set of dives.
type OxTox struct {
	Cns float64 `db:"cns"`
	Otu float64 `db:"otu"`
}
