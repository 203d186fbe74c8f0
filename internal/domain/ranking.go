// Package domain holds the records emitted by a FightMatrix crawl and the
// fixed tables they are keyed on.
package domain

import "fmt"

// DateLayout is the normalized snapshot date format.
const DateLayout = "2006-01-02"

// Ranking is one fighter's position in one division on one snapshot date.
type Ranking struct {
	FighterID   string `json:"fighter_id" db:"fighter_id"`
	Date        string `json:"date" db:"date"`
	WeightClass string `json:"weight_class" db:"weight_class"`
	Rank        int    `json:"rank" db:"rank"`
	// RankChange is nil when the fighter is newly ranked ("NR").
	RankChange *int `json:"rank_change" db:"rank_change"`
	Points     int  `json:"points" db:"points"`
}

// Key returns the identity of the record within a crawl.
func (r Ranking) Key() string {
	return fmt.Sprintf("%s|%s|%s", r.FighterID, r.Date, r.WeightClass)
}
