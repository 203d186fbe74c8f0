package domain

// Fighter maps a FightMatrix fighter id to its external cross-references.
type Fighter struct {
	FighterName       string  `json:"fighter_name" db:"fighter_name"`
	FighterID         string  `json:"fighter_id" db:"fighter_id"`
	TapologyFighterID *string `json:"tapology_fighter_id" db:"tapology_fighter_id"`
	SherdogFighterID  *string `json:"sherdog_fighter_id" db:"sherdog_fighter_id"`
}
