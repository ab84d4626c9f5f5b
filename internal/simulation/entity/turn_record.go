package entity

import "time"

// TurnRecord is an archived snapshot taken right after a turn advance.
type TurnRecord struct {
	ID             int64     `json:"id"`
	Version        int       `json:"version"`
	Turn           int64     `json:"turno"`
	Snapshot       Snapshot  `json:"stato"`
	CitizenMoney   int64     `json:"denaro_cittadini"`
	UtilityCapital int64     `json:"capitale_fornitore"`
	CreatedAt      time.Time `json:"creato_il"`
}
