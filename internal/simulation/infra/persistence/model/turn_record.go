package model

import (
	"EconSim/internal/simulation/entity"
	"encoding/json"
	"time"
)

// TurnRecordRow is the MySQL row of an archived turn. The snapshot is kept
// as a JSON document so its shape can evolve with Version.
type TurnRecordRow struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement:false;comment:snowflake id" json:"id"`
	Version        int       `gorm:"column:version;not null;comment:snapshot version" json:"version"`
	Turn           int64     `gorm:"column:turn;index;not null" json:"turn"`
	Snapshot       string    `gorm:"column:snapshot;type:json;not null" json:"snapshot"`
	CitizenMoney   int64     `gorm:"column:citizen_money;not null;comment:sum of citizen money" json:"citizen_money"`
	UtilityCapital int64     `gorm:"column:utility_capital;not null;comment:first provider capital" json:"utility_capital"`
	CreatedAt      time.Time `gorm:"column:created_at;type:datetime(3);not null" json:"created_at"`
}

func (TurnRecordRow) TableName() string {
	return "turn_records"
}

// TurnRecordDoc is the MongoDB document of an archived turn.
type TurnRecordDoc struct {
	ID             int64           `bson:"_id"`
	Version        int             `bson:"version"`
	Turn           int64           `bson:"turn"`
	Snapshot       entity.Snapshot `bson:"snapshot"`
	CitizenMoney   int64           `bson:"citizen_money"`
	UtilityCapital int64           `bson:"utility_capital"`
	CreatedAt      time.Time       `bson:"created_at"`
}

func TurnRecordToRow(r *entity.TurnRecord) (TurnRecordRow, error) {
	raw, err := json.Marshal(r.Snapshot)
	if err != nil {
		return TurnRecordRow{}, err
	}
	return TurnRecordRow{
		ID:             r.ID,
		Version:        r.Version,
		Turn:           r.Turn,
		Snapshot:       string(raw),
		CitizenMoney:   r.CitizenMoney,
		UtilityCapital: r.UtilityCapital,
		CreatedAt:      r.CreatedAt,
	}, nil
}

func TurnRecordFromRow(row TurnRecordRow) (*entity.TurnRecord, error) {
	var s entity.Snapshot
	if err := json.Unmarshal([]byte(row.Snapshot), &s); err != nil {
		return nil, err
	}
	return &entity.TurnRecord{
		ID:             row.ID,
		Version:        row.Version,
		Turn:           row.Turn,
		Snapshot:       s,
		CitizenMoney:   row.CitizenMoney,
		UtilityCapital: row.UtilityCapital,
		CreatedAt:      row.CreatedAt,
	}, nil
}

func TurnRecordToDoc(r *entity.TurnRecord) TurnRecordDoc {
	return TurnRecordDoc{
		ID:             r.ID,
		Version:        r.Version,
		Turn:           r.Turn,
		Snapshot:       r.Snapshot,
		CitizenMoney:   r.CitizenMoney,
		UtilityCapital: r.UtilityCapital,
		CreatedAt:      r.CreatedAt,
	}
}

func TurnRecordFromDoc(doc TurnRecordDoc) *entity.TurnRecord {
	s := doc.Snapshot
	// bson decodes an empty sub-document into a nil map.
	for i := range s.Companies {
		if s.Companies[i].Inventory == nil {
			s.Companies[i].Inventory = map[string]int64{}
		}
	}
	return &entity.TurnRecord{
		ID:             doc.ID,
		Version:        doc.Version,
		Turn:           doc.Turn,
		Snapshot:       s,
		CitizenMoney:   doc.CitizenMoney,
		UtilityCapital: doc.UtilityCapital,
		CreatedAt:      doc.CreatedAt,
	}
}
