package mysql

import (
	"EconSim/internal/simulation/entity"
	"EconSim/internal/simulation/infra/persistence/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 100

type TurnArchive struct {
	db *gorm.DB
}

func NewTurnArchive(db *gorm.DB) *TurnArchive {
	return &TurnArchive{db: db}
}

// Migrate creates or updates the turn_records table.
func (a *TurnArchive) Migrate(ctx context.Context) error {
	if a == nil || a.db == nil {
		return errors.New("mysql turn archive db is nil")
	}
	return a.db.WithContext(ctx).AutoMigrate(&model.TurnRecordRow{})
}

func (a *TurnArchive) Save(ctx context.Context, records []*entity.TurnRecord) error {
	if len(records) == 0 {
		return nil
	}
	if a == nil || a.db == nil {
		return errors.New("mysql turn archive db is nil")
	}
	rows := make([]model.TurnRecordRow, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		row, err := model.TurnRecordToRow(r)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil
	}
	// A retried batch may contain rows that already landed.
	return a.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, batchSize).Error
}

func (a *TurnArchive) Recent(ctx context.Context, limit int) ([]*entity.TurnRecord, error) {
	if a == nil || a.db == nil {
		return nil, errors.New("mysql turn archive db is nil")
	}
	var rows []model.TurnRecordRow
	err := recentQuery(a.db.WithContext(ctx), limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*entity.TurnRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := model.TurnRecordFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func recentQuery(tx *gorm.DB, limit int) *gorm.DB {
	return tx.Model(&model.TurnRecordRow{}).
		Order("turn DESC").
		Order("id DESC").
		Limit(limit)
}
