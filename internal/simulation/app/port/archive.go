package port

import (
	"EconSim/internal/simulation/entity"
	"context"
)

// TurnArchive stores turn records. Save receives records in turn order.
type TurnArchive interface {
	Save(ctx context.Context, records []*entity.TurnRecord) error
	Recent(ctx context.Context, limit int) ([]*entity.TurnRecord, error)
}
