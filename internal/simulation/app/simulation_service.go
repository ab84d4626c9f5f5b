package app

import (
	"EconSim/internal/simulation/app/port"
	"EconSim/internal/simulation/entity"
	"context"
	"strconv"
	"strings"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
)

// Runtime is the serialized owner of the simulation.
type Runtime interface {
	State(ctx context.Context) (entity.Snapshot, error)
	AdvanceTurn(ctx context.Context) (entity.Snapshot, error)
}

type SimulationService struct {
	runtime Runtime
	archive port.TurnArchive
}

func NewSimulationService(runtime Runtime, archive port.TurnArchive) *SimulationService {
	return &SimulationService{runtime: runtime, archive: archive}
}

func (s *SimulationService) State(ctx context.Context) (entity.Snapshot, error) {
	return s.runtime.State(ctx)
}

func (s *SimulationService) AdvanceTurn(ctx context.Context) (entity.Snapshot, error) {
	return s.runtime.AdvanceTurn(ctx)
}

// History returns archived turns newest first. rawLimit is the unparsed
// query value; empty means DefaultHistoryLimit and large values are capped.
func (s *SimulationService) History(ctx context.Context, rawLimit string) ([]*entity.TurnRecord, error) {
	limit, err := ParseHistoryLimit(rawLimit)
	if err != nil {
		return nil, err
	}
	if s.archive == nil {
		return nil, ErrArchiveUnavailable.WithReason(ReasonArchiveRead)
	}
	records, err := s.archive.Recent(ctx, limit)
	if err != nil {
		return nil, ErrArchiveUnavailable.WithReason(ReasonArchiveRead).WithCause(err)
	}
	if records == nil {
		records = []*entity.TurnRecord{}
	}
	return records, nil
}

func ParseHistoryLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultHistoryLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, ErrReqParam.WithReason(ReasonHistoryLimit).WithData("limit", raw)
	}
	return min(n, MaxHistoryLimit), nil
}
