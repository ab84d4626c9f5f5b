package main

import (
	"EconSim/internal/shared/infrastructure/db"
	sharedmongo "EconSim/internal/shared/infrastructure/mongo"
	"EconSim/internal/shared/logs"
	"EconSim/internal/shared/serverconfig"
	"EconSim/internal/simulation/app/port"
	"EconSim/internal/simulation/infra/persistence/memory"
	simmongo "EconSim/internal/simulation/infra/persistence/mongodb"
	simmysql "EconSim/internal/simulation/infra/persistence/mysql"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// openArchive builds the configured turn archive. The returned close func
// releases its connection.
func openArchive(ctx context.Context, cfg serverconfig.ArchiveConfig) (port.TurnArchive, func(), error) {
	switch cfg.Driver {
	case serverconfig.ArchiveMemory:
		return memory.NewTurnArchive(0), func() {}, nil

	case serverconfig.ArchiveMySQL:
		gdb, err := db.Open(cfg.MySQL)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		archive := simmysql.NewTurnArchive(gdb)
		if err := archive.Migrate(ctx); err != nil {
			return nil, nil, fmt.Errorf("migrate turn_records: %w", err)
		}
		closeFn := func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return archive, closeFn, nil

	case serverconfig.ArchiveMongoDB:
		client, err := sharedmongo.Open(ctx, cfg.MongoDB, logs.Logger())
		if err != nil {
			return nil, nil, fmt.Errorf("open mongodb: %w", err)
		}
		archive := simmongo.NewTurnArchive(client.Database(cfg.MongoDB.Database), cfg.MongoDB.Collection)
		if err := archive.EnsureIndexes(ctx); err != nil {
			logs.Warn("ensure turn indexes failed", zap.Error(err))
		}
		closeFn := func() {
			_ = client.Disconnect(context.Background())
		}
		return archive, closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unknown archive driver %q", cfg.Driver)
	}
}
