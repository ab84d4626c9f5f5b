package main

import (
	"EconSim/internal/shared/logs"
	"EconSim/internal/shared/serverconfig"
	transporthttp "EconSim/internal/shared/transport/http"
	"EconSim/internal/shared/transport/ws"
	"EconSim/internal/shared/utils"
	"EconSim/internal/simulation/actor"
	"EconSim/internal/simulation/app"
	"EconSim/internal/simulation/dc"
	"EconSim/internal/simulation/interfaces"
	"EconSim/modules/kit/logx"
	"context"
	"errors"
	"flag"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	confPath := flag.String("config", "", "path to conf.yml, searched upward from the working directory when empty")
	flag.Parse()

	store, err := serverconfig.Load(*confPath)
	if err != nil {
		panic(err)
	}
	conf := store.Get()
	if err := logs.Init("sim", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Info("conf", zap.Any("conf", conf))

	store.OnReload(func(c serverconfig.Config) {
		logs.SetLevel(c.Log.Level)
		logs.Info("config reloaded", zap.String("log_level", c.Log.Level))
	})

	if !conf.Log.Dev {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	archive, closeArchive, err := openArchive(ctx, conf.Archive)
	if err != nil {
		logs.Fatal("open turn archive failed", zap.Error(err))
	}
	defer closeArchive()

	ids, err := utils.NewSnowflake(conf.Archive.NodeID)
	if err != nil {
		logs.Fatal("init snowflake failed", zap.Error(err))
	}

	baseLogger := logx.NewZapLogger(logs.Logger())
	simDC := dc.NewSimulationDC(archive, ids, nil, conf.Archive.FlushEvery(), baseLogger)

	hub := ws.NewHub(baseLogger)
	rt := actor.NewRuntime(simDC, hub, conf.Simulation.AskTimeout(), baseLogger)
	service := app.NewSimulationService(rt, archive)

	simModule, err := interfaces.New(service, hub, baseLogger)
	if err != nil {
		logs.Fatal("build simulation module failed", zap.Error(err))
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	httpServer := transporthttp.NewHttpServer(conf.HTTPServer.Addr(), engine, baseLogger)
	httpServer.Register(simModule)

	errCh := make(chan error, 1)
	go func() {
		logs.Info("sim server listening",
			zap.String("addr", conf.HTTPServer.Addr()),
			zap.String("archive", conf.Archive.Driver),
		)
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("sim server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logs.Error("server exited", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logs.Warn("http shutdown", zap.Error(err))
	}
	hub.Close()
	if err := rt.Shutdown(shutdownCtx); err != nil {
		logs.Warn("runtime shutdown", zap.Error(err))
	}
}
