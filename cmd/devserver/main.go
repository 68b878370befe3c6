package main

import (
	"net/http"

	"github.com/NasmeenI/tablebook/internal/config"
	"github.com/NasmeenI/tablebook/internal/devserver"
	"github.com/NasmeenI/tablebook/internal/logger"
)

func main() {
	log := logger.New("devserver")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: %v", err)
	}

	srv := devserver.New(devserver.Options{
		JWTSecret: cfg.Server.JWTSecret,
		JWTTTL:    cfg.Server.JWTTTL,
		SeedData:  cfg.Server.SeedData,
	}, log)

	addr := ":" + cfg.Server.Port
	log.Info("reservation API listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal("server stopped: %v", err)
	}
}
