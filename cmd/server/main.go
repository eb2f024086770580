package main

import (
	"os"

	"memepop/internal/app"
	"memepop/internal/config"

	"github.com/wb-go/wbf/zlog"
)

func main() {
	zlog.Init()

	cfg, err := config.MustLoad()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to load config")
	}

	server, err := app.NewApp(cfg, &zlog.Logger)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to create app")
	}

	if err := server.Run(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Server failed")
	}

	zlog.Logger.Info().Msg("Server exited successfully")
	os.Exit(0)
}
