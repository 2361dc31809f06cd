package main

import (
	"github.com/rs/zerolog/log"

	"github.com/Meesho/BharatMLStack/matrix-planner/internal/app"
	"github.com/Meesho/BharatMLStack/matrix-planner/pkg/config"
	"github.com/Meesho/BharatMLStack/matrix-planner/pkg/logger"
	"github.com/Meesho/BharatMLStack/matrix-planner/pkg/metric"
)

func main() {
	config.InitEnv()
	env := config.Instance()
	logger.Init(env.AppName, env.AppLogLevel)
	metric.Init(env.AppEnv, env.AppName)

	handler, err := app.BuildHandler()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build api handler")
	}
	server := app.NewServer(env.AppPort, handler)
	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("api-server exited with error")
	}
}
