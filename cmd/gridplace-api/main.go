package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gridplace-dev/gridplace/internal/config"
	"github.com/gridplace-dev/gridplace/internal/logger"
	"github.com/gridplace-dev/gridplace/internal/router"
	"github.com/gridplace-dev/gridplace/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Storage.Cleanup()

	r := router.New(deps)

	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = fmt.Sprintf("%d", cfg.Public.HttpPort)
	}

	logger.Log.Info("server started", "port", httpPort)
	log.Fatal(http.ListenAndServe(":"+httpPort, r))
}
