package main

import (
	"log"
	"os"
	"recallvantage/cmd"
	"recallvantage/internal/config"
)

func main() {
	cfg, err := config.Load("", false)
	if err != nil {
		log.Fatal(err)
	}
	deps, err := cmd.InitializeDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(deps)

	deps.Logger.Infow("starting api", "port", cfg.Server.Port, "commit", os.Getenv("commit_hash"))
	err = deps.ApiHandler().StartApi(cfg.Server.Port)
	if err != nil {
		deps.Logger.Fatal(err)
	}
}
