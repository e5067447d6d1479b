package main

import (
	"log"

	"github.com/shubhankarvyas/medipulse-ai-insight/confs"
	"github.com/shubhankarvyas/medipulse-ai-insight/db"
	"github.com/shubhankarvyas/medipulse-ai-insight/logger"
	"github.com/shubhankarvyas/medipulse-ai-insight/server"
)

func main() {
	// load config
	if err := confs.LoadConfig(); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	zlog, err := logger.NewFromEnv("medipulse-backend")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// connect to database Postgres
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	// run server
	srv := server.NewServer(database, zlog, confs.ServerAddr())
	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
