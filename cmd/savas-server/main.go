package main

import (
	"fmt"
	"log"
	"net/http"

	"savas-backend/internal/config"
	"savas-backend/internal/server"
)

func main() {
	cfg := config.Load()
	s, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	s.StartKeepalive()
	addr := ":" + cfg.Port
	fmt.Printf("SAVAS server listening on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, s.Router()))
}
