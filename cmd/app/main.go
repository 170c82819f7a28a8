// Command app is the process entry point: load configuration, wire the
// service, run the HTTP server until terminated.
package main

import (
	"log"

	"github.com/openlearn/coredata/internal/bootstrap"
)

func main() {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		log.Fatalf("config: %s", err)
	}

	svc, err := bootstrap.InitService(cfg)
	if err != nil {
		log.Fatalf("init: %s", err)
	}

	if err := bootstrap.NewServer(svc).Run(); err != nil {
		log.Fatalf("server: %s", err)
	}
}
