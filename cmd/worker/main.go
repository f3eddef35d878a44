// Command worker consumes document parse tasks from the redis queue. It runs
// alongside servers configured with queue.submit_only.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JaimeStill/lab-catalog/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	w, err := NewWorker(cfg)
	if err != nil {
		log.Fatal("worker init failed:", err)
	}

	if err := w.Start(); err != nil {
		log.Fatal("worker start failed:", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	if err := w.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		log.Fatal("shutdown failed:", err)
	}

	log.Println("worker stopped gracefully")
}
