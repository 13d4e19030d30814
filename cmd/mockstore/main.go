package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"inkwell/mockstore"
)

func main() {
	addr := os.Getenv("MOCKSTORE_ADDR")
	if addr == "" {
		addr = ":6836"
	}
	dbPath := os.Getenv("MOCKSTORE_DB")
	if dbPath == "" {
		dbPath = "./mockstore.db"
	}

	db, err := mockstore.Open(dbPath)
	if err != nil {
		log.Fatalf("open %s: %v", dbPath, err)
	}

	r := mockstore.New(db)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Record store running on http://localhost%s/api", addr)
		if err := http.ListenAndServe(addr, r); err != nil {
			log.Printf("HTTP server stopped: %v", err)
		}
	}()

	<-signals
	log.Println("Shutting down gracefully...")
}
