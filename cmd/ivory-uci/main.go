package main

import (
	"flag"
	"log"

	"github.com/dkoval/ivory/internal/storage"
	"github.com/dkoval/ivory/internal/uci"
)

var (
	depth   = flag.Int("depth", 0, "override search depth in plies")
	workers = flag.Int("workers", 0, "override root search worker count")
	noStore = flag.Bool("nostore", false, "do not load or persist preferences")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("ivory: ")

	prefs := storage.DefaultPreferences()

	var store *storage.Store
	if !*noStore {
		s, err := storage.OpenDefault()
		if err != nil {
			log.Printf("preferences unavailable: %v", err)
		} else {
			store = s
			defer store.Close()
			if p, err := store.LoadPreferences(); err != nil {
				log.Printf("loading preferences: %v", err)
			} else {
				prefs = p
			}
		}
	}

	if *depth > 0 {
		prefs.Depth = *depth
	}
	if *workers > 0 {
		prefs.Workers = *workers
	}

	uci.New(prefs, store).Run()
}
