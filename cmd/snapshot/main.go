package main

import (
	"context"
	"flag"
	"log"

	"github.com/calgorix23-creator/AttendEase-v2/config"
	"github.com/calgorix23-creator/AttendEase-v2/internal/snapshot"
	"github.com/calgorix23-creator/AttendEase-v2/pkg/database"
)

func main() {
	exportPath := flag.String("export", "", "write the database to this JSON file")
	importPath := flag.String("import", "", "replace the database with this JSON file")
	flag.Parse()

	if (*exportPath == "") == (*importPath == "") {
		log.Fatal("exactly one of -export or -import is required")
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatal(err)
	}
	db := database.NewPostgresDB(cfg.DSN(), false)
	store := snapshot.NewStore(db)
	ctx := context.Background()

	if *exportPath != "" {
		state, err := store.Dump(ctx)
		if err != nil {
			log.Fatal(err)
		}
		if err := snapshot.NewFileStore(*exportPath).Save(state); err != nil {
			log.Fatal(err)
		}
		log.Printf("Exported %d users and %d sessions to %s", len(state.Users), len(state.Sessions), *exportPath)
		return
	}

	state, err := snapshot.NewFileStore(*importPath).Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := store.Restore(ctx, state); err != nil {
		log.Fatal(err)
	}
	log.Printf("Imported %s", *importPath)
}
