package main

import (
	"errors"
	"flag"
	"log"

	"github.com/calgorix23-creator/AttendEase-v2/config"
	"github.com/calgorix23-creator/AttendEase-v2/migrations"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func main() {
	steps := flag.Int("steps", 0, "apply only this many migrations (negative rolls back)")
	flag.Parse()

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatal(err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatal(err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, cfg.DatabaseURL())
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	cmd := "up"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}

	switch {
	case *steps != 0:
		err = m.Steps(*steps)
	case cmd == "down":
		err = m.Down()
	case cmd == "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatal(verr)
		}
		log.Printf("Schema version %d (dirty: %t)", version, dirty)
		return
	default:
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(err)
	}
	log.Printf("Migration %s successful", cmd)
}
