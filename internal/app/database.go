package app

import (
	"gorm.io/gorm"

	"github.com/balkashynov/cludy/internal/config"
	"github.com/balkashynov/cludy/internal/db"
)

var globalDB *gorm.DB

func MustOpenDatabase() {
	cfg := config.Global().SQLite

	gdb, err := db.Open(cfg.Path)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("path", cfg.Path).
			Msg("failed to open database")
		panic(err)
	}
	globalLogger.Info().
		Str("path", cfg.Path).
		Msg("opened database")

	globalDB = gdb
}

func CloseDatabase() {
	err := db.Close(globalDB)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close database")
		return
	}
	globalLogger.Info().Msg("closed database")
}
