package main

import (
	"os"

	"github.com/Apurer/go-gin-store-api/internal/app/migrate"
)

func main() {
	if err := migrate.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
