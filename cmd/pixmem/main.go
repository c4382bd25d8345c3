package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("pixmem: %v", err)
		os.Exit(exitUserError)
	}
}
