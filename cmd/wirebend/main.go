// WireBend generates the solid model and full-scale cut templates for a
// bent-wire biplane, then checks the pieces against the wire on hand.
//
// Build:
//
//	go build -o wirebend ./cmd/wirebend
package main

import (
	"os"
	"time"

	"github.com/piwi3910/WireBend/cmd/wirebend/cmd"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	cmd.Execute()
}
