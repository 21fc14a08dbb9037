package main

import (
	"glscene/internal/log"

	"github.com/urfave/cli"
)

var logger = log.New("skyview")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
