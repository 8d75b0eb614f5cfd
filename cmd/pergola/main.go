package main

import (
	"log"
	"os"
)

var logger = log.New(os.Stderr, "pergola: ", 0)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}
