package main

import (
	"flag"
	"fmt"
	"os"

	"metallircd/internal/config"
	"metallircd/internal/ircd"
	"metallircd/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "./metallirc.toml", "Configuration file.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "metallircd: %s\n", err)
		return 1
	}

	logFile := cfg.Metallircd.LogFile
	if logFile == "" {
		logFile = "metallircd.log"
	}
	log, err := logging.New(logFile, string(cfg.EffectiveLogLevel()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "metallircd: opening log file: %s\n", err)
		return 1
	}
	defer log.Close()

	server := ircd.New(cfg, log)
	if err := server.Run(); err != nil {
		log.Errorf("server exited with error: %s", err)
		fmt.Fprintf(os.Stderr, "metallircd: %s\n", err)
		return 1
	}

	return 0
}
