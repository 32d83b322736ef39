package main

import (
	"flag"
	"os"
	"strings"

	"github.com/cbodonnell/liarsdice/pkg/config"
	"github.com/cbodonnell/liarsdice/pkg/dice"
	"github.com/cbodonnell/liarsdice/pkg/game"
	"github.com/cbodonnell/liarsdice/pkg/log"
	"github.com/cbodonnell/liarsdice/pkg/messages"
	"github.com/cbodonnell/liarsdice/pkg/queue"
	"github.com/cbodonnell/liarsdice/pkg/table"
	"github.com/cbodonnell/liarsdice/pkg/version"
	"github.com/google/uuid"
)

// playerNamespace derives stable player ids from player names.
var playerNamespace = uuid.MustParse("3f0d6c1e-59b4-4c8e-9d51-3c2a6f0e7b21")

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Failed to load config: %v", err)
	}

	seed := flag.Uint64("seed", cfg.Seed, "Dice seed, 0 for a random seed")
	startingDice := flag.Int("dice", cfg.StartingDice, "Dice each player starts with")
	players := flag.String("players", strings.Join(cfg.Players, ","), "Comma separated player names")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		config.Exitf("Failed to parse log level: %v", err)
	}

	// stdout carries the event stream.
	logger := log.New(os.Stderr, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Starting liarsdice version %s", version.Get())

	if *seed == 0 {
		*seed, err = dice.NewSeed()
		if err != nil {
			config.Exitf("Failed to draw a seed: %v", err)
		}
	}
	log.Info("Using seed %d", *seed)

	var ids []uuid.UUID
	for _, name := range strings.Split(*players, ",") {
		name = strings.TrimSpace(name)
		id := uuid.NewSHA1(playerNamespace, []byte(name))
		ids = append(ids, id)
		log.Info("Player %s has id %s", name, id)
	}

	g, err := game.New(game.NewGameOptions{
		Seed:         *seed,
		StartingDice: *startingDice,
		PlayerIDs:    ids,
		Logger:       logger,
	})
	if err != nil {
		config.Exitf("Failed to create game: %v", err)
	}

	t := table.NewTable(table.NewTableOptions{
		Game:   g,
		Events: queue.NewInMemoryQueue[messages.Event](cfg.EventBuffer),
		Logger: logger,
	})
	if err := t.Start(); err != nil {
		config.Exitf("Failed to start game: %v", err)
	}

	if err := newDriver(t, os.Stdout, logger).run(os.Stdin); err != nil {
		config.Exitf("Failed to read commands: %v", err)
	}
}
