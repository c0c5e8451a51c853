package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"roguekernel/pkg/engine/rng"
	"roguekernel/pkg/game/actors"
	"roguekernel/pkg/game/config"
	"roguekernel/pkg/game/devtools"
	"roguekernel/pkg/game/generator"
	"roguekernel/pkg/game/renderer"
	"roguekernel/pkg/game/renderer/tui"
	"roguekernel/pkg/logger"
)

func initGettext(cfg config.Config) {
	if cfg.LocaleDir == "" {
		return
	}
	gotext.Configure(cfg.LocaleDir, cfg.Language, "default")
}

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	dumpPath := flag.String("dump", "", "write a debug dump of the final level to this file (for developer testing)")
	flag.Parse()

	logger.InitWithOutput(os.Stderr)
	log := logger.For("main")

	if err := cfg.ApplyEnv(); err != nil {
		log.WithError(err).Fatal("Bad environment")
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	initGettext(cfg)

	var r *rng.CMWC
	if cfg.Seed == 0 {
		r = rng.NewRandom()
	} else {
		r = rng.New(cfg.Seed)
	}

	level := generator.DefaultGenerator.Generate(cfg, r)
	w := actors.NewWorld(level, cfg, r)

	log.WithFields(logrus.Fields{
		"seed":      r.Seed(),
		"generator": generator.DefaultGenerator.Name(),
		"rooms":     len(level.Rooms),
		"monsters":  len(w.Monsters()),
	}).Info("Level ready")

	renderer.SetRenderer(tui.New(os.Stdout))
	renderer.Init()

	for i := 0; i < cfg.Turns; i++ {
		w.Step()
		if cfg.Delay > 0 {
			renderer.Clear()
			renderer.RenderFrame(w)
			time.Sleep(cfg.Delay)
		}
	}

	if cfg.Delay == 0 {
		renderer.RenderFrame(w)
	}

	if *dumpPath != "" {
		path, err := devtools.DumpWorldToFile(w, *dumpPath)
		if err != nil {
			log.WithError(err).Error("Map dump failed")
		} else {
			log.WithField("path", path).Info("Map dumped")
		}
	}

	log.WithFields(logrus.Fields{
		"turns":    w.Turn,
		"arrivals": w.Arrivals,
		"departed": w.Departed,
	}).Info("Simulation finished")
}
