package main

import (
	"flag"
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/akarpov/minesweeper-ai/internal/ai"
	"github.com/akarpov/minesweeper-ai/internal/game"
)

var log = logrus.New()

func createRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func main() {
	var (
		width     = flag.Int("width", 8, "field width")
		height    = flag.Int("height", 8, "field height")
		mineCount = flag.Int("mines", 8, "number of mines")
		games     = flag.Int("games", 1, "number of games to play")
		seed      = flag.Uint64("seed", 0, "random seed (0 picks one)")
		verbose   = flag.Bool("v", false, "debug logging")
		show      = flag.Bool("show", false, "print the final board of every game")
	)
	flag.Parse()

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
		ai.Log = log
		game.Log = log
	}

	rnd := createRand(*seed)
	maxSteps := *width * *height * 2

	var won, lost, stalled int
	for i := range *games {
		sess, err := game.NewSession(*width, *height, *mineCount, rnd)
		if err != nil {
			log.Fatal(err)
		}
		status, err := sess.Play(maxSteps)
		if err != nil {
			log.Fatal(err)
		}
		log.WithFields(logrus.Fields{
			"game":  i + 1,
			"steps": sess.Steps,
		}).Info("finished: ", status)
		if *show {
			log.Info("\n" + sess.View().ToString(*width))
		}
		switch status {
		case game.Won:
			won++
		case game.Lost:
			lost++
		default:
			stalled++
		}
	}

	log.WithFields(logrus.Fields{
		"games":   *games,
		"won":     won,
		"lost":    lost,
		"stalled": stalled,
	}).Info("done")
}
