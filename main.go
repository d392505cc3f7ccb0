package main

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	settings, err := loadSettings(settingsFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Printf("using default settings: %v", err)
		}
		settings = DefaultSettings()
	}
	settings = settings.normalize()

	sim := NewSandbox(settings, logger)

	ebiten.SetWindowSize(settings.Width, settings.Height)
	ebiten.SetWindowTitle("Marching Squares Ramp")
	ebiten.SetTPS(60) // one world step per tick

	if err := ebiten.RunGame(sim); err != nil {
		log.Fatal(err)
	}
}
