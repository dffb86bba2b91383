package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/trainride/prefabs"
)

func main() {
	configDir := flag.String("config", "prefabs", "directory searched for scene.yaml and slides.yaml overrides")
	watch := flag.Bool("watch", false, "reload the config directory when its files change")
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	prefabs.SetDir(*configDir)
	settings, err := loadSettings()
	if err != nil {
		log.Fatal(err)
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher(*configDir)
		if err != nil {
			log.Fatalf("watch %s: %v", *configDir, err)
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("train journey")
	ebiten.SetTPS(tps)

	game, err := NewGame(settings, watcher, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
