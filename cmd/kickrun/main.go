// Command kickrun runs the player sandbox: one stage, the kick-and-slide
// moveset, enemies and pickups, with input recording and replay.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/kickrun/internal/application/game"
	"github.com/younwookim/kickrun/internal/application/replay"
	"github.com/younwookim/kickrun/internal/application/scene/playing"
	"github.com/younwookim/kickrun/internal/application/system"
	"github.com/younwookim/kickrun/internal/infrastructure/config"
	"github.com/younwookim/kickrun/internal/infrastructure/settings"
	"github.com/younwookim/kickrun/internal/infrastructure/tilemap"
)

func main() {
	stageFlag := flag.String("stage", "demo", "JSON stage under configs/stages")
	mapFlag := flag.String("map", "", "Tiled map: a name under configs/maps or a path to a .tmx file")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded session")
	headlessFlag := flag.Bool("headless", false, "With -replay: simulate without a window and print a summary")
	listFlag := flag.Bool("list", false, "List the embedded stages and maps")
	flag.Parse()

	// Load configurations using embedded filesystem
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	loader := config.NewFSLoader(fsys, "configs")

	if *listFlag {
		if err := listLevels(loader); err != nil {
			log.Fatalf("Failed to list levels: %v", err)
		}
		return
	}

	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	level, err := loadLevel(loader, *stageFlag, *mapFlag)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}
	log.Printf("[main] loaded %s (%dx%d tiles, %d enemies, %d pickups)",
		level.Name, level.Stage.Width, level.Stage.Height, len(level.Enemies), len(level.Pickups))

	var sc *playing.Playing
	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		if data.Stage != level.Name {
			log.Printf("[main] replay was recorded on %q, playing it on %q", data.Stage, level.Name)
		}

		if *headlessFlag {
			result, err := RunReplay(cfg, level, *data)
			if err != nil {
				log.Fatalf("Replay failed: %v", err)
			}
			fmt.Println(result)
			return
		}
		sc, err = playing.NewReplay(cfg, level, *data)
		if err != nil {
			log.Fatalf("Failed to start replay: %v", err)
		}
	} else {
		sc, err = playing.New(cfg, level, *recordFlag)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
	}

	store, err := settings.Open("kickrun")
	if err != nil {
		log.Printf("[main] settings unavailable: %v", err)
	} else if saved, err := settings.Load(store); err != nil {
		log.Printf("[main] ignoring saved settings: %v", err)
	} else {
		sc.ApplySettings(saved)
	}

	display := cfg.Physics.Display
	g := game.New(sc, display.ScreenWidth, display.ScreenHeight)

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("kickrun")
	ebiten.SetTPS(display.Framerate)

	runErr := ebiten.RunGame(g)
	if store != nil {
		if err := settings.Save(store, sc.Settings()); err != nil {
			log.Printf("[main] %v", err)
		}
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}

// loadLevel loads the Tiled map when one is named, the JSON stage
// otherwise.
func loadLevel(loader *config.Loader, stageName, mapName string) (playing.Level, error) {
	if mapName != "" {
		var (
			tl  *tilemap.Level
			err error
		)
		if strings.HasSuffix(mapName, ".tmx") {
			tl, err = tilemap.Load(os.DirFS(filepath.Dir(mapName)), filepath.Base(mapName))
		} else {
			tl, err = tilemap.Load(loader.FS(), "maps/"+mapName+".tmx")
		}
		if err != nil {
			return playing.Level{}, err
		}
		return playing.Level{Name: tl.Name, Stage: tl.Stage, Enemies: tl.Enemies, Pickups: tl.Pickups}, nil
	}

	stageCfg, err := loader.LoadStage(stageName)
	if err != nil {
		return playing.Level{}, err
	}
	stage, err := system.LoadStage(stageCfg)
	if err != nil {
		return playing.Level{}, err
	}
	return playing.Level{Name: stageCfg.ID, Stage: stage, Enemies: stageCfg.Enemies, Pickups: stageCfg.Pickups}, nil
}

func listLevels(loader *config.Loader) error {
	stages, err := fs.Glob(loader.FS(), "stages/*.json")
	if err != nil {
		return err
	}
	for _, s := range stages {
		fmt.Println("stage", strings.TrimSuffix(filepath.Base(s), ".json"))
	}

	maps, names, err := tilemap.LoadAll(loader.FS(), "maps")
	if err != nil {
		return err
	}
	for _, name := range names {
		st := maps[name].Stage
		fmt.Printf("map   %s (%dx%d)\n", name, st.Width, st.Height)
	}
	return nil
}
