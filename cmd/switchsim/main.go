package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/prefabs"
	"github.com/milk9111/switchboard/scenario"
	"github.com/milk9111/switchboard/sim"
	"github.com/quasilyte/gdata/v2"
)

func main() {
	levelName := flag.String("level", "two_switches", "level name in levels/ (basename, .json optional)")
	scriptName := flag.String("script", "", "scenario script in prefabs/scripts/ to run against the level")
	ticks := flag.Int("ticks", 600, "frames to simulate when no script is given")
	watch := flag.Bool("watch", false, "keep running in real time and reload when prefabs, scripts or levels change")
	save := flag.Bool("save", false, "persist gate progress between runs")
	flag.Parse()

	opts := sim.Options{Level: *levelName}
	if *save {
		manager, err := gdata.Open(gdata.Config{AppName: "switchboard"})
		if err != nil {
			log.Fatalf("open save data: %v", err)
		}
		opts.Store = manager
	}

	s, err := sim.New(opts)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *scriptName != "":
		os.Exit(runScript(ctx, s, *scriptName))
	case *watch:
		if err := runWatch(ctx, s); err != nil {
			log.Fatal(err)
		}
	default:
		for i := 0; i < *ticks; i++ {
			if err := s.Step(); err != nil {
				log.Fatal(err)
			}
			logEvents(s)
		}
		log.Printf("Sim: done level=%s frames=%d", s.Level.Name, s.Frames())
	}
}

func runScript(ctx context.Context, s *sim.Sim, name string) int {
	result, err := scenario.NewRunner(s).RunScript(ctx, name)
	if err != nil {
		log.Printf("Scenario: %v", err)
		return 2
	}

	names := make([]string, 0, len(result.Edges))
	for name := range result.Edges {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		log.Printf("Scenario: edges name=%s count=%d", name, result.Edges[name])
	}
	for _, f := range result.Failures {
		log.Printf("Scenario: FAIL %s", f)
	}
	log.Printf("Scenario: script=%s frames=%d checks=%d failures=%d", name, result.Frames, result.Checks, len(result.Failures))
	if !result.Passed() {
		return 1
	}
	return 0
}

func runWatch(ctx context.Context, s *sim.Sim) error {
	var dirs []string
	for _, dir := range []string{"prefabs", "prefabs/scripts", "levels"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		log.Printf("Watch: no prefabs, scripts or levels directory here, running without reload")
	}
	watcher, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	defer watcher.Close()

	ticker := time.NewTicker(time.Duration(s.StepSeconds() * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Sim: stopped level=%s frames=%d", s.Level.Name, s.Frames())
			return nil
		case change, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			log.Printf("Watch: %s changed path=%s", change.Kind, change.Path)
			s.RequestReload(change.Path)
		case err, ok := <-watcher.Errors:
			if ok {
				log.Printf("Watch: %v", err)
			}
		case <-ticker.C:
			if err := s.Step(); err != nil {
				return err
			}
			logEvents(s)
		}
	}
}

func logEvents(s *sim.Sim) {
	for _, evt := range s.Events() {
		switch data := evt.Data.(type) {
		case ecs.SwitchChanged:
			log.Printf("Sim: frame=%d %s name=%s activated=%v", s.Frames(), evt.Type, data.Name, data.Activated)
		default:
			log.Printf("Sim: frame=%d %s", s.Frames(), evt.Type)
		}
	}
}
