package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thockd/thock/audio"
	"github.com/thockd/thock/engine"
	"github.com/thockd/thock/input"
	"github.com/thockd/thock/options"
)

func main() {
	var configPath = flag.String("config", "./config.json", "Path to the config file (created with defaults if missing)")
	var audioDir = flag.String("audio", "./audio", "Directory holding the keydown/keyup/mousedown/mouseup sample folders")
	var seed = flag.Int64("seed", 0, "Seed for sample selection (0 = time-based)")
	var listDevices = flag.Bool("list-devices", false, "List output devices and exit")

	flag.Parse()

	if *listDevices {
		if err := audio.ListDevices(os.Stdout); err != nil {
			log.Fatalf("Failed to list devices: %v", err)
		}
		return
	}

	log.Printf("Loading config from %s", *configPath)
	cfg, err := options.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	stream, err := cfg.Resolve()
	if err != nil {
		log.Fatalf("Invalid device config: %v", err)
	}

	var sink *audio.Sink
	if stream == nil {
		log.Println("Opening default output device")
		sink, err = audio.OpenDefault()
	} else {
		log.Printf("Opening output device %q on host %s", stream.DeviceName, stream.Host)
		sink, err = audio.Open(stream)
	}
	if err != nil {
		log.Fatalf("Failed to open output device: %v", err)
	}
	defer sink.Close()

	lib, err := audio.LoadLibrary(*audioDir)
	if err != nil {
		log.Fatalf("Failed to load samples: %v", err)
	}
	log.Printf("Loaded %d keydown, %d keyup, %d mousedown, %d mouseup samples",
		len(lib.KeyDown), len(lib.KeyUp), len(lib.MouseDown), len(lib.MouseUp))

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	eng, err := engine.New(lib, sink, rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.Fatalf("Failed to create dispatch engine: %v", err)
	}

	listener, err := input.NewListener()
	if err != nil {
		log.Fatalf("Failed to open input hook: %v", err)
	}

	events, err := listener.Start()
	if err != nil {
		log.Fatalf("Failed to start input hook: %v", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		s := <-sigs
		log.Printf("Received %s, shutting down", s)
		listener.Stop()
	}()

	log.Println("Listening for key and mouse events...")
	eng.Run(events)

	if err := listener.Err(); err != nil {
		// Fatalf skips the deferred Close, so shut the stream down
		// first. Close is a no-op the second time around.
		sink.Close()
		log.Fatalf("Input hook terminated: %v", err)
	}
}
