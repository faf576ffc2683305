package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"elevsim/lib/driver-go/elevio"
	"elevsim/src/config"
	"elevsim/src/elev"
	"elevsim/src/panel"
	"elevsim/src/timer"
	"elevsim/src/types"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used if empty)")
	simAddr := flag.String("sim", "", "Address of the elevator hardware simulator, e.g. localhost:15657")
	logPath := flag.String("log", "", "Also write logs to this file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logFile, err := elev.InitLogger(level, *logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := config.Default()
	if *configPath != "" {
		if cfg, err = config.Load(*configPath); err != nil {
			slog.Error("Failed to load config", "error", err)
			os.Exit(1)
		}
	}

	loop := timer.StartLoop()
	defer loop.Close()
	engine, err := elev.New(cfg, loop)
	if err != nil {
		slog.Error("Failed to create elevator", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *simAddr != "" {
		driver, err := elevio.Dial(*simAddr, cfg.NumFloors())
		if err != nil {
			slog.Error("Failed to connect to simulator", "error", err)
			os.Exit(1)
		}
		defer driver.Close()

		buttons := make(chan types.ButtonEvent)
		go func() {
			if err := driver.PollButtons(ctx, buttons); err != nil && ctx.Err() == nil {
				slog.Error("Button polling stopped", "error", err)
				stop()
			}
		}()
		simPanel := panel.New(engine, driver, cfg)
		updates := engine.Subscribe()
		go func() {
			if err := simPanel.Run(ctx, buttons, updates); err != nil && ctx.Err() == nil {
				slog.Error("Simulator panel stopped", "error", err)
				stop()
			}
		}()
	}

	console := panel.New(engine, nil, cfg)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if err := console.HandleCommand(scanner.Text()); err != nil {
				slog.Warn("Invalid command", "error", err)
			}
		}
	}()

	slog.Info("Elevator ready", "floors", engine.Floors(), "commands", "car <floor> | up <floor> | down <floor>")
	updates := engine.Subscribe()
	for {
		select {
		case <-ctx.Done():
			slog.Info("Shutting down")
			return
		case s := <-updates:
			fmt.Printf("\r%s    ", elev.FormatState(s))
		}
	}
}
