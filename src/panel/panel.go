// Package panel connects a front-end (hardware simulator or console) to the elevator engine.
// Button presses become engine requests, and engine snapshots drive the lamps.
package panel

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"elevsim/src/config"
	"elevsim/src/elev"
	"elevsim/src/types"
)

// Engine is the request side of elev.Engine.
type Engine interface {
	RequestFromCar(floor int)
	RequestFromFloor(floor int, dir types.Direction)
}

// Lamps are the outputs of the front-end. Floors are hardware indices, counted from 0.
type Lamps interface {
	SetButtonLamp(button types.ButtonType, floor int, value bool) error
	SetFloorIndicator(floor int) error
	SetDoorOpenLamp(value bool) error
}

type lamp struct {
	button types.ButtonType
	floor  int
}

type Panel struct {
	engine Engine
	lamps  Lamps
	cfg    config.Config

	lit       map[lamp]bool
	floorLamp int
	doorLamp  bool
	rendered  bool
}

func New(engine Engine, lamps Lamps, cfg config.Config) *Panel {
	return &Panel{
		engine: engine,
		lamps:  lamps,
		cfg:    cfg,
		lit:    make(map[lamp]bool),
	}
}

// HandleButton turns a hardware button press into an engine request.
func (p *Panel) HandleButton(btn types.ButtonEvent) {
	floor := btn.Floor + p.cfg.MinFloor
	switch btn.Button {
	case types.BT_Cab:
		p.engine.RequestFromCar(floor)
	case types.BT_HallUp:
		p.engine.RequestFromFloor(floor, types.DirUp)
	case types.BT_HallDown:
		p.engine.RequestFromFloor(floor, types.DirDown)
	default:
		slog.Warn("Unknown button", "button", btn.Button, "floor", btn.Floor)
	}
}

// HandleCommand parses a console command such as "car 3", "up 2" or "down 4" and sends the
// request. Floors are building floors, not hardware indices.
func (p *Panel) HandleCommand(line string) error {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return fmt.Errorf("expected <car|up|down> <floor>, got %q", line)
	}
	floor, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("invalid floor %q: %w", fields[1], err)
	}
	if !p.cfg.InRange(floor) {
		return fmt.Errorf("floor %d outside [%d, %d]", floor, p.cfg.MinFloor, p.cfg.MaxFloor)
	}

	switch strings.ToLower(fields[0]) {
	case "car", "c":
		p.engine.RequestFromCar(floor)
	case "up", "u":
		p.engine.RequestFromFloor(floor, types.DirUp)
	case "down", "d":
		p.engine.RequestFromFloor(floor, types.DirDown)
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
	return nil
}

// Render updates the lamps that differ from what the snapshot shows.
func (p *Panel) Render(s elev.ElevState) error {
	floorLamp := s.CurrentFloor - p.cfg.MinFloor
	if !p.rendered || floorLamp != p.floorLamp {
		if err := p.lamps.SetFloorIndicator(floorLamp); err != nil {
			return err
		}
		p.floorLamp = floorLamp
	}
	doorLamp := s.Status == types.DoorsOpen
	if !p.rendered || doorLamp != p.doorLamp {
		if err := p.lamps.SetDoorOpenLamp(doorLamp); err != nil {
			return err
		}
		p.doorLamp = doorLamp
	}

	for floor := p.cfg.MinFloor; floor <= p.cfg.MaxFloor; floor++ {
		want := map[types.ButtonType]bool{
			types.BT_Cab: s.OnRoute(floor),
			// Floors on the route light both hall lamps: the car stops there either way.
			types.BT_HallUp:   s.IsFloorQueued(floor, types.DirUp),
			types.BT_HallDown: s.IsFloorQueued(floor, types.DirDown),
		}
		for button, value := range want {
			l := lamp{button: button, floor: floor - p.cfg.MinFloor}
			if p.rendered && p.lit[l] == value {
				continue
			}
			if err := p.lamps.SetButtonLamp(l.button, l.floor, value); err != nil {
				return err
			}
			p.lit[l] = value
		}
	}
	p.rendered = true
	return nil
}

// Run forwards button presses to the engine and renders every snapshot until ctx is done,
// either channel is closed, or a lamp can not be set.
func (p *Panel) Run(ctx context.Context, buttons <-chan types.ButtonEvent, updates <-chan elev.ElevState) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case btn, ok := <-buttons:
			if !ok {
				return nil
			}
			p.HandleButton(btn)
		case s, ok := <-updates:
			if !ok {
				return nil
			}
			if err := p.Render(s); err != nil {
				return fmt.Errorf("render: %w", err)
			}
		}
	}
}
