// This file defines types and functions for interfacing with the elevator hardware simulator.
// It talks to the simulator over TCP, using 4 byte commands.
package elevio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"elevsim/src/config"
	"elevsim/src/types"
)

var ErrConnLost = errors.New("lost connection to elevator server")

const (
	cmdButtonLamp     = 2
	cmdFloorIndicator = 3
	cmdDoorOpenLamp   = 4
	cmdGetButton      = 6
)

type Driver struct {
	mtx       sync.Mutex
	conn      net.Conn
	numFloors int
}

// Dial connects to the elevator server at addr.
func Dial(addr string, numFloors int) (*Driver, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect to elevator server %s: %w", addr, err)
	}
	return NewDriver(conn, numFloors), nil
}

func NewDriver(conn net.Conn, numFloors int) *Driver {
	return &Driver{conn: conn, numFloors: numFloors}
}

func (d *Driver) Close() error {
	return d.conn.Close()
}

func (d *Driver) NumFloors() int {
	return d.numFloors
}

func (d *Driver) SetButtonLamp(button types.ButtonType, floor int, value bool) error {
	return d.write([4]byte{cmdButtonLamp, byte(button), byte(floor), toByte(value)})
}

func (d *Driver) SetFloorIndicator(floor int) error {
	return d.write([4]byte{cmdFloorIndicator, byte(floor), 0, 0})
}

func (d *Driver) SetDoorOpenLamp(value bool) error {
	return d.write([4]byte{cmdDoorOpenLamp, toByte(value), 0, 0})
}

func (d *Driver) GetButton(button types.ButtonType, floor int) (bool, error) {
	a, err := d.read([4]byte{cmdGetButton, byte(button), byte(floor), 0})
	if err != nil {
		return false, err
	}
	return toBool(a[1]), nil
}

// PollButtons sends an event for every button that goes from released to pressed.
// Returns when ctx is done or the connection is lost.
func (d *Driver) PollButtons(ctx context.Context, receiver chan<- types.ButtonEvent) error {
	prev := make([][3]bool, d.numFloors)
	ticker := time.NewTicker(config.SensorPollRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		for f := range d.numFloors {
			for b := types.BT_HallUp; b <= types.BT_Cab; b++ {
				v, err := d.GetButton(b, f)
				if err != nil {
					return err
				}
				if v != prev[f][b] && v {
					select {
					case receiver <- types.ButtonEvent{Floor: f, Button: b}:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
				prev[f][b] = v
			}
		}
	}
}

func (d *Driver) read(in [4]byte) ([4]byte, error) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	var out [4]byte
	if _, err := d.conn.Write(in[:]); err != nil {
		return out, fmt.Errorf("%w: %v", ErrConnLost, err)
	}
	if _, err := io.ReadFull(d.conn, out[:]); err != nil {
		return out, fmt.Errorf("%w: %v", ErrConnLost, err)
	}
	return out, nil
}

func (d *Driver) write(in [4]byte) error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if _, err := d.conn.Write(in[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrConnLost, err)
	}
	return nil
}

func toByte(a bool) byte {
	var b byte = 0
	if a {
		b = 1
	}
	return b
}

func toBool(a byte) bool {
	return a != 0
}
