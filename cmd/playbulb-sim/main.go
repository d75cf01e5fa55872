// playbulb-sim exercises the Playbulb adapter against a scripted
// radio, without hardware. It replays a pairing session, prints the
// devices the adapter registers and can persist the device list as a
// snapshot file.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/homeadapters/playbulb"
	"github.com/homeadapters/playbulb/radiotest"
	"github.com/homeadapters/playbulb/registry"
)

func main() {
	app := cli.NewApp()
	app.Name = "playbulb-sim"
	app.Usage = "exercise the Playbulb adapter against a scripted radio"
	app.Commands = []cli.Command{
		{
			Name:  "pair",
			Usage: "replay a pairing session and print the devices it finds",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "lights",
					Value: 2,
					Usage: "number of simulated Playbulb lights",
				},
				cli.StringFlag{
					Name:  "snapshot",
					Usage: "write the device list to `FILE`",
				},
				cli.BoolFlag{
					Name:  "debug",
					Usage: "debug logging",
				},
			},
			Action: runPair,
		},
		{
			Name:  "devices",
			Usage: "print the device list from a snapshot file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "snapshot",
					Value: "devices.json",
					Usage: "snapshot `FILE` to read",
				},
			},
			Action: runDevices,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPair(c *cli.Context) error {
	if c.Bool("debug") {
		playbulb.SetDebug(true)
	}

	radio := radiotest.New(playbulb.StatePoweredOff)
	radio.EchoScanCommands(true)
	reg := registry.New()

	adapter, err := playbulb.NewAdapter(radio, reg)
	if err != nil {
		return err
	}

	adapter.StartPairing(30 * time.Second)
	radio.SetState(playbulb.StatePoweredOn)

	for i := 0; i < c.Int("lights"); i++ {
		radio.Advertise(&radiotest.Peripheral{
			Address:    fmt.Sprintf("AA:BB:CC:DD:EE:%02X", i),
			Name:       "PLAYBULB CANDLE",
			Mfg:        []byte{0x4d, 0x49, 0x01, 0x02, 0x03, 0x04},
			CanConnect: true,
			Rssi:       -40 - i,
			Services: map[string][]string{
				// Candle color and effect characteristics.
				"ff02": {"fffb", "fffc"},
			},
		})
	}

	// A neighbor's device the filter should drop.
	radio.Advertise(&radiotest.Peripheral{
		Address:    "11:22:33:44:55:66",
		Name:       "Fitness Tracker",
		CanConnect: true,
		Rssi:       -70,
	})

	// Let the asynchronous adds and the diagnostic connections settle.
	time.Sleep(250 * time.Millisecond)
	adapter.CancelPairing()

	for _, d := range adapter.Devices() {
		fmt.Printf("%s\t%s\n", d.ID, d.Name)
	}

	if file := c.String("snapshot"); file != "" {
		return registry.Save(reg, file)
	}
	return nil
}

func runDevices(c *cli.Context) error {
	reg, err := registry.Load(c.String("snapshot"))
	if err != nil {
		return err
	}

	for _, d := range reg.Devices() {
		fmt.Printf("%s\t%s\n", d.ID, d.Name)
	}
	return nil
}
