package main

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BeatGlow/oled"
	"github.com/BeatGlow/oled/draw"
	"github.com/BeatGlow/oled/pixel"
)

// command is a CLI sub-command operating on a connected display.
type command struct {
	args  string
	help  string
	nargs int
	run   func(d *oled.Driver, args []int, raw []string) error
}

var commands = map[string]command{
	"on": {
		help: "Switch the display on",
		run:  func(d *oled.Driver, _ []int, _ []string) error { return d.Show(true) },
	},
	"off": {
		help: "Switch the display off",
		run:  func(d *oled.Driver, _ []int, _ []string) error { return d.Show(false) },
	},
	"normal": {
		help: "Lit pixels on a dark background",
		run:  func(d *oled.Driver, _ []int, _ []string) error { return d.Invert(false) },
	},
	"invert": {
		help: "Dark pixels on a lit background",
		run:  func(d *oled.Driver, _ []int, _ []string) error { return d.Invert(true) },
	},
	"init": {
		help: "Configure the controller and switch the display on",
		run:  func(d *oled.Driver, _ []int, _ []string) error { return d.Init() },
	},
	"window": {
		help: "Reset the address window to the whole display",
		run:  func(d *oled.Driver, _ []int, _ []string) error { return d.SetWindow(oled.FullRegion) },
	},
	"contrast": {
		args:  "<level>",
		help:  "Set the contrast level (0-255)",
		nargs: 1,
		run: func(d *oled.Driver, args []int, _ []string) error {
			if args[0] < 0 || args[0] > 0xff {
				return fmt.Errorf("contrast %d out of range", args[0])
			}
			return d.SetContrast(uint8(args[0]))
		},
	},
	"cmd": {
		args:  "<hex>",
		help:  "Send one raw command byte",
		nargs: -1,
		run: func(d *oled.Driver, _ []int, raw []string) error {
			if len(raw) != 1 {
				return fmt.Errorf("expected 1 argument, got %d", len(raw))
			}
			b, err := strconv.ParseUint(strings.TrimPrefix(raw[0], "0x"), 16, 8)
			if err != nil {
				return err
			}
			return d.Command(byte(b))
		},
	},
	"clear": {
		help: "Switch all pixels off",
		run: func(d *oled.Driver, _ []int, _ []string) error {
			// The panel content is unknown to a fresh process.
			d.Invalidate()
			d.Clear()
			return d.Flush()
		},
	},
	"fill": {
		help: "Switch all pixels on",
		run: func(d *oled.Driver, _ []int, _ []string) error {
			d.Fill(true)
			return d.Flush()
		},
	},
	"random": {
		help: "Fill the display with noise",
		run: func(d *oled.Driver, _ []int, _ []string) error {
			d.FillRandom(nil)
			return d.Flush()
		},
	},
	"pixel": {
		args:  "<x> <y>",
		help:  "Switch one pixel on",
		nargs: 2,
		run: func(d *oled.Driver, args []int, _ []string) error {
			if err := d.SetPixel(args[0], args[1], true); err != nil {
				return err
			}
			return d.Flush()
		},
	},
	"circle": {
		args:  "<cx> <cy> <r>",
		help:  "Draw a circle outline",
		nargs: 3,
		run: func(d *oled.Driver, args []int, _ []string) error {
			if err := d.Circle(args[0], args[1], args[2]); err != nil {
				return err
			}
			return d.Flush()
		},
	},
	"disc": {
		args:  "<cx> <cy> <r>",
		help:  "Draw a filled circle",
		nargs: 3,
		run: func(d *oled.Driver, args []int, _ []string) error {
			if err := d.FilledCircle(args[0], args[1], args[2]); err != nil {
				return err
			}
			return d.Flush()
		},
	},
	"border": {
		help: "Draw a one pixel border around the display",
		run: func(d *oled.Driver, _ []int, _ []string) error {
			if err := draw.Rectangle(d, d.Bounds(), pixel.On); err != nil {
				return err
			}
			return d.Flush()
		},
	},
	"image": {
		args:  "<file>",
		help:  "Show a PNG or BMP image scaled to the display",
		nargs: -1,
		run: func(d *oled.Driver, _ []int, raw []string) error {
			if len(raw) != 1 {
				return fmt.Errorf("expected 1 argument, got %d", len(raw))
			}
			f, err := os.Open(raw[0])
			if err != nil {
				return err
			}
			defer f.Close()
			img, _, err := image.Decode(f)
			if err != nil {
				return err
			}
			draw.Fit(d, img)
			return d.Flush()
		},
	},
}

// runCommand looks up and executes a sub-command.
func runCommand(d *oled.Driver, name string, raw []string) error {
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%s is not an oled command", name)
	}

	var args []int
	if cmd.nargs >= 0 {
		if len(raw) != cmd.nargs {
			return fmt.Errorf("%s expects %d arguments, got %d", name, cmd.nargs, len(raw))
		}
		for _, s := range raw {
			v, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("%s: invalid argument %q", name, s)
			}
			args = append(args, v)
		}
	}
	return cmd.run(d, args, raw)
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
