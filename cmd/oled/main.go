package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/bmp"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/oled"
)

func main() {
	// Logger
	logrus.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	mainCommand := filepath.Base(os.Args[0])

	configFlag := flag.String("c", "", "Location of a YAML config file")
	busFlag := flag.String("bus", oled.DefaultI2CConfig.Bus, "I²C bus name or device path")
	addrFlag := flag.Uint("addr", uint(oled.DefaultI2CConfig.Addr), "I²C device address")
	rawFlag := flag.Bool("raw", false, "Use the Linux i2c-dev device directly instead of periph")
	resetFlag := flag.String("reset", "", "Reset GPIO pin, pulsed before init")
	snapshotFlag := flag.String("snapshot", "", "Write the resulting frame to a BMP file")
	debugFlag := flag.Bool("d", false, "Enable debug mode")

	flag.Usage = func() {
		fmt.Printf("\nUsage: %s [OPTIONS] COMMAND [ARGS]\n", mainCommand)
		fmt.Printf("\nDrive an SSD1306 128x64 OLED display over I²C\n")
		fmt.Printf("\nOptions:\n")
		flag.PrintDefaults()
		fmt.Printf("\nCommands:\n")
		for _, name := range commandNames() {
			cmd := commands[name]
			fmt.Printf("  %-24s %s\n", name+" "+cmd.args, cmd.help)
		}
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	if *debugFlag {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true, TimestampFormat: time.RFC3339Nano})
		logrus.Debug("Debug mode activated")
	}

	config, err := loadConfig(*configFlag)
	if err != nil {
		logrus.Fatalf("Unable to load config: %v", err)
	}
	// Flags given on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bus":
			config.Bus = *busFlag
		case "addr":
			if err = config.setAddr(uint64(*addrFlag)); err != nil {
				logrus.Fatalf("Invalid -addr: %v", err)
			}
		case "raw":
			config.Raw = *rawFlag
		case "reset":
			config.Reset = *resetFlag
		}
	})

	if _, err = host.Init(); err != nil {
		logrus.Fatalf("Unable to initialize host drivers: %v", err)
	}

	displayConfig := &oled.Config{Logger: logrus.StandardLogger()}
	if config.Reset != "" {
		if displayConfig.Reset = gpioreg.ByName(config.Reset); displayConfig.Reset == nil {
			logrus.Fatalf("Unknown reset pin %q", config.Reset)
		}
	}

	d, err := oled.Open(config.i2c(), displayConfig)
	if err != nil {
		logrus.Fatalf("Unable to open display: %v", err)
	}
	logrus.Infof("Using %s", d)

	name := flag.Arg(0)
	if name == "init" {
		if err = d.Reset(); err != nil {
			logrus.Fatalf("Unable to reset display: %v", err)
		}
	}
	if err = runCommand(d, name, flag.Args()[1:]); err != nil {
		_ = d.Close()
		logrus.Fatalf("%s failed: %v", name, err)
	}
	if name == "init" && config.Contrast != nil {
		if err = d.SetContrast(*config.Contrast); err != nil {
			logrus.Fatalf("Unable to set contrast: %v", err)
		}
	}
	if stats := d.Stats(); stats.Bytes > 0 {
		logrus.Infof("Sent %d bytes for %s", stats.Bytes, stats.Window)
	}

	if *snapshotFlag != "" {
		if err = snapshot(d, *snapshotFlag); err != nil {
			logrus.Errorf("Unable to write snapshot: %v", err)
		}
	}

	// Leave the display running: Close would switch it off.
	if err = d.Release(); err != nil {
		logrus.Fatalf("Unable to close bus: %v", err)
	}
}

// snapshot writes the frame as a BMP image.
func snapshot(d *oled.Driver, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = bmp.Encode(f, d); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
