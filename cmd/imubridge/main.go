package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/jd3nn1s/imubridge"
	"github.com/jd3nn1s/imubridge/forwarder"
	log "github.com/sirupsen/logrus"
	"os"
)

var testMode = flag.Bool("testmode", false, "generate synthetic telemetry")
var replayPath = flag.String("replay", "", "replay a recorded telemetry session")
var recordPath = flag.String("record", "", "record the telemetry session to a file")
var configPath = flag.String("config", "", "bridge calibration TOML file")
var udpConfig = flag.String("udp", "", "UDP forwarder TOML file")
var mqttBroker = flag.String("mqtt", "", "MQTT broker URL, e.g. tcp://localhost:1883")
var printSnapshots = flag.Bool("print-snapshots", false, "print published snapshots to stdout")
var verbose = flag.Bool("v", false, "debug logging")

func main() {
	log.SetLevel(log.InfoLevel)
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	ctx := context.Background()

	cfg := imubridge.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = imubridge.LoadConfig(*configPath)
		if err != nil {
			log.Fatal("unable to load bridge configuration: ", err)
		}
	}
	bridge := imubridge.NewBridge(cfg)

	if *udpConfig != "" {
		fwder, err := forwarder.NewUDPForwarder(*udpConfig)
		if err != nil {
			log.Fatal("unable to load UDP forwarder: ", err)
		}
		go func() {
			_ = fwder.Start(ctx)
		}()
		bridge.AddSink(fwder)
	}
	if *mqttBroker != "" {
		fwder, err := forwarder.NewMQTTForwarder(*mqttBroker, "imubridge", "imu")
		if err != nil {
			log.Fatal("unable to connect MQTT forwarder: ", err)
		}
		defer fwder.Close()
		bridge.AddSink(fwder)
	}
	if *printSnapshots {
		bridge.AddSink(printSink{})
	}

	cb := bridge.Callbacks()
	if *recordPath != "" {
		f, err := os.Create(*recordPath)
		if err != nil {
			log.Fatal("unable to create recording file: ", err)
		}
		defer f.Close()
		cb = imubridge.NewRecorder(f).Callbacks(cb)
	}

	switch {
	case *replayPath != "":
		f, err := os.Open(*replayPath)
		if err != nil {
			log.Fatal("unable to open recording: ", err)
		}
		defer f.Close()
		if err := imubridge.NewReplaySource(f).Start(ctx, cb); err != nil {
			log.Fatal("replay failed: ", err)
		}
	case *testMode:
		err := imubridge.RunSource(ctx, "simulator", func() (imubridge.Source, error) {
			return &imubridge.Simulator{}, nil
		}, cb)
		log.Error("simulator done: ", err)
	default:
		log.Fatal("no telemetry source: use -testmode or -replay")
	}
}

type printSink struct{}

func (printSink) PublishImu(snap *imubridge.ImuSnapshot) error {
	fmt.Printf("%+v\n", *snap)
	return nil
}

func (printSink) PublishMagneticField(snap *imubridge.MagneticFieldSnapshot) error {
	fmt.Printf("%+v\n", *snap)
	return nil
}

func (printSink) PublishTemperature(snap *imubridge.TemperatureSnapshot) error {
	fmt.Printf("%+v\n", *snap)
	return nil
}

func (printSink) PublishFluidPressure(snap *imubridge.FluidPressureSnapshot) error {
	fmt.Printf("%+v\n", *snap)
	return nil
}
