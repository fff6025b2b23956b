package main

import (
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/maruel/interrupt"

	"go.mlx90640-thermcam.gocv-driver/thermcam"
)

func main() {
	cfg := thermcam.LoadConfig()

	var src thermcam.FrameSource
	var err error
	if cfg.UseFakeSensor {
		thermcam.INFOLogger.Println("Using fake sensor (USE_FAKE_SENSOR=true)")
		src = thermcam.NewFakeSensor(frameInterval(cfg.RefreshRateHz))
	} else {
		src, err = thermcam.NewMLX90640(cfg.I2CBus, cfg.RefreshRateHz)
		if err != nil {
			thermcam.ERRORLogger.Fatal(err)
		}
	}
	defer src.Close()

	var mqttClient mqtt.Client
	if cfg.MQTTBroker != "" {
		mqttClient, err = thermcam.NewMQTTClient(cfg)
		if err != nil {
			thermcam.ERRORLogger.Fatal(err)
		}
		defer mqttClient.Disconnect(250)
	}

	server := thermcam.StartStreamServer(cfg.HTTPAddr)

	interrupt.HandleCtrlC()

	loop := thermcam.NewCameraLoop(cfg, src, server, mqttClient)
	if err := loop.Run(); err != nil {
		thermcam.ERRORLogger.Fatal(err)
	}
}

func frameInterval(refreshHz int) time.Duration {
	if refreshHz <= 0 {
		refreshHz = 8
	}
	return time.Second / time.Duration(refreshHz)
}
