package thermcam

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is loaded once at startup from the environment (optionally
// seeded from a .env file) and stays read-only for the session.
type Config struct {
	ImageWidth  int
	ImageHeight int

	Colorbar ColorbarSpec

	MQTTBroker     string
	MQTTClientID   string
	MQTTImageTopic string
	MQTTStatsTopic string

	HTTPAddr string

	SnapshotFolder string

	UseFakeSensor bool
	I2CBus        string
	RefreshRateHz int

	Display bool
}

func LoadConfig() Config {
	// A missing .env file is fine, the environment wins anyway.
	_ = godotenv.Load()

	cfg := Config{
		ImageWidth:  envInt("IMAGE_WIDTH", 1200),
		ImageHeight: envInt("IMAGE_HEIGHT", 900),
		Colorbar: ColorbarSpec{
			Width:    envInt("COLORBAR_WIDTH", 100),
			VMargin:  envInt("COLORBAR_V_MARGIN", 30),
			HMargin:  envInt("COLORBAR_H_MARGIN", 100),
			TickStep: envInt("COLORBAR_TICK_STEP", 5),
		},
		MQTTBroker:     os.Getenv("MQTT_BROKER"),
		MQTTClientID:   envStr("MQTT_CLIENT_ID", "thermcam"),
		MQTTImageTopic: envStr("MQTT_IMAGE_TOPIC", "thermcam/images/processed"),
		MQTTStatsTopic: envStr("MQTT_STATS_TOPIC", "thermcam/frames/stats"),
		HTTPAddr:       envStr("HTTP_ADDR", ":8080"),
		SnapshotFolder: envStr("SNAPSHOT_FOLDER", "saved_snapshots"),
		UseFakeSensor:  envBool("USE_FAKE_SENSOR", false),
		I2CBus:         os.Getenv("I2C_BUS"),
		RefreshRateHz:  envInt("SENSOR_REFRESH_HZ", 8),
		Display:        envBool("DISPLAY_WINDOW", false),
	}
	return cfg
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		WARNINGLogger.Printf("Invalid integer in %s env variable: %q. Using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		WARNINGLogger.Printf("Invalid boolean in %s env variable: %q. Using default %t", key, v, fallback)
		return fallback
	}
	return b
}
