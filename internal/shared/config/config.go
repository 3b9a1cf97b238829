package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Tuning holds every drive-feel constant consumed by the car controller.
type Tuning struct {
	// SphereOffsetY places the car mesh relative to the rolling sphere center.
	SphereOffsetY float64
	// Acceleration scales the reduced drive signal into force magnitude.
	Acceleration float64
	// MaxSteerDeg is the steering target angle at full lock, in degrees.
	MaxSteerDeg float64
	// TurnSpeed is the rate of approach toward the steering target per second.
	TurnSpeed float64
	// TurnStopLimit is the minimum body speed before steering rotation applies.
	TurnStopLimit float64
	// TiltDivisor is the inverse sensitivity of body roll to steer times speed.
	TiltDivisor float64
	// SlopeAlignRate is the blend rate toward the ground-normal-aligned transform.
	SlopeAlignRate float64
	// TiltBlendRate is the blend rate toward the target tilt angle.
	TiltBlendRate float64
	// ProbeLength is the downward ground-probe ray length.
	ProbeLength float64
}

// WorldParams configures the sphere body and its solver environment.
type WorldParams struct {
	GravityY      float64
	LinearDamping float64
	BodyMass      float64
	BodyRadius    float64
	SpawnY        float64
}

// Server configures the host loop and its listen surface.
type Server struct {
	ListenAddr     string
	PhysicsHz      int
	PresentationHz int
}

// Config is the full driveserver configuration.
type Config struct {
	Server Server
	World  WorldParams
	Tuning Tuning
}

func setDefaults() {
	viper.SetDefault("server.listenAddr", ":9003")
	viper.SetDefault("server.physicsHz", 120)
	viper.SetDefault("server.presentationHz", 60)

	viper.SetDefault("world.gravityY", -40.0)
	viper.SetDefault("world.linearDamping", 1.5)
	viper.SetDefault("world.bodyMass", 1.0)
	viper.SetDefault("world.bodyRadius", 1.0)
	viper.SetDefault("world.spawnY", 2.0)

	viper.SetDefault("drive.sphereOffsetY", -1.0)
	viper.SetDefault("drive.acceleration", 35.0)
	viper.SetDefault("drive.maxSteerDeg", 21.0)
	viper.SetDefault("drive.turnSpeed", 25.0)
	viper.SetDefault("drive.turnStopLimit", 0.75)
	viper.SetDefault("drive.tiltDivisor", 35.0)
	viper.SetDefault("drive.slopeAlignRate", 10.0)
	viper.SetDefault("drive.tiltBlendRate", 10.0)
	viper.SetDefault("drive.probeLength", 1.5)
}

// Load reads configuration from an optional JSON file in configDir, with
// defaults for every key and DRIFT_-prefixed environment overrides.
func Load(configDir string) (Config, error) {
	setDefaults()

	viper.SetEnvPrefix("drift")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("driveserver.cfg.json")
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return Config{
		Server: Server{
			ListenAddr:     viper.GetString("server.listenAddr"),
			PhysicsHz:      viper.GetInt("server.physicsHz"),
			PresentationHz: viper.GetInt("server.presentationHz"),
		},
		World: WorldParams{
			GravityY:      viper.GetFloat64("world.gravityY"),
			LinearDamping: viper.GetFloat64("world.linearDamping"),
			BodyMass:      viper.GetFloat64("world.bodyMass"),
			BodyRadius:    viper.GetFloat64("world.bodyRadius"),
			SpawnY:        viper.GetFloat64("world.spawnY"),
		},
		Tuning: Tuning{
			SphereOffsetY:  viper.GetFloat64("drive.sphereOffsetY"),
			Acceleration:   viper.GetFloat64("drive.acceleration"),
			MaxSteerDeg:    viper.GetFloat64("drive.maxSteerDeg"),
			TurnSpeed:      viper.GetFloat64("drive.turnSpeed"),
			TurnStopLimit:  viper.GetFloat64("drive.turnStopLimit"),
			TiltDivisor:    viper.GetFloat64("drive.tiltDivisor"),
			SlopeAlignRate: viper.GetFloat64("drive.slopeAlignRate"),
			TiltBlendRate:  viper.GetFloat64("drive.tiltBlendRate"),
			ProbeLength:    viper.GetFloat64("drive.probeLength"),
		},
	}, nil
}
