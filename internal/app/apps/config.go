package apps

import (
	"os"
	"time"

	"github.com/JovannMC/tracker-emulation-go/internal/pkg/validate"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Duration decodes "500ms"-style YAML strings.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return errors.Wrap(err, "duration must be a string")
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "parse duration %q failed", s)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the standard-library view of the duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Fleet is the emulation run configuration.
type Fleet struct {
	Server   ServerConfig   `yaml:"server"`
	Trackers TrackersConfig `yaml:"trackers"`
	Sim      SimConfig      `yaml:"sim"`
}

type ServerConfig struct {
	Address string   `yaml:"address" validate:"required,hostname_port"`
	Timeout Duration `yaml:"timeout"`
}

type TrackersConfig struct {
	Count    int            `yaml:"count" validate:"min=1,max=256"`
	MacSeed  string         `yaml:"mac_seed"`
	Firmware string         `yaml:"firmware"`
	Board    string         `yaml:"board"`
	Mcu      string         `yaml:"mcu"`
	Debug    bool           `yaml:"debug"`
	Sensors  []SensorConfig `yaml:"sensors" validate:"min=1,dive"`
}

type SensorConfig struct {
	Type   string `yaml:"type"`
	Status string `yaml:"status" validate:"omitempty,oneof=ok offline"`
}

type SimConfig struct {
	Rate           Duration `yaml:"rate"`
	Period         Duration `yaml:"period"`
	TelemetryEvery Duration `yaml:"telemetry_every"`
	BatteryLife    Duration `yaml:"battery_life"`
}

// LoadFleet reads, defaults and validates a fleet configuration file.
func LoadFleet(path string) (Fleet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Fleet{}, errors.Wrapf(err, "read fleet config %q failed", path)
	}
	var fleet Fleet
	if err := yaml.Unmarshal(b, &fleet); err != nil {
		return Fleet{}, errors.Wrap(err, "parse fleet config failed")
	}
	fleet.applyDefaults()
	if err := validate.Validate().Struct(fleet); err != nil {
		return Fleet{}, errors.Wrap(err, "validate fleet config failed")
	}
	return fleet, nil
}

func (f *Fleet) applyDefaults() {
	if f.Server.Address == "" {
		f.Server.Address = "255.255.255.255:6969"
	}
	if f.Server.Timeout <= 0 {
		f.Server.Timeout = Duration(5 * time.Second)
	}
	if f.Trackers.Count == 0 {
		f.Trackers.Count = 1
	}
	if f.Trackers.MacSeed == "" {
		f.Trackers.MacSeed = "DE:AD:BE:EF:00:00"
	}
	if f.Trackers.Firmware == "" {
		f.Trackers.Firmware = "tracker-emulation-go"
	}
	if len(f.Trackers.Sensors) == 0 {
		f.Trackers.Sensors = []SensorConfig{{Type: "bno085", Status: "ok"}}
	}
	if f.Sim.Rate <= 0 {
		f.Sim.Rate = Duration(50 * time.Millisecond)
	}
	if f.Sim.Period <= 0 {
		f.Sim.Period = Duration(7 * time.Second)
	}
	if f.Sim.TelemetryEvery <= 0 {
		f.Sim.TelemetryEvery = Duration(10 * time.Second)
	}
	if f.Sim.BatteryLife <= 0 {
		f.Sim.BatteryLife = Duration(8 * time.Hour)
	}
}
