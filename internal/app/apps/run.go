package apps

import (
	"context"
	"math"
	"net"
	"sync"
	"time"

	"github.com/JovannMC/tracker-emulation-go/internal/pkg/firmware"
	"github.com/JovannMC/tracker-emulation-go/internal/pkg/sim"
	"github.com/JovannMC/tracker-emulation-go/internal/pkg/tracker"
	"github.com/JovannMC/tracker-emulation-go/internal/pkg/validate"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// RunAppCfg configures a RunApp.
type RunAppCfg interface {
	ApplyRunApp(*RunApp) error
}

// RunApp emulates a fleet of trackers against one server.
type RunApp struct {
	ConfigPath    string `validate:"required"`
	ServerAddress string // optional override of the fleet config
}

// NewRunApp creates a new RunApp.
func NewRunApp(cfgs ...RunAppCfg) (*RunApp, error) {
	app := &RunApp{}
	for _, cfg := range cfgs {
		if err := cfg.ApplyRunApp(app); err != nil {
			return nil, errors.Wrap(err, "apply RunApp cfg failed")
		}
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate RunApp failed")
	}
	return app, nil
}

// Run loads the fleet config, brings every tracker online and streams
// simulated telemetry until the context is cancelled.
func (app *RunApp) Run(ctx context.Context, args []string) error {
	path := app.ConfigPath
	if len(args) > 1 && args[1] != "" {
		path = args[1]
	}
	fleet, err := LoadFleet(path)
	if err != nil {
		return errors.Wrap(err, "load fleet failed")
	}
	if app.ServerAddress != "" {
		fleet.Server.Address = app.ServerAddress
	}

	trackers, err := buildFleet(fleet)
	if err != nil {
		return errors.Wrap(err, "build fleet failed")
	}

	logger.WithFields(logrus.Fields{
		"count":  len(trackers),
		"server": fleet.Server.Address,
	}).Info("starting tracker fleet")

	var wg sync.WaitGroup
	errc := make(chan error, len(trackers))
	for i, tr := range trackers {
		wg.Add(1)
		go func(index int, tr *tracker.Tracker) {
			defer wg.Done()
			if err := app.runTracker(ctx, tr, fleet, index); err != nil {
				errc <- errors.Wrapf(err, "tracker %d failed", index)
			}
		}(i, tr)
	}
	wg.Wait()
	close(errc)
	return <-errc
}

func buildFleet(fleet Fleet) ([]*tracker.Tracker, error) {
	board, err := firmware.ParseBoardType(fleet.Trackers.Board)
	if err != nil {
		return nil, err
	}
	mcu, err := firmware.ParseMcuType(fleet.Trackers.Mcu)
	if err != nil {
		return nil, err
	}
	seed, err := net.ParseMAC(fleet.Trackers.MacSeed)
	if err != nil {
		return nil, errors.Wrapf(err, "parse mac seed %q failed", fleet.Trackers.MacSeed)
	}
	if len(seed) != 6 {
		return nil, errors.Errorf("mac seed %q must be 6 bytes", fleet.Trackers.MacSeed)
	}

	trackers := make([]*tracker.Tracker, 0, fleet.Trackers.Count)
	for i := 0; i < fleet.Trackers.Count; i++ {
		var mac [6]byte
		copy(mac[:], seed)
		// Derive per-tracker MACs by offsetting the low bytes of the seed.
		mac[5] = byte(int(mac[5]) + i)
		if int(seed[5])+i > 0xFF {
			mac[4]++
		}
		tr, err := tracker.New(mac, fleet.Trackers.Firmware,
			tracker.WithServerAddress(fleet.Server.Address),
			tracker.WithServerTimeout(fleet.Server.Timeout.Std()),
			tracker.WithBoardType(board),
			tracker.WithMcuType(mcu),
			tracker.WithDebug(fleet.Trackers.Debug),
		)
		if err != nil {
			return nil, errors.Wrapf(err, "build tracker %d failed", i)
		}
		trackers = append(trackers, tr)
	}
	return trackers, nil
}

// runTracker owns one tracker for the run: connect, register sensors, and
// stream telemetry. A watchdog-forced teardown is answered with a manual
// reconnect; shutdown comes from the context.
func (app *RunApp) runTracker(ctx context.Context, tr *tracker.Tracker, fleet Fleet, index int) error {
	if err := tr.Init(ctx); err != nil {
		if ctx.Err() != nil {
			return tr.Deinit()
		}
		return errors.Wrap(err, "init tracker failed")
	}

	sensors, motions, err := registerSensors(tr, fleet, index)
	if err != nil {
		return err
	}

	battery := sim.Battery{Start: time.Now(), Life: fleet.Sim.BatteryLife.Std()}
	rotTicker := time.NewTicker(fleet.Sim.Rate.Std())
	defer rotTicker.Stop()
	telTicker := time.NewTicker(fleet.Sim.TelemetryEvery.Std())
	defer telTicker.Stop()

	rx := tr.SubscribeStatus()
	defer rx.Close()

	for {
		select {
		case <-ctx.Done():
			return tr.Deinit()
		case <-rx.Changed():
			if rx.Latest() != tracker.StatusInitializing {
				continue
			}
			logger.WithField("tracker", index).Warn("session lost, reconnecting")
			if err := tr.Init(ctx); err != nil {
				if ctx.Err() != nil {
					return tr.Deinit()
				}
				if errors.Is(err, tracker.ErrSessionClosed) {
					continue
				}
				return errors.Wrap(err, "reconnect failed")
			}
		case now := <-rotTicker.C:
			for i, s := range sensors {
				if err := tr.SendRotation(s.ID, firmware.DataNormal, motions[i].Rotation(now), 3); err != nil {
					logSendErr(index, "rotation", err)
					continue
				}
				if err := tr.SendAcceleration(s.ID, motions[i].Acceleration(now)); err != nil {
					logSendErr(index, "acceleration", err)
				}
			}
		case now := <-telTicker.C:
			pct, volt := battery.Level(now)
			if err := tr.SendBatteryLevel(pct, volt); err != nil {
				logSendErr(index, "battery", err)
			}
			for _, s := range sensors {
				if err := tr.SendTemperature(s.ID, sim.Temperature(now, 38)); err != nil {
					logSendErr(index, "temperature", err)
				}
				if err := tr.SendSignalStrength(s.ID, -55); err != nil {
					logSendErr(index, "signal strength", err)
				}
			}
		}
	}
}

func registerSensors(tr *tracker.Tracker, fleet Fleet, index int) ([]tracker.Sensor, []sim.Motion, error) {
	sensors := make([]tracker.Sensor, 0, len(fleet.Trackers.Sensors))
	motions := make([]sim.Motion, 0, len(fleet.Trackers.Sensors))
	for i, sc := range fleet.Trackers.Sensors {
		imu, err := firmware.ParseImuType(sc.Type)
		if err != nil {
			return nil, nil, err
		}
		status, err := firmware.ParseSensorStatus(sc.Status)
		if err != nil {
			return nil, nil, err
		}
		sensor, err := tr.AddSensor(imu, status)
		if err != nil {
			logger.WithField("tracker", index).WithError(err).Warn("announce sensor failed")
		}
		sensors = append(sensors, sensor)
		motions = append(motions, sim.Motion{
			Period: fleet.Sim.Period.Std(),
			Phase:  2 * math.Pi * float64(index*len(fleet.Trackers.Sensors)+i) / 8,
		})
	}
	return sensors, motions, nil
}

func logSendErr(index int, kind string, err error) {
	if errors.Is(err, tracker.ErrNotInitialized) {
		// session is between Deinit and reconnect; drop the sample
		return
	}
	logger.WithField("tracker", index).WithError(err).Warnf("send %s failed", kind)
}
