package powmetrics

import (
	"time"

	client "github.com/influxdata/influxdb/client/v2"

	"github.com/probeum/pow-consensus/internal/powlog"
)

// Reporter periodically writes the miner's hashrate to an InfluxDB
// instance. Disabled (a no-op Run) when Addr is empty — an operator isn't
// required to run InfluxDB to use the engine.
type Reporter struct {
	Addr      string
	Database  string
	Namespace string

	log powlog.Logger
}

// NewReporter builds a reporter; Addr == "" disables reporting entirely.
func NewReporter(addr, database, namespace string) *Reporter {
	return &Reporter{Addr: addr, Database: database, Namespace: namespace, log: powlog.New("component", "powmetrics")}
}

// Run reports meter's rate to InfluxDB every interval until ctx-like done
// channel closes. Errors are logged, not fatal — metrics reporting never
// brings down mining.
func (r *Reporter) Run(done <-chan struct{}, interval time.Duration, meter *Meter) {
	if r.Addr == "" {
		return
	}
	c, err := client.NewHTTPClient(client.HTTPConfig{Addr: r.Addr})
	if err != nil {
		r.log.Error("Failed to create influxdb client", "err", err)
		return
	}
	defer c.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			rate := meter.Tick()
			if err := r.write(c, rate); err != nil {
				r.log.Warn("Failed to write metrics", "err", err)
			}
		}
	}
}

func (r *Reporter) write(c client.Client, rate float64) error {
	bp, err := client.NewBatchPoints(client.BatchPointsConfig{
		Database:  r.Database,
		Precision: "s",
	})
	if err != nil {
		return err
	}
	pt, err := client.NewPoint(
		r.Namespace+"hashrate",
		nil,
		map[string]interface{}{"value": rate},
		time.Now(),
	)
	if err != nil {
		return err
	}
	bp.AddPoint(pt)
	return c.Write(bp)
}
