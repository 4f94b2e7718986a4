// Package health tracks the health of named parts of the serialization core.
//
// A Monitor holds one Status per part. Parts report outcomes with Record,
// which turns an error into a Status (FromError) and accumulates error and
// processed counts. AggregateHealth folds all parts into one Status: any
// unhealthy part makes the whole unhealthy, otherwise any degraded part makes
// it degraded.
//
//	monitor := health.NewMonitor()
//	monitor.Record("render", err, int64(len(batch.Entities)))
//
//	status := monitor.AggregateHealth("orionld")
//	if !status.IsHealthy() {
//		// serve 503
//	}
//
// Error messages are sanitized before they are stored: URLs, file paths, IP
// addresses, ports and credential-looking pairs are replaced by placeholders.
package health
