// Package config provides configuration parsing for vdomkit.
//
// The configuration is stored in vdomkit.yaml. Every field has a default,
// so an empty file (or no file at all) is a valid configuration.
//
// # Configuration File Structure
//
//	server:
//	  addr: ":8080"
//	  readTimeout: 10s
//	  shutdownTimeout: 5s
//	  maxBodyBytes: 1048576
//	store:
//	  backend: bolt        # memory | bolt | s3
//	  bolt:
//	    path: vdomkit.db
//	    timeout: 1s
//	  s3:
//	    bucket: snapshots
//	    prefix: sessions/
//	    region: eu-west-1
//	    endpoint: http://localhost:9000
//	    pathStyle: true
//	metrics:
//	  enabled: true
//	  namespace: vdom
//	  path: /metrics
//	tracing:
//	  enabled: true
//	  tracerName: vdomkit
//	log:
//	  level: info
//	  format: text
//
// # Usage
//
//	cfg, err := config.LoadFile("vdomkit.yaml")
//	if err != nil {
//	    errors.PrintError(err)
//	    os.Exit(1)
//	}
//	cfg.ApplyEnv(os.LookupEnv)
//	if err := cfg.Validate(); err != nil { ... }
package config
