// Package config loads and validates the broker core configuration.
//
// Configuration is layered: the built-in defaults (Default) are overridden by
// each file added to a Loader, in order, and finally by ORIONLD_* environment
// variables. A layer only overrides the fields it names, so an override file
// can be as small as:
//
//	fetch:
//	  timeout: 2s
//
// Files ending in .yaml or .yml are decoded as YAML, everything else as JSON.
// Durations accept Go duration strings ("5s", "250ms").
//
// # Basic Usage
//
//	loader := config.NewLoader()
//	loader.AddLayer("configs/base.json")
//	loader.AddLayer("configs/production.yaml")
//	loader.EnableValidation(true)
//
//	cfg, err := loader.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Environment Overrides
//
//	ORIONLD_DEFAULT_URL       broker.default_url
//	ORIONLD_CORE_CONTEXT_URL  broker.core_context_url
//	ORIONLD_FETCH_TIMEOUT     fetch.timeout
//	ORIONLD_FETCH_POOL_SIZE   fetch.pool_size
//	ORIONLD_LOG_LEVEL         log.level
//	ORIONLD_LOG_FORMAT        log.format
//
// # Thread-Safe Access
//
// SafeConfig guards a Config with an RWMutex and hands out deep copies, so
// readers never observe a partially applied update. Validation failures are
// errors.ErrInvalidConfig, classified as invalid.
package config
