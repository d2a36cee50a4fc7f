// Package config provides process configuration from environment variables.
//
// # Overview
//
// Environment variables tune how pkglint runs. What it checks lives in pkglint.yaml and
// is loaded by pkg/linter.
//
//	PKGLINT_CONFIG="tools/pkglint.yaml"   # lint config, default: search the workspace root
//	PKGLINT_STORAGE_TYPE="filesystem"     # filesystem, memory
//	PKGLINT_FILE_MODE="0644"
//	PKGLINT_DIR_MODE="0755"
//	PKGLINT_READ_CACHE_SIZE="512"
//	PKGLINT_WATCH_DEBOUNCE="200ms"
//	PKGLINT_LOG_LEVEL="info"              # debug, info, warn, error
//	PKGLINT_LOG_FORMAT="text"             # text, json
//	PKGLINT_METRICS_FILE="/var/lib/node_exporter/pkglint.prom"
//	PKGLINT_NO_COLOR="true"
//
// # Usage Example
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	store, err := storage.NewStore(cfg.Storage)
//
// # Related Packages
//
//   - pkg/storage: Uses storage configuration
//   - pkg/observability: Uses observability configuration
package config
