// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file and environment variables. Each service
// supplies its own Defaults; everything else is shared.
package config
