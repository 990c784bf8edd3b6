// Package config loads and validates service configuration.
//
// Configuration comes from a config.yml file, an optional .env file and
// the process environment, in that order of precedence. The Config struct
// gathers every section of the service; each section applies its own
// defaults and validation.
package config
