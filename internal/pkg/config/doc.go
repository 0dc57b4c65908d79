// Package config provides functionality for loading and validating the
// api-controller service configuration.
//
// Settings are read from environment variables (optionally seeded from a
// .env file) into small per-concern structs. Each struct validates itself so
// a misconfigured process fails at startup rather than on the first request.
package config
