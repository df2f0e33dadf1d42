// Package config handles configuration management for apphide.
// It layers embedded defaults, the user's config.toml and APPHIDE_*
// environment variables.
package config
