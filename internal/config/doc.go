// Package config loads, normalizes, and validates spacebuild configuration data.
//
// It supplies the Space Ace project defaults (media sets, tool names, the
// assembler manifest), expands user paths (including tilde shortcuts), and
// reads TOML files. The Config type centralizes every knob the pipelines and
// CLI need so the project layout is resolved in one pass instead of being
// inferred from where the binary happens to live.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
