// Package config defines the console-gate server configuration.
//
// The structure mirrors the YAML configuration file; values can be
// overridden from CONSOLE_GATE_* environment variables through the
// confloader package. A Store wrapper republishes the latest loaded
// configuration so readers always see a consistent snapshot after a
// hot reload.
package config
