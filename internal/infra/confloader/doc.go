// Package confloader loads console-gate configuration.
//
// It layers sources through koanf with the priority (highest last):
// default values, the YAML configuration file, CONSOLE_GATE_*
// environment variables. A watcher built on fsnotify reports file
// changes so the server can hot-reload the published snapshot.
package confloader
