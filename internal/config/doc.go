// Package config provides configuration structures and utilities for kanjikit.
// It defines the defaults for both commands, the optional .kanjikit YAML file
// and the XDG directories used for configuration and run history.
package config
