// Package config loads calculator configuration files and gives plugins typed
// access to their options.
//
// # File Format
//
// A configuration file names the initial value and the plugins to apply, in
// order. YAML, JSON and TOML are supported, chosen by file extension:
//
//	initial_value: 0
//	plugins:
//	  - name: log
//	  - name: limit
//	    options:
//	      max: 2000
//	  - name: operators
//	  - name: tape
//	    options:
//	      store: sqlite
//	      path: ./tape.db
//
// The same file in TOML:
//
//	initial_value = 0.0
//
//	[[plugins]]
//	name = "log"
//
//	[[plugins]]
//	name = "limit"
//	options = { max = 2000 }
//
// # Options
//
// Options wraps a plugin's options map. Accessors return the supplied default
// when a key is missing or holds a value of the wrong type, so plugin
// factories can read settings without type assertions:
//
//	opts := spec.Config()
//	max := opts.Float("max", 2000)
//	path := opts.String("path", "tape.db")
//
// Numbers are accepted in whichever form the decoder produced them (int from
// YAML, int64 from TOML, float64 from JSON).
package config
