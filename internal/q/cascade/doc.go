// Package cascade loads layered configuration into Go structs from multiple sources with predictable precedence.
//
// A Loader holds sources from lowest to highest priority. Register them with the With* methods, then call StrictlyLoad. The zero value of Loader is ready to use; New exists for
// fluent chaining (ex: New().WithDefaults(...).WithFile(...).WithEnv(...).StrictlyLoad(&cfg)).
//
// Sources
//   - Defaults from a map[string]any whose keys may use dot-notation to denote nesting.
//   - Files read at load time, in JSON or YAML (JSON is parsed as YAML). WithFile registers a specific path. WithNearestFile searches upward from a directory for the first readable,
//     non-empty file among a list of relative names.
//   - Environment variables mapped to configuration keys via WithEnv. Unset and empty variables are ignored. Other values are parsed as YAML scalars, so "5" is a number and "true" a bool.
//
// Keys are case-insensitive and dot-separated for nesting. The destination struct is decoded with gopkg.in/yaml.v3, so its fields are named by yaml tags (or the lowercased field name).
// Unknown keys are ignored.
//
// Fields tagged cascade:",required" must be set by some source; validation occurs after all sources have been applied. StrictlyLoad fails fast when a readable source cannot be parsed
// or supplies a value of the wrong type, and the error names the source. Missing or unreadable files and empty files do not cause errors.
//
// Example
//
//	type Config struct {
//	    Host string `yaml:"host" cascade:",required"`
//	    Port int    `yaml:"port"`
//	}
//
//	var cfg Config
//	err := New().
//	    WithDefaults(map[string]any{"host": "localhost", "port": 8080}).
//	    WithNearestFile("", "app.yaml", "app.json").
//	    WithEnv(map[string]string{"host": "APP_HOST", "port": "APP_PORT"}).
//	    StrictlyLoad(&cfg)
package cascade
