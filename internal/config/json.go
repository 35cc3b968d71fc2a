package config

import "encoding/json"

// decodeJSON merges a JSON document into cfg. Split out from config.go only
// because it's the one format whose decoder needs its own import alias-free
// call site (json.Unmarshal mutates in place same as yaml.Unmarshal).
func decodeJSON(data []byte, cfg *Config) error {
	return json.Unmarshal(data, cfg)
}
