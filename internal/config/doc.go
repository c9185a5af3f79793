// Package config loads the catalog viewer configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/catalog/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/catalog/config.toml
//   - Source: products.json (relative to the working directory)
//   - Log file: ~/.local/state/catalog/catalog.log
//   - Categories: none (the viewer derives them from the loaded records)
//   - Watch: off
//   - Request timeout: none
//
// # TOML Format
//
//	source          = "https://example.com/products.json"
//	categories      = ["PP", "Hybrid", "Specialty", "PU"]
//	log_file        = "~/.local/state/catalog/catalog.log"
//	watch           = false
//	request_timeout = "10s"
//
// Every field is optional. Tilde expansion is applied to log_file. The
// category list never needs "all"; the selector always offers it first, so
// an "all" entry is dropped along with blanks and case-insensitive
// duplicates.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors and invalid request_timeout values
//
// Missing config files are NOT an error. The viewer works out of the box in
// any directory that contains a products.json.
package config
