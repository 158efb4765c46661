// Package config loads runtime configuration for portalctl.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the portal server
//	-p string   local profile database
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "profile_path": "portal.db",
//	  "request_timeout": "10s"
//	}
package config
