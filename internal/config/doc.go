// Package config loads gantry-mcp configuration from a YAML file with
// environment overrides.
//
// Configuration is resolved in three layers, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. The YAML file, with ${VAR_NAME} expansion inside values
//  3. GANTRY_* environment variables
//
// The file is optional; a deployment that only sets GANTRY_API_URL and
// GANTRY_IDENTITY_SECRET_KEY is complete. All values are read once at
// startup and never re-read mid-request.
package config
