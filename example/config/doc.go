// Package config reads the demo configuration from the environment and opens the archive connections.
package config
