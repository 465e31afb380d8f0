// Package core holds the numeric hygiene, configuration and error taxonomy
// shared by the filter unit packages.
//
// Sanitize is the render-path guard against denormals, NaN and Inf. Config
// carries the explicit defaults used before a host negotiates a format, and
// ConfigError is the configuration-error class reported to the control plane.
package core
