// Package config loads, normalizes, and validates trvip6 configuration data.
//
// It supplies the built-in catalog endpoint, request headers, and playlist
// layout defaults, reads optional TOML files, and honours environment
// overrides such as TRVIP6_SOURCE_URL. The Config type is constructed once at
// startup and handed to each conversion stage; nothing in it changes while a
// run is in progress.
//
// Always obtain settings through this package so the fetcher, playlist
// builder, and writer receive trimmed values and clear validation errors.
package config
