// Package main hosts the trvip6 CLI entrypoint.
//
// Running trvip6 with no arguments fetches the channel catalog once, converts
// it to an extended M3U playlist, and writes the playlist file. Flags only
// override the built-in defaults; the config subcommands scaffold and inspect
// the optional TOML file. The process exits 1 when the catalog cannot be
// fetched or yields no usable channels.
package main
