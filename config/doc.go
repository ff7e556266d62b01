// Package config loads the description of a console set from a TOML file
// and NCONSOLE_* environment variables.
//
// Example file:
//
//	phase = "boot"
//	debug = true
//
//	[stream]
//	scope = ["boot", "runtime", "crash"]
//	crlf = true
//	async = true
//
//	[ring]
//	scope = ["boot", "crash"]
//	size = 4096
//
//	[file]
//	enabled = true
//	path = "/var/log/nconsole.log"
//	max_size = 1048576
package config
