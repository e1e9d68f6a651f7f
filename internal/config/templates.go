package config

import (
	"fmt"
	"os"
)

// WriteTemplate writes a starter config file to path. It refuses to
// overwrite an existing file unless overwrite is true.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(wireplayerTemplate), 0o600)
}

const wireplayerTemplate = `[wire]
endianness = "big"
listen_addr = ":9500"
admin_listen_addr = ":9501"
companion_server_path = ""

[log]
level = "info"
timestamp = true
`
