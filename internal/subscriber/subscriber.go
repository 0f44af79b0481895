// Package subscriber loads the flat subscriber list from its YAML side file.
package subscriber

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// List is the on-disk shape of the subscriber file.
type List struct {
	Emails []string `yaml:"emails"`
}

// Load reads the subscriber addresses from path. A missing or structurally
// invalid file yields an empty list with a logged warning, never an error;
// whether an empty list is fatal is the caller's decision. Address syntax is
// not validated.
func Load(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("subscriber list file not found", "path", path, "error", err)
		return nil
	}

	var list List
	if err := yaml.Unmarshal(data, &list); err != nil {
		slog.Warn("subscriber list file is not valid YAML", "path", path, "error", err)
		return nil
	}

	return list.Emails
}
