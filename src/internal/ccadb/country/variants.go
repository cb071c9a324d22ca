// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package country

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

// shortNamesYAML carries the short-name and legacy variants table. Keeping
// it as data instead of Go literals lets new spellings land without touching
// resolver logic.
//
//go:embed short_names.yaml
var shortNamesYAML []byte

// parseShortNames decodes the embedded variants table into a code -> aliases map.
func parseShortNames() (map[string][]string, error) {
	var byCode map[string][]string
	if err := yaml.Unmarshal(shortNamesYAML, &byCode); err != nil {
		return nil, err
	}
	return byCode, nil
}
