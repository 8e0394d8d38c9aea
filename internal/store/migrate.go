package store

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/theirongolddev/fyfire/internal/model"
)

// upgrade rewrites a raw record from version n to n+1.
type upgrade func(raw map[string]any)

// upgrades[n] takes a record from version n to n+1.
var upgrades = map[int]upgrade{
	1: upgradeV1,
}

// upgradeV1 maps the single-balance layout onto the wrapper breakdown.
// Old totals land in the pension bucket as the best guess.
func upgradeV1(raw map[string]any) {
	nw, hasNetWorth := raw["currentNetWorth"]
	if _, hasISA := raw["isaBalance"]; !hasNetWorth || hasISA {
		return
	}

	raw["pensionBalance"] = nw
	if c, ok := raw["monthlyContributions"]; ok && c != nil {
		raw["monthlyPensionContributions"] = c
	} else {
		raw["monthlyPensionContributions"] = 0
	}
	delete(raw, "currentNetWorth")
	delete(raw, "monthlyContributions")
}

// migrate applies every upgrade from version up to model.SchemaVersion.
func migrate(version int, raw map[string]any) (map[string]any, int) {
	if version < 1 {
		version = 1
	}
	for ; version < model.SchemaVersion; version++ {
		if up, ok := upgrades[version]; ok {
			up(raw)
		}
	}
	return raw, version
}

// decodeInputs migrates a stored payload and merges it over the defaults.
func decodeInputs(version int, data []byte) (model.Inputs, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.DefaultInputs(), fmt.Errorf("decoding stored inputs: %w", err)
	}

	// Records from before the version column are sniffed by shape.
	if _, legacy := raw["currentNetWorth"]; legacy && version >= model.SchemaVersion {
		version = 1
	}
	raw, _ = migrate(version, raw)

	upgraded, err := json.Marshal(raw)
	if err != nil {
		return model.DefaultInputs(), fmt.Errorf("re-encoding stored inputs: %w", err)
	}

	in := model.DefaultInputs()
	if err := json.Unmarshal(upgraded, &in); err != nil {
		return model.DefaultInputs(), fmt.Errorf("decoding stored inputs: %w", err)
	}
	return in, nil
}
