package pownode

import (
	"strconv"

	"github.com/probeum/pow-consensus/powblock"
	"github.com/probeum/pow-consensus/powsdk"
)

// configKeys are the on-chain setting names LoadConfig queries (§6.4).
var configKeys = []string{
	"seconds_between_blocks",
	"difficulty_adjustment_block_count",
	"difficulty_tuning_block_count",
	"initial_difficulty",
}

// LoadConfig hot-reloads cfg from the on-chain settings visible at blockID
// (§4.9). Each value is parsed permissively: a malformed or absent value
// simply leaves the corresponding field unchanged, and the call still
// succeeds even when the service returns no settings at all.
func LoadConfig(svc powsdk.Service, blockID powsdk.BlockId, cfg *powblock.Config) error {
	settings, err := svc.GetSettings(blockID, configKeys)
	if err != nil {
		return err
	}

	if v, ok := parseUint64(settings, "seconds_between_blocks"); ok {
		cfg.SecondsBetweenBlocks = v
	}
	if v, ok := parseUint64(settings, "difficulty_adjustment_block_count"); ok {
		cfg.DifficultyAdjustmentBlockCount = v
	}
	if v, ok := parseUint64(settings, "difficulty_tuning_block_count"); ok {
		cfg.DifficultyTuningBlockCount = v
	}
	if v, ok := parseUint32(settings, "initial_difficulty"); ok {
		cfg.InitialDifficulty = v
	}
	return nil
}

func parseUint64(settings map[string]string, key string) (uint64, bool) {
	raw, ok := settings[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseUint32(settings map[string]string, key string) (uint32, bool) {
	raw, ok := settings[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}
