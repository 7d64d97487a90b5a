package powblock

// Config holds the consensus-relevant on-chain settings (§3's PowConfig).
// It's defined here (rather than in pownode, which owns config hot-reload)
// because the difficulty controller needs it and pownode already depends on
// powblock — keeping it here avoids an import cycle.
type Config struct {
	InitialDifficulty             uint32
	SecondsBetweenBlocks          uint64
	DifficultyAdjustmentBlockCount uint64
	DifficultyTuningBlockCount     uint64
}

// DefaultConfig returns the documented defaults (§3).
func DefaultConfig() Config {
	return Config{
		InitialDifficulty:             22,
		SecondsBetweenBlocks:          60,
		DifficultyAdjustmentBlockCount: 10,
		DifficultyTuningBlockCount:     100,
	}
}
