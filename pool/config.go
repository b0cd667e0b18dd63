package pool

import (
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/farmpool/poold/difficulty"
	"github.com/farmpool/poold/shared"
)

func DefaultConfig() Config {
	return Config{
		Name:                          "poold",
		Description:                   "Proof of space farming pool",
		WelcomeMessage:                "Welcome to the pool!",
		MinDifficulty:                 10,
		DefaultDifficulty:             10,
		PartialTimeLimit:              25 * time.Second,
		PartialConfirmationDelay:      300 * time.Second,
		ConfirmationSecurityThreshold: 6,
		RelativeLockHeight:            100,
		NumberOfPartialsTarget:        300,
		TimeTarget:                    24 * time.Hour,
		AuthenticationTokenTimeout:    5,
		FarmerUpdateCooldown:          600 * time.Second,
		AnchorRetryDelay:              10 * time.Second,
		PeakInterval:                  30 * time.Second,
		RecentPointsCacheSize:         20000,
		ConfirmationQueueSize:         10000,
		PoolSubSlotIters:              shared.DefaultPoolSubSlotIters,
		DifficultyConstantFactor:      BigInt{new(big.Int).Set(shared.DefaultDifficultyConstantFactor)},
	}
}

//nolint:lll
type Config struct {
	Name           string  `long:"pool-name"       description:"Name shown to farmers"`
	Description    string  `long:"pool-description" description:"Description shown to farmers"`
	LogoURL        string  `long:"pool-logo-url"   description:"Logo shown to farmers"`
	Fee            float64 `long:"pool-fee"        description:"Pool fee as a fraction of rewards"`
	PoolURL        string  `long:"pool-url"        description:"Public URL of the pool"`
	WelcomeMessage string  `long:"welcome-message" description:"Message returned to newly registered farmers"`
	TargetAddress  string  `long:"default-target-address" description:"Address pool rewards are sent to (bech32m)"`

	MinDifficulty                 uint64        `long:"min-difficulty"                  description:"Lowest difficulty a farmer can have"`
	DefaultDifficulty             uint64        `long:"default-difficulty"              description:"Difficulty of farmers that do not suggest one"`
	PartialTimeLimit              time.Duration `long:"partial-time-limit"              description:"Longest accepted delay between a signage point and a partial answering it"`
	PartialConfirmationDelay      time.Duration `long:"partial-confirmation-delay"      description:"How long partials wait before they are checked again and credited"`
	ConfirmationSecurityThreshold uint32        `long:"confirmation-security-threshold" description:"Number of blocks after which a singleton spend is considered final"`
	RelativeLockHeight            uint32        `long:"relative-lock-height"            description:"Blocks a farmer must wait after announcing to leave the pool"`
	NumberOfPartialsTarget        int           `long:"number-of-partials-target"       description:"Partials a farmer should send per time target"`
	TimeTarget                    time.Duration `long:"time-target"                     description:"Window over which the partials target is measured"`
	AuthenticationTokenTimeout    uint8         `long:"authentication-token-timeout"    description:"Validity of authentication tokens in minutes"`
	FarmerUpdateCooldown          time.Duration `long:"farmer-update-cooldown"          description:"Time a farmer must wait between two updates"`
	AnchorRetryDelay              time.Duration `long:"anchor-retry-delay"              description:"Wait before looking up an unknown signage point again"`
	PeakInterval                  time.Duration `long:"peak-interval"                   description:"Interval of chain peak and wallet sync updates"`
	RecentPointsCacheSize         int           `long:"recent-points-cache-size"        description:"Number of recent proofs remembered to detect double submissions"`
	ConfirmationQueueSize         int           `long:"confirmation-queue-size"         description:"Partials waiting for confirmation before submissions block"`
	PoolSubSlotIters              uint64        `long:"pool-sub-slot-iters"             description:"Sub slot iterations partials are measured against"`
	DifficultyConstantFactor      BigInt        `long:"difficulty-constant-factor"      description:"Difficulty constant factor of the chain"`
	WalletFingerprint             uint32        `long:"wallet-fingerprint"              description:"Fingerprint of the pool wallet key"`
}

func (c Config) difficultyParams() difficulty.Params {
	return difficulty.Params{
		TargetCount:   c.NumberOfPartialsTarget,
		TimeTarget:    c.TimeTarget,
		MinDifficulty: c.MinDifficulty,
	}
}

// implement zap.ObjectMarshaler interface.
func (c Config) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("name", c.Name)
	enc.AddUint64("min-difficulty", c.MinDifficulty)
	enc.AddUint64("default-difficulty", c.DefaultDifficulty)
	enc.AddDuration("partial-time-limit", c.PartialTimeLimit)
	enc.AddDuration("partial-confirmation-delay", c.PartialConfirmationDelay)
	enc.AddUint32("confirmation-security-threshold", c.ConfirmationSecurityThreshold)
	enc.AddUint32("relative-lock-height", c.RelativeLockHeight)
	enc.AddInt("number-of-partials-target", c.NumberOfPartialsTarget)
	enc.AddDuration("time-target", c.TimeTarget)
	enc.AddString("target-address", c.TargetAddress)
	return nil
}

// BigInt is a flag holding an arbitrary precision integer.
type BigInt struct {
	*big.Int
}

// UnmarshalFlag implements flags.Unmarshaler.
func (b *BigInt) UnmarshalFlag(value string) error {
	v, ok := new(big.Int).SetString(value, 0)
	if !ok || v.Sign() <= 0 {
		return fmt.Errorf("invalid positive integer %q", value)
	}
	b.Int = v
	return nil
}

// MarshalFlag implements flags.Marshaler.
func (b BigInt) MarshalFlag() (string, error) {
	if b.Int == nil {
		return "", nil
	}
	return b.String(), nil
}
