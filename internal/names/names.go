// Package names builds unique identifiers for backend fixtures so that
// concurrent suite runs against a shared backend do not collide.
package names

import (
	"github.com/mcoot/gameapi-e2e/internal/dependencies/random"
)

// Prefixes used for generated identifiers
const (
	DevicePrefix     = "Device"
	NicknamePrefix   = "NewNickname"
	TournamentPrefix = "Tournament"
)

// Config controls the random suffix appended to each prefix
type Config struct {
	Alphabet         string
	DeviceLength     int
	NicknameLength   int
	TournamentLength int
}

// DefaultConfig returns the suffix lengths the suite has always used
func DefaultConfig() Config {
	return Config{
		Alphabet:         random.Alphanumeric,
		DeviceLength:     10,
		NicknameLength:   5,
		TournamentLength: 5,
	}
}

// Generator produces prefixed random identifiers
type Generator struct {
	rand random.Random
	cfg  Config
}

// New creates a Generator. Zero fields in cfg fall back to DefaultConfig.
func New(r random.Random, cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.Alphabet == "" {
		cfg.Alphabet = def.Alphabet
	}
	if cfg.DeviceLength <= 0 {
		cfg.DeviceLength = def.DeviceLength
	}
	if cfg.NicknameLength <= 0 {
		cfg.NicknameLength = def.NicknameLength
	}
	if cfg.TournamentLength <= 0 {
		cfg.TournamentLength = def.TournamentLength
	}
	return &Generator{rand: r, cfg: cfg}
}

// Suffix returns prefix followed by n random characters
func (g *Generator) Suffix(prefix string, n int) string {
	return prefix + g.rand.String(n, g.cfg.Alphabet)
}

// DeviceName returns a unique device name for openSession
func (g *Generator) DeviceName() string {
	return g.Suffix(DevicePrefix, g.cfg.DeviceLength)
}

// Nickname returns a unique nickname for setNick
func (g *Generator) Nickname() string {
	return g.Suffix(NicknamePrefix, g.cfg.NicknameLength)
}

// TournamentID returns a unique tournament id for startTournament
func (g *Generator) TournamentID() string {
	return g.Suffix(TournamentPrefix, g.cfg.TournamentLength)
}
