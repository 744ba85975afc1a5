package names

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/gameapi-e2e/internal/dependencies/mocks"
	"github.com/mcoot/gameapi-e2e/internal/dependencies/random"
)

func TestGeneratorPrefixesAndLengths(t *testing.T) {
	g := New(random.New(), Config{})

	device := g.DeviceName()
	assert.True(t, strings.HasPrefix(device, "Device"))
	assert.Len(t, device, len("Device")+10)

	nick := g.Nickname()
	assert.True(t, strings.HasPrefix(nick, "NewNickname"))
	assert.Len(t, nick, len("NewNickname")+5)

	tournament := g.TournamentID()
	assert.True(t, strings.HasPrefix(tournament, "Tournament"))
	assert.Len(t, tournament, len("Tournament")+5)
}

func TestGeneratorCustomConfig(t *testing.T) {
	g := New(random.New(), Config{Alphabet: "01", NicknameLength: 12})

	nick := g.Nickname()
	suffix := strings.TrimPrefix(nick, NicknamePrefix)
	assert.Len(t, suffix, 12)
	assert.Empty(t, strings.Trim(suffix, "01"))

	// unset lengths keep their defaults
	assert.Len(t, g.DeviceName(), len(DevicePrefix)+10)
}

func TestGeneratorUsesInjectedRandom(t *testing.T) {
	r := mocks.NewMockRandom()
	r.QueueString("ABC1234567", "XYZ12")
	g := New(r, Config{})

	assert.Equal(t, "DeviceABC1234567", g.DeviceName())
	assert.Equal(t, "NewNicknameXYZ12", g.Nickname())
	assert.Equal(t, "Tournamentaaaaa", g.TournamentID())
}

func TestGeneratorMultibyteAlphabet(t *testing.T) {
	g := New(random.New(), Config{Alphabet: "äöü"})

	suffix := g.Suffix("", 8)
	assert.True(t, utf8.ValidString(suffix), "invalid UTF-8: %q", suffix)
	assert.Equal(t, 8, utf8.RuneCountInString(suffix))

	nick := strings.TrimPrefix(g.Nickname(), NicknamePrefix)
	assert.Equal(t, 5, utf8.RuneCountInString(nick))
}

func TestMockRandomPadsWithFirstRune(t *testing.T) {
	g := New(mocks.NewMockRandom(), Config{Alphabet: "äöü"})
	assert.Equal(t, "Tournamentäääää", g.TournamentID())
}
