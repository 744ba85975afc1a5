package redis

import (
	"fmt"

	"github.com/mcoot/gameapi-e2e/internal/model"
)

// Key prefix for all ledger data
const keyPrefix = "gameapi"

// fixtureKey returns the Redis key for one fixture
func fixtureKey(kind model.FixtureKind, id string) string {
	return fmt.Sprintf("%s:fixture:%s:%s", keyPrefix, kind, id)
}

// fixturesIndexKey returns the SET of every fixture key
func fixturesIndexKey() string {
	return fmt.Sprintf("%s:idx:fixtures", keyPrefix)
}

// runIndexKey returns the SET of fixture keys recorded by one run
func runIndexKey(runID string) string {
	return fmt.Sprintf("%s:idx:run:%s", keyPrefix, runID)
}
