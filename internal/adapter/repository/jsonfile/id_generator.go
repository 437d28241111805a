package jsonfile

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates account IDs. ULIDs sort by creation time, so IDs
// in the data file read in the order accounts were opened.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a new ULID string.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
