package engine

import (
	"fmt"
	"strings"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/apperrors"
)

// MatchPolicy determines which open lots a sale closes against.
type MatchPolicy string

const (
	// FIFO consumes lots oldest-first; a partially consumed lot keeps its
	// place at the front of the queue.
	FIFO MatchPolicy = "FIFO"

	// LIFO consumes lots newest-first; a partially consumed lot keeps its
	// place at the back of the queue.
	LIFO MatchPolicy = "LIFO"

	// SpecID consumes only the lots identified on the sell transaction.
	// Unidentified lots are never touched.
	SpecID MatchPolicy = "SPEC_ID"

	// AverageCost collapses all open lots into a single running-average
	// position; every sale closes at the blended cost per share.
	AverageCost MatchPolicy = "AVERAGE_COST"
)

// OversellMode controls what happens when a sale requests more shares than
// the ledger holds open.
type OversellMode string

const (
	// OversellStrict fails the close with ErrInsufficientShares.
	OversellStrict OversellMode = "STRICT"

	// OversellLenient closes only what is available and reports the shortfall
	// through the returned closed quantity.
	OversellLenient OversellMode = "LENIENT"
)

// ParseMatchPolicy converts a configuration string into a MatchPolicy.
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch MatchPolicy(strings.ToUpper(strings.TrimSpace(s))) {
	case FIFO:
		return FIFO, nil
	case LIFO:
		return LIFO, nil
	case SpecID:
		return SpecID, nil
	case AverageCost:
		return AverageCost, nil
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownLotPolicy, s)
}

// ParseOversellMode converts a configuration string into an OversellMode.
// The empty string defaults to strict.
func ParseOversellMode(s string) (OversellMode, error) {
	switch OversellMode(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return OversellStrict, nil
	case OversellStrict:
		return OversellStrict, nil
	case OversellLenient:
		return OversellLenient, nil
	}
	return "", fmt.Errorf("unknown oversell mode: %q", s)
}
