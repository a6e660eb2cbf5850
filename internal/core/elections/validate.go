package elections

import (
	"fmt"
	"strings"
)

// ballotSeqWidth is the zero-padded width of the per-year sequence in a
// ballot number: year 2026, sequence 7 -> 2026000007.
const ballotSeqWidth = 1_000_000

// NormalizeSelections canonicalizes a submission's position entries:
// position codes are trimmed and uppercased, candidate IDs are trimmed,
// and candidate IDs are de-duplicated globally across all entries (the
// first entry that names a candidate keeps it). Entries left with no
// candidates are dropped.
// Returns ErrInvalidInput if no candidates survive.
func NormalizeSelections(votes []PositionSelection) ([]PositionSelection, error) {
	seen := make(map[string]struct{})
	normalized := make([]PositionSelection, 0, len(votes))

	for _, entry := range votes {
		code := strings.ToUpper(strings.TrimSpace(entry.PositionID))
		if code == "" {
			return nil, fmt.Errorf("%w: empty position code", ErrInvalidInput)
		}

		ids := make([]string, 0, len(entry.CandidateIDs))
		for _, id := range entry.CandidateIDs {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}

		if len(ids) == 0 {
			continue
		}
		normalized = append(normalized, PositionSelection{PositionID: code, CandidateIDs: ids})
	}

	if len(seen) == 0 {
		return nil, fmt.Errorf("%w: no candidates selected", ErrInvalidInput)
	}
	return normalized, nil
}

// FlattenCandidateIDs returns every candidate ID across all entries.
// Call after NormalizeSelections so the result is de-duplicated.
func FlattenCandidateIDs(votes []PositionSelection) []string {
	var ids []string
	for _, entry := range votes {
		ids = append(ids, entry.CandidateIDs...)
	}
	return ids
}

// ValidateSeatLimits checks every entry against the position registry.
// seatLimits maps normalized position code -> seat limit.
func ValidateSeatLimits(votes []PositionSelection, seatLimits map[string]int) error {
	for _, entry := range votes {
		limit, ok := seatLimits[entry.PositionID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPosition, entry.PositionID)
		}
		if len(entry.CandidateIDs) > limit {
			return fmt.Errorf("%w: %s allows %d, got %d",
				ErrTooManySelections, entry.PositionID, limit, len(entry.CandidateIDs))
		}
	}
	return nil
}

// ValidateCandidates checks that every submitted candidate is registered
// for the election year and runs under the submitted position.
// registered maps candidate ID -> normalized position code.
func ValidateCandidates(votes []PositionSelection, registered map[string]string) error {
	for _, entry := range votes {
		for _, id := range entry.CandidateIDs {
			positionID, ok := registered[id]
			if !ok {
				return fmt.Errorf("%w: %s", ErrInvalidCandidate, id)
			}
			if positionID != entry.PositionID {
				return fmt.Errorf("%w: %s is registered under %s, submitted under %s",
					ErrCandidateMismatch, id, positionID, entry.PositionID)
			}
		}
	}
	return nil
}

// FormatBallotNo builds the externally visible ballot number: the
// decimal concatenation of the year and the sequence zero-padded to six
// digits, as a single integer.
func FormatBallotNo(year int, seq int) int64 {
	return int64(year)*int64(ballotSeqWidth) + int64(seq)
}
