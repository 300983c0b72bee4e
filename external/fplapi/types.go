package fplapi

// RawRecord is one loosely-typed record from the upstream API. The provider
// mixes native numbers, booleans, empty strings and string-encoded values
// inside the same field across records, so typing is deferred to the
// normalization layer and the verbatim record travels with every row.
type RawRecord map[string]any

// BootstrapDocument is the bulk snapshot: all scheduling rounds, clubs and
// players as of one fetch. At most one event is flagged currently active and
// at most one is flagged next.
type BootstrapDocument struct {
	Events   []RawRecord `json:"events"`
	Teams    []RawRecord `json:"teams"`
	Elements []RawRecord `json:"elements"`
}

// ElementSummary is the per-player detail document: upcoming fixtures and
// the completed-fixture history for the current season, plus prior-season
// totals.
type ElementSummary struct {
	Fixtures    []RawRecord `json:"fixtures"`
	History     []RawRecord `json:"history"`
	HistoryPast []RawRecord `json:"history_past"`
}

// DetailResult is the outcome for one player in a fan-out batch: either the
// decoded document or the terminal failure for that player, never both.
type DetailResult struct {
	PlayerID int64
	Doc      *ElementSummary
	Err      error
}

func (r DetailResult) Failed() bool {
	return r.Err != nil
}
