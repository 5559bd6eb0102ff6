package types

import "errors"

// ErrMissingArtifact is returned when the artifact targeted for verification
// does not exist. Callers typically respond by regenerating.
var ErrMissingArtifact = errors.New("artifact not found")

// CheckOutcome reports whether one checklist marker was found.
type CheckOutcome struct {
	Label   string `json:"label"`
	Marker  string `json:"marker"`
	Present bool   `json:"present"`
}

// TokenCount is the number of occurrences of one structural token.
type TokenCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// Stats holds descriptive content statistics. They carry no pass/fail meaning.
type Stats struct {
	Lines  int          `json:"lines"`
	Bytes  int          `json:"bytes"`
	Chars  int          `json:"chars"`
	Tokens []TokenCount `json:"tokens"`
}

// Count returns the occurrence count recorded for token, or zero.
func (s Stats) Count(token string) int {
	for _, tc := range s.Tokens {
		if tc.Token == token {
			return tc.Count
		}
	}
	return 0
}

// VerificationResult is produced fresh by every verification and never
// persisted. Outcomes follow checklist order.
type VerificationResult struct {
	Outcomes []CheckOutcome `json:"outcomes"`
	Passed   bool           `json:"passed"`
	Stats    Stats          `json:"stats"`
}

// Missing returns the labels of markers that were not found.
func (r VerificationResult) Missing() []string {
	var missing []string
	for _, o := range r.Outcomes {
		if !o.Present {
			missing = append(missing, o.Label)
		}
	}
	return missing
}

// ByLabel returns the presence flag for each label.
func (r VerificationResult) ByLabel() map[string]bool {
	m := make(map[string]bool, len(r.Outcomes))
	for _, o := range r.Outcomes {
		m[o.Label] = o.Present
	}
	return m
}
