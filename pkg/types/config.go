package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the Scholar profile fetcher.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the Scholar citations endpoint. Overridable for tests.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxPublications caps how many publication rows are kept (0 = all).
	MaxPublications int `json:"max_publications" yaml:"max_publications"`

	// Cookie is an optional session cookie sent with profile requests.
	// Scholar throttles anonymous scrapers aggressively; a browser
	// session cookie from .secrets/scholar-cookie raises the ceiling.
	Cookie string `json:"-" yaml:"-"`
}

const (
	// DefaultDupThreshold is the similarity score at or above which a
	// candidate is a definite duplicate of an existing record.
	DefaultDupThreshold = 0.85

	// DefaultReviewThreshold is the lower bound of the review band.
	// Scores in [review, dup) need operator adjudication.
	DefaultReviewThreshold = 0.65
)

// MergeConfig holds the duplicate-detection thresholds and normalizer
// settings. Thresholds are passed explicitly into the partition call
// rather than read from package state, so callers can re-tune them
// without a code change.
type MergeConfig struct {
	// DupThreshold classifies scores >= it as duplicates.
	DupThreshold float64 `json:"dup_threshold" yaml:"dup_threshold"`

	// ReviewThreshold classifies scores in [ReviewThreshold, DupThreshold)
	// as potential duplicates needing review.
	ReviewThreshold float64 `json:"review_threshold" yaml:"review_threshold"`

	// TitleQualifiers lists parenthetical qualifiers stripped during
	// title normalization (e.g. "extended abstract"). Empty uses the
	// built-in list.
	TitleQualifiers []string `json:"title_qualifiers,omitempty" yaml:"title_qualifiers,omitempty"`
}

// DefaultMergeConfig returns the documented thresholds (0.85 / 0.65).
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		DupThreshold:    DefaultDupThreshold,
		ReviewThreshold: DefaultReviewThreshold,
	}
}

// IndexConfig holds settings for the SQLite search index.
type IndexConfig struct {
	// IndexDir is the directory holding the index database.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// RenderConfig holds settings for the publications list renderer.
type RenderConfig struct {
	// OutputDir is the directory for rendered lists and exports.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// IncludeCitations controls whether citation counts appear in the
	// rendered list.
	IncludeCitations bool `json:"include_citations" yaml:"include_citations"`
}

// Config groups all stage configurations.
type Config struct {
	// StorePath is the canonical location of the publication database.
	StorePath string       `json:"store_path" yaml:"store_path"`
	Fetch     FetchConfig  `json:"fetch" yaml:"fetch"`
	Merge     MergeConfig  `json:"merge" yaml:"merge"`
	Index     IndexConfig  `json:"index" yaml:"index"`
	Render    RenderConfig `json:"render" yaml:"render"`
}
