// Package constants provides shared constants used throughout the councilvotes codebase.
// This includes file permissions, classification limits, and the fixed names of
// emitted documents that must stay consistent between the pipeline and the site.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Classification limits
const (
	// MaxTopicsPerItem is the maximum number of topics attached to one agenda item
	MaxTopicsPerItem = 3

	// FallbackTopic is assigned when no topic keyword matches
	FallbackTopic = "General"

	// TopicTextPrefix is how many characters of the full text feed topic matching
	TopicTextPrefix = 500

	// CloseDissentMargin is the largest aye/nay margin for which a losing vote is a close dissent
	CloseDissentMargin = 2

	// CuratedAlignmentPairs is how many pairs the most/least aligned lists expose
	CuratedAlignmentPairs = 3
)

// Output defaults
const (
	// DefaultTruncateLength is the summary-list cut-off for long descriptive text
	DefaultTruncateLength = 200

	// DefaultInputGlob selects the source files inside the input directory
	DefaultInputGlob = "*.csv"

	// JSONIndent is the indentation used for every emitted document
	JSONIndent = "  "
)

// Document names. Aggregate documents live at the output root; detail
// documents live in a per-kind subdirectory.
const (
	StatsDocument       = "stats.json"
	CouncilDocument     = "council.json"
	MeetingsDocument    = "meetings.json"
	VotesDocument       = "votes.json"
	AlignmentDocument   = "alignment.json"
	SearchIndexDocument = "search-index.json"
	SummaryDocument     = "summary.md"

	// ManifestDocument lists the documents of the last published run
	ManifestDocument = ".councilvotes-manifest.json"

	MemberDir  = "council"
	MeetingDir = "meetings"
	VoteDir    = "votes"
)

// Configuration
const (
	// EnvPrefix prefixes every environment variable read by the CLI
	EnvPrefix = "COUNCILVOTES"

	// ConfigName is the config file name searched in $HOME and the working directory
	ConfigName = ".councilvotes"
)

// Format constants
const (
	// DateLayout is the layout of every date field in the input and output
	DateLayout = "2006-01-02"
)
