package dw

import "regexp"

// LineEvent is the structured result of classifying one line of duplicacy
// output. A line without the timestamp prefix yields the zero event.
type LineEvent struct {
	HasTimestamp    bool
	StorageSet      string
	RepositorySet   string
	IsWarning       bool
	IsError         bool
	ChunkDeleted    bool
	SnapshotDeleted bool
	StatEntry       string
}

// statKeywords is the allow-list for the generic INFO statistics rule.
var statKeywords = map[string]bool{
	"BACKUP_END":     true,
	"BACKUP_STATS":   true,
	"SNAPSHOT_COPY":  true,
	"SNAPSHOT_NONE":  true,
	"SNAPSHOT_CHECK": true,
	"RESTORE_END":    true,
	"RESTORE_STATS":  true,
}

// Precompiled once; classification runs per output line.
var (
	//                              Y Y Y Y- M M- D D    H H: m m: s s . S S S
	timestampRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2}\.\d{3}\b`)

	storageSetRe    = regexp.MustCompile(`\bSTORAGE_SET\s+.*set to\s+(.*)$`)
	repositorySetRe = regexp.MustCompile(`\bREPOSITORY_SET\s+.*set to\s+(.*)$`)
	warnRe          = regexp.MustCompile(`\bWARN\b`)
	errorRe         = regexp.MustCompile(`\b(ERROR|FATAL|ASSERT)\b`)
	chunkDeleteRe   = regexp.MustCompile(`\bINFO\s+CHUNK_DELETE\b`)
	snapDeleteRe    = regexp.MustCompile(`\bINFO\s+SNAPSHOT_DELETE\b.*\bremoved\b`)
	statRe          = regexp.MustCompile(`\bINFO\s+(\w+)\s+(\w.+\w)$`)

	// Suppression predicates for the generic rule.
	checkCleanRe = regexp.MustCompile(`All chunks referenced by snapshot`)
	copyStatsRe  = regexp.MustCompile(`Chunks to copy:|Copied \d+ new chunks`)
)

// rule is one entry of the classification table: a pattern, an optional
// operation gate, an optional suppression predicate over the captured
// groups, and the field extraction. Rules are non-exclusive; several may
// match the same line.
type rule struct {
	re       *regexp.Regexp
	when     func(operation string) bool
	suppress func(groups []string) bool
	apply    func(ev *LineEvent, groups []string)
}

func pruneOnly(operation string) bool { return operation == "prune" }

// classifyRules is evaluated in order for every timestamped line. Order
// matters only for the CHUNK_DELETE/SNAPSHOT_DELETE pair: a chunk deletion
// settles the line before the snapshot rule is considered.
var classifyRules = []rule{
	{
		re:    storageSetRe,
		apply: func(ev *LineEvent, g []string) { ev.StorageSet = g[1] },
	},
	{
		re:    repositorySetRe,
		apply: func(ev *LineEvent, g []string) { ev.RepositorySet = g[1] },
	},
	{
		re:    warnRe,
		apply: func(ev *LineEvent, _ []string) { ev.IsWarning = true },
	},
	{
		re:    errorRe,
		apply: func(ev *LineEvent, _ []string) { ev.IsError = true },
	},
	{
		re:    chunkDeleteRe,
		when:  pruneOnly,
		apply: func(ev *LineEvent, _ []string) { ev.ChunkDeleted = true },
	},
	{
		re:   snapDeleteRe,
		when: pruneOnly,
		apply: func(ev *LineEvent, _ []string) {
			if !ev.ChunkDeleted {
				ev.SnapshotDeleted = true
			}
		},
	},
	{
		re: statRe,
		suppress: func(g []string) bool {
			keyword, payload := g[1], g[2]
			if !statKeywords[keyword] {
				return true
			}
			// A clean check reports every snapshot individually; that is
			// nothing to notify about.
			if keyword == "SNAPSHOT_CHECK" && checkCleanRe.MatchString(payload) {
				return true
			}
			// Only the copy lines that carry chunk counts are statistics.
			if keyword == "SNAPSHOT_COPY" && !copyStatsRe.MatchString(payload) {
				return true
			}
			return false
		},
		apply: func(ev *LineEvent, g []string) { ev.StatEntry = g[2] },
	},
}

// Classifier turns duplicacy log lines into LineEvents using the ordered
// rule table. Classification is pure: the same line always yields the same
// event for a given operation.
type Classifier struct {
	operation string
}

// NewClassifier returns a classifier for the given supervised operation.
func NewClassifier(operation string) *Classifier {
	return &Classifier{operation: operation}
}

// Classify extracts a LineEvent from one line of output. Lines without the
// fixed timestamp prefix (progress output, check -tabular tables) return
// the zero event without further matching.
func (c *Classifier) Classify(line string) LineEvent {
	var ev LineEvent
	if !timestampRe.MatchString(line) {
		return ev
	}
	ev.HasTimestamp = true

	for _, r := range classifyRules {
		if r.when != nil && !r.when(c.operation) {
			continue
		}
		groups := r.re.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		if r.suppress != nil && r.suppress(groups) {
			continue
		}
		r.apply(&ev, groups)
	}
	return ev
}
