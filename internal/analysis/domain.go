// Package analysis implements the repository size analysis core: directory
// traversal over a remote repository tree, per-file classification, and
// accumulation of character/line totals against a context-window budget.
package analysis

// EntryType distinguishes files from directories in a tree listing.
type EntryType string

// Entry types returned by the contents API.
const (
	EntryFile EntryType = "file"
	EntryDir  EntryType = "dir"
)

// TreeEntry is one node of the remote repository tree, as returned by a
// directory listing. Size is meaningful only for files.
type TreeEntry struct {
	Name string
	Path string // slash-separated, relative to the repo root
	Type EntryType
	Size int64
}

// Usage is the accumulated result of one traversal frame. Child results are
// merged into their parent bottom-up; the top-level Usage is what the caller
// sees.
type Usage struct {
	TotalCharacters int
	TotalLines      int
	StoppedEarly    bool
}

// merge folds a child frame's totals into this frame. StoppedEarly is
// propagated separately because it also terminates the sibling loop.
func (u *Usage) merge(child Usage) {
	u.TotalCharacters += child.TotalCharacters
	u.TotalLines += child.TotalLines
}

// TraversalState is the file counter shared by reference across every
// recursive frame of a single run. It is monotonically non-decreasing and
// never reset mid-run; each top-level analysis owns exactly one instance.
type TraversalState struct {
	FilesSeen int
}

// RepoMetadata is the repository annotation attached to a report. Fetched
// once per run, before traversal begins.
type RepoMetadata struct {
	Owner       string
	Name        string
	FullName    string
	HTMLURL     string
	Description string
	Language    string
	Stars       int
	Forks       int
}

// MeetsBudget is the final classification rule, owned by the caller rather
// than the aggregator: a repository fits iff the traversal completed AND the
// character total is within budget. A run that stopped early never fits —
// the measurement is partial and therefore untrustworthy.
func MeetsBudget(u Usage, budget int) bool {
	return !u.StoppedEarly && u.TotalCharacters <= budget
}
