package wordlist

import (
	"fmt"
	"sort"
	"unicode"

	"github.com/charmbracelet/log"
)

// ExclusionRule decides how the title-case heuristic combines the two sides of a pair
type ExclusionRule string

const (
	// ExcludeBoth drops a pair only when source and target are both title-cased
	ExcludeBoth ExclusionRule = "both"
	// ExcludeEither drops a pair when either side is title-cased
	ExcludeEither ExclusionRule = "either"
)

// ParseExclusionRule validates a rule name from flags or config
func ParseExclusionRule(s string) (ExclusionRule, error) {
	switch ExclusionRule(s) {
	case ExcludeBoth, "":
		return ExcludeBoth, nil
	case ExcludeEither:
		return ExcludeEither, nil
	default:
		return "", fmt.Errorf("unknown exclusion rule: %s (want both or either)", s)
	}
}

// Excludes reports whether the pair looks like a proper noun under this rule
func (r ExclusionRule) Excludes(p WordPair) bool {
	if r == ExcludeEither {
		return IsTitle(p.Source) || IsTitle(p.Target)
	}
	return IsTitle(p.Source) && IsTitle(p.Target)
}

// IsTitle reports whether s is title-cased: every run of cased letters starts
// with an upper-case letter followed only by lower-case ones, and there is at
// least one cased letter. "House" and "São Paulo" are title-cased, "to eat",
// "USA" and "" are not.
func IsTitle(s string) bool {
	cased := false
	previousCased := false

	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if previousCased {
				return false
			}
			previousCased = true
			cased = true
		case unicode.IsLower(r):
			if !previousCased {
				return false
			}
			previousCased = true
			cased = true
		default:
			previousCased = false
		}
	}

	return cased
}

// Partitioned is the outcome of splitting raw pairs into the three buckets
type Partitioned struct {
	Eligible   []WordPair
	Excluded   []WordPair
	Incomplete []WordPair
}

// Partition splits pairs in input order. Excluded pairs are title-cased under
// rule; incomplete pairs have an empty side; everything else is eligible.
func Partition(pairs []WordPair, rule ExclusionRule) Partitioned {
	var result Partitioned
	for _, pair := range pairs {
		switch {
		case rule.Excludes(pair):
			result.Excluded = append(result.Excluded, pair)
		case pair.Complete():
			result.Eligible = append(result.Eligible, pair)
		default:
			result.Incomplete = append(result.Incomplete, pair)
		}
	}
	return result
}

// Merge appends the eligible pairs to the master list, drops exact duplicates
// and sorts the result ascending by source. The returned added slice holds the
// pairs that were not on the master list before.
func Merge(master, eligible []WordPair) (merged, added []WordPair) {
	seen := make(map[WordPair]bool, len(master)+len(eligible))

	for _, pair := range master {
		if seen[pair] {
			continue
		}
		seen[pair] = true
		merged = append(merged, pair)
	}

	for _, pair := range eligible {
		if seen[pair] {
			continue
		}
		seen[pair] = true
		merged = append(merged, pair)
		added = append(added, pair)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Source < merged[j].Source
	})

	return merged, added
}

// Filter runs the whole word-list step: read, partition, merge, rewrite
type Filter struct {
	Rule       ExclusionRule
	SkipHeader bool
}

// Result summarizes one filter run
type Result struct {
	Total    int
	Eligible []WordPair
	Excluded []WordPair
	Added    []WordPair
	Master   []WordPair
}

// Run filters inputFile into masterFile
func (f *Filter) Run(inputFile, masterFile string) (*Result, error) {
	pairs, err := ReadPairs(inputFile, f.SkipHeader)
	if err != nil {
		return nil, err
	}

	parts := Partition(pairs, f.Rule)
	for _, pair := range parts.Excluded {
		fmt.Printf("Excluded: %s\n", pair)
	}
	if len(parts.Incomplete) > 0 {
		log.Debug("skipped incomplete pairs", "count", len(parts.Incomplete))
	}

	master, err := ReadMaster(masterFile)
	if err != nil {
		return nil, err
	}

	merged, added := Merge(master, parts.Eligible)
	if err := WriteMaster(masterFile, merged); err != nil {
		return nil, err
	}

	return &Result{
		Total:    len(pairs),
		Eligible: parts.Eligible,
		Excluded: parts.Excluded,
		Added:    added,
		Master:   merged,
	}, nil
}
