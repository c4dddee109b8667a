// Package detector implements the duplicate-group detection pipeline:
// eligibility filtering, fingerprint-gated candidate generation, parallel
// pairwise scoring, and deterministic single-threaded group assembly and
// ranking (spec §4.7).
package detector

import (
	"regexp"
	"runtime"
	"sort"
	"sync"

	"github.com/dupscan/dupscan/internal/scorer"
	"github.com/dupscan/dupscan/pkg/method"
)

// Options is the core library's public options block (spec §6).
type Options struct {
	MinLines             int
	MaxLines             int
	MinTokens            int
	SizePenalty          bool
	IncludeMethodPattern *regexp.Regexp
	Scorer               scorer.Options
	Jobs                 int // worker-pool width for parallel scoring; 0 means runtime.NumCPU().

	// Stats, if non-nil, is populated with this run's pipeline counts
	// (spec §5's observability hooks). Callers that don't care about
	// counters can leave it nil at no cost to the detection pipeline
	// itself.
	Stats *Stats
}

// Stats carries the per-stage counts of one Detect call, for hosts that
// want to surface them (e.g. as Prometheus counters) without the core
// pipeline depending on any particular metrics backend.
type Stats struct {
	MethodsEligible int
	PairsConsidered int
	PairsAdmitted   int
	PairsScored     int
}

// DefaultOptions mirrors spec §6's documented defaults.
func DefaultOptions() Options {
	return Options{
		MinLines:    5,
		MaxLines:    1 << 30,
		MinTokens:   0,
		SizePenalty: true,
		Scorer:      scorer.DefaultOptions(),
	}
}

// Entry is one duplicate found against a group's representative.
type Entry struct {
	Method     *method.Record
	Similarity float64
	Impact     float64
}

// Group is a representative method plus its ranked duplicate entries.
type Group struct {
	Representative *method.Record
	Entries        []Entry
	TotalImpact    float64
}

// Similarity exposes the scorer directly, per spec §6's
// `similarity(methodA, methodB, options) → float`.
func Similarity(a, b *method.Record, opts Options) float64 {
	return scorer.Similarity(a, b, opts.Scorer)
}

// Detect runs the full pipeline over files and returns ranked duplicate
// groups for pairs at or above threshold.
func Detect(files []*method.File, opts Options, threshold float64) []Group {
	eligible := eligibleMethods(files, opts)

	if opts.Stats != nil {
		opts.Stats.MethodsEligible = len(eligible)
	}

	if len(eligible) < 2 {
		return nil
	}

	pairs := candidatePairs(eligible, threshold, opts.Stats)
	scored := scorePairs(eligible, pairs, opts)

	if opts.Stats != nil {
		opts.Stats.PairsScored = len(pairs)
	}

	return assembleGroups(eligible, scored, threshold)
}

func eligibleMethods(files []*method.File, opts Options) []*method.Record {
	var out []*method.Record

	for _, f := range files {
		for _, m := range f.Methods {
			if m.LineCount < opts.MinLines || m.LineCount > opts.MaxLines {
				continue
			}

			if m.TokenCount < opts.MinTokens {
				continue
			}

			if opts.IncludeMethodPattern != nil && !opts.IncludeMethodPattern.MatchString(m.FullName) {
				continue
			}

			out = append(out, m)
		}
	}

	return out
}

// pairIdx is an unordered candidate pair by index into the eligible slice.
type pairIdx struct {
	i, j int
}

// candidatePairs applies the cheap fingerprint admission predicate at a
// relaxed threshold (half of τ, spec §4.7 step 2) to cut down the O(N²)
// pair space before the expensive APTED-backed scoring pass.
func candidatePairs(eligible []*method.Record, threshold float64, stats *Stats) []pairIdx {
	tau := 0.5 * threshold

	var out []pairIdx

	considered := 0

	for i := 0; i < len(eligible); i++ {
		for j := i + 1; j < len(eligible); j++ {
			considered++

			if eligible[i].Fingerprint.MightBeSimilar(eligible[j].Fingerprint, tau) {
				out = append(out, pairIdx{i, j})
			}
		}
	}

	if stats != nil {
		stats.PairsConsidered = considered
		stats.PairsAdmitted = len(out)
	}

	return out
}

type scoredPair struct {
	i, j       int
	similarity float64
}

// scorePairs runs the expensive similarity computation for every
// candidate pair across a bounded worker pool, following the same
// channel-of-work-items + WaitGroup + mutex-guarded-append shape used
// throughout this codebase's other parallel scans.
func scorePairs(eligible []*method.Record, pairs []pairIdx, opts Options) []scoredPair {
	if len(pairs) == 0 {
		return nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	if jobs > len(pairs) {
		jobs = len(pairs)
	}

	work := make(chan pairIdx)

	var (
		mu  sync.Mutex
		out []scoredPair
		wg  sync.WaitGroup
	)

	for w := 0; w < jobs; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for p := range work {
				sim := scorer.Similarity(eligible[p.i], eligible[p.j], opts.Scorer)

				mu.Lock()
				out = append(out, scoredPair{i: p.i, j: p.j, similarity: sim})
				mu.Unlock()
			}
		}()
	}

	for _, p := range pairs {
		work <- p
	}

	close(work)
	wg.Wait()

	return out
}

// assembleGroups performs spec §4.7 step 4-5: a deterministic,
// single-threaded pass that groups surviving pairs by representative
// index and ranks the result. Single-threaded by construction — there is
// no concurrency here to make deterministic, the ranking pass simply
// never touches a goroutine.
func assembleGroups(eligible []*method.Record, scored []scoredPair, threshold float64) []Group {
	byRep := make(map[int][]scoredPair)

	var reps []int

	seenRep := make(map[int]bool)

	for _, sp := range scored {
		if sp.similarity < threshold {
			continue
		}

		if !seenRep[sp.i] {
			seenRep[sp.i] = true
			reps = append(reps, sp.i)
		}

		byRep[sp.i] = append(byRep[sp.i], sp)
	}

	sort.Ints(reps)

	processed := make(map[int]bool)

	var groups []Group

	for _, i := range reps {
		if processed[i] {
			continue
		}

		candidates := byRep[i]
		sort.Slice(candidates, func(a, b int) bool { return candidates[a].j < candidates[b].j })

		var entries []Entry

		var totalImpact float64

		for _, sp := range candidates {
			if processed[sp.j] {
				continue
			}

			a, b := eligible[i], eligible[sp.j]
			impact := float64(a.LineCount+b.LineCount) * sp.similarity

			entries = append(entries, Entry{
				Method:     b,
				Similarity: sp.similarity,
				Impact:     impact,
			})

			totalImpact += impact

			processed[sp.j] = true
		}

		if len(entries) == 0 {
			continue
		}

		processed[i] = true

		sort.SliceStable(entries, func(a, b int) bool { return entries[a].Impact > entries[b].Impact })

		groups = append(groups, Group{
			Representative: eligible[i],
			Entries:        entries,
			TotalImpact:    totalImpact,
		})
	}

	sort.SliceStable(groups, func(a, b int) bool { return groups[a].TotalImpact > groups[b].TotalImpact })

	return groups
}
