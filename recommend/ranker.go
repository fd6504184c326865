// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package recommend

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/tomtom215/wayfinder/recommend/profile"
)

// Discard reason labels, stable for metrics and clients.
const (
	// DiscardReasonInvalid marks candidates that failed validation.
	DiscardReasonInvalid = "invalid"

	// DiscardReasonClosed marks candidates filtered for being closed now.
	DiscardReasonClosed = "closed"

	// DiscardReasonOverflow marks candidates beyond the batch size cap.
	DiscardReasonOverflow = "overflow"
)

// InputsFunc supplies the external signals for one candidate during batch
// ranking. A nil InputsFunc means no external signals for any candidate.
// Implementations must be safe for concurrent calls.
type InputsFunc func(Candidate) ScoreInputs

// Rank scores a candidate batch concurrently and returns candidates
// ordered by ranking score descending, candidate ID ascending on exact
// ties. The ordering is deterministic: two runs over the same inputs
// produce the same result regardless of worker scheduling.
//
// Invalid candidates are excluded and reported in the result, never
// failing the batch. Rank returns an error only when ctx is cancelled
// before scoring completes.
func (s *Scorer) Rank(ctx context.Context, cands []Candidate, prof profile.PreferenceProfile, rctx Context, inputsFor InputsFunc) (RankResult, error) {
	var res RankResult

	// Cap the batch; surplus tail candidates are reported, not dropped
	// silently.
	if maxC := s.cfg.Ranking.MaxCandidates; len(cands) > maxC {
		for _, c := range cands[maxC:] {
			res.Discarded = append(res.Discarded, DiscardedCandidate{
				Candidate: c,
				Err:       invalidCandidate(c.ID, "batch", "candidate beyond batch size cap"),
				Reason:    DiscardReasonOverflow,
			})
		}
		cands = cands[:maxC]
	}

	type outcome struct {
		breakdown ScoreBreakdown
		err       error
	}
	outcomes := make([]outcome, len(cands))

	workers := s.cfg.Ranking.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(cands) {
		workers = len(cands)
	}

	// Work is distributed by index so every outcome lands in a fixed
	// slot; scheduling order cannot influence the result.
	next := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				cand := cands[i]
				var in ScoreInputs
				if inputsFor != nil {
					in = inputsFor(cand)
				}
				b, err := s.ScoreWithInputs(cand, prof, rctx, in)
				outcomes[i] = outcome{breakdown: b, err: err}
			}
		}()
	}

feed:
	for i := range cands {
		select {
		case next <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(next)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return RankResult{}, err
	}

	for i, out := range outcomes {
		cand := cands[i]
		if out.err != nil {
			res.Discarded = append(res.Discarded, DiscardedCandidate{
				Candidate: cand,
				Err:       out.err,
				Reason:    DiscardReasonInvalid,
			})
			continue
		}
		if s.cfg.Ranking.ExcludeClosed && cand.OpenNow != nil && !*cand.OpenNow {
			// Unknown open state is never treated as closed.
			res.Discarded = append(res.Discarded, DiscardedCandidate{
				Candidate: cand,
				Err:       invalidCandidate(cand.ID, "open_now", "venue is closed"),
				Reason:    DiscardReasonClosed,
			})
			continue
		}
		res.Ranked = append(res.Ranked, RankedCandidate{Candidate: cand, Breakdown: out.breakdown})
	}

	sort.SliceStable(res.Ranked, func(i, j int) bool {
		si, sj := res.Ranked[i].Breakdown.RankingScore(), res.Ranked[j].Breakdown.RankingScore()
		if si != sj {
			return si > sj
		}
		return res.Ranked[i].Candidate.ID < res.Ranked[j].Candidate.ID
	})

	return res, nil
}
