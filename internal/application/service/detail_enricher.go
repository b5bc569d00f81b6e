package service

import (
	"context"
	"log"
	"sync"

	"gitpulse-core/internal/domain/repo"
)

// DetailEnricher computes live detail counts for a single repository by
// issuing the three detail queries concurrently and reducing them to
// counts. It is deliberately tolerant: every branch settles, a failed
// branch contributes zero, and Enrich never returns an error.
type DetailEnricher struct {
	github repo.GitHubService
}

// NewDetailEnricher creates a new detail enricher
func NewDetailEnricher(github repo.GitHubService) *DetailEnricher {
	return &DetailEnricher{github: github}
}

// detailQuery is one branch of the three-way fan-out
type detailQuery struct {
	label string
	fn    func(ctx context.Context, accessToken, owner, name string) (int, error)
	out   *int
}

// Enrich returns {commits, issues, pullRequests} for owner/name. All three
// counts are always populated with integers >= 0, even under total remote
// failure.
func (e *DetailEnricher) Enrich(ctx context.Context, accessToken, owner, name string) repo.DetailCounts {
	var counts repo.DetailCounts

	queries := []detailQuery{
		{"commits", e.github.CountRepositoryCommits, &counts.Commits},
		{"issues", e.github.CountRepositoryIssues, &counts.Issues},
		{"pull requests", e.github.CountRepositoryPullRequests, &counts.PullRequests},
	}

	var wg sync.WaitGroup
	for _, q := range queries {
		wg.Add(1)
		go func(q detailQuery) {
			defer wg.Done()
			count, err := q.fn(ctx, accessToken, owner, name)
			if err != nil {
				// Tolerated: the branch settles as zero
				log.Printf("detail query %s failed for %s/%s: %v", q.label, owner, name, err)
				return
			}
			*q.out = count
		}(q)
	}
	wg.Wait()

	return counts
}
