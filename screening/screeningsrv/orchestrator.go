package screeningsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/sift/pkg/logx"
	"github.com/Abraxas-365/sift/screening"
)

const defaultDemoDelay = 1500 * time.Millisecond

// Orchestrator drives one batch run to completion: strictly sequential, one
// provider call in flight at a time, partial failures collected into the
// manifest without aborting the batch.
type Orchestrator struct {
	builder   *ContextBuilder
	provider  screening.Provider
	retry     RetryPolicy
	model     string
	demoDelay time.Duration
	progress  screening.ProgressFn
}

func NewOrchestrator(builder *ContextBuilder, provider screening.Provider, retry RetryPolicy, model string) *Orchestrator {
	return &Orchestrator{
		builder:   builder,
		provider:  provider,
		retry:     retry,
		model:     model,
		demoDelay: defaultDemoDelay,
	}
}

// WithProgress registers a per-item progress callback.
func (o *Orchestrator) WithProgress(fn screening.ProgressFn) *Orchestrator {
	o.progress = fn
	return o
}

// WithDemoDelay overrides the simulated delay of the offline path.
func (o *Orchestrator) WithDemoDelay(d time.Duration) *Orchestrator {
	o.demoDelay = d
	return o
}

// Run screens every item against the job description, in input order.
// Pre-flight failures (missing job description, empty batch) abort before any
// provider call. Cancellation is honored between items, never mid-call.
func (o *Orchestrator) Run(ctx context.Context, items []screening.ScreeningInput, job screening.JobContext) (*screening.BatchOutcome, error) {
	if job.IsEmpty() {
		return nil, screening.ErrMissingJobDescription()
	}
	if len(items) == 0 {
		return nil, screening.ErrEmptyBatch()
	}

	total := len(items)
	for i, item := range items {
		o.report(i, total, item, screening.ItemStatePending)
	}

	outcome := &screening.BatchOutcome{}
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		o.report(i, total, item, screening.ItemStateInFlight)
		result, err := o.screenItem(ctx, item, job)
		if err != nil {
			logx.Warnf("screening %s failed: %v", item.FileName, err)
			outcome.Manifest = append(outcome.Manifest, screening.ItemFailure{
				ItemID:   item.ID,
				FileName: item.FileName,
				Reason:   err.Error(),
			})
			o.report(i, total, item, screening.ItemStateFailed)
			continue
		}
		outcome.Results = append(outcome.Results, *result)
		o.report(i, total, item, screening.ItemStateSucceeded)
	}

	if len(outcome.Results) == 0 {
		return nil, screening.ErrAllItemsFailed(outcome.Manifest)
	}
	return outcome, nil
}

func (o *Orchestrator) screenItem(ctx context.Context, item screening.ScreeningInput, job screening.JobContext) (*screening.Result, error) {
	if item.IsDemoPlaceholder() {
		select {
		case <-time.After(o.demoDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return demoResult(item), nil
	}

	prepared, err := o.builder.Build(item, job, o.provider.Capabilities())
	if err != nil {
		return nil, err
	}
	return o.retry.Do(ctx, func(ctx context.Context) (*screening.Result, error) {
		return o.provider.Screen(ctx, prepared, o.model)
	})
}

func (o *Orchestrator) report(index, total int, item screening.ScreeningInput, state screening.ItemState) {
	if o.progress == nil {
		return
	}
	o.progress(screening.ItemProgress{
		Index:    index,
		Total:    total,
		ItemID:   item.ID,
		FileName: item.FileName,
		State:    state,
	})
}

// demoResult synthesizes the fixed-shape result for the offline placeholder
// path. It never runs for an item carrying real content.
func demoResult(item screening.ScreeningInput) *screening.Result {
	name := item.FileName
	if name == "" {
		name = "Demo Candidate"
	}
	return &screening.Result{
		CandidateName:     fmt.Sprintf("Demo Candidate (%s)", name),
		Location:          "Remote",
		TotalExperience:   "5 years",
		CurrentRole:       "Software Engineer",
		ResumeText:        "Demonstration placeholder item, no resume content was screened.",
		OverallMatchScore: 75,
		CandidateSummary:  "Synthesized demonstration result produced without a provider call.",
		SkillsAnalysis: []screening.SkillAssessment{
			{
				Skill:     "Demonstration",
				Score:     75,
				Reasoning: "Fixed-shape offline result.",
				Evidence:  screening.EvidenceNotFound,
			},
		},
		Strengths:      []string{"Available for demos"},
		Weaknesses:     []string{"Not a real candidate"},
		Recommendation: screening.RecommendationPotentialMatch,
		SuitableRoles:  []string{"Software Engineer"},
	}
}
