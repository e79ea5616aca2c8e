package screening

import "time"

// CreateTemplateRequest is the payload for saving a job description template.
type CreateTemplateRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// TemplateResponse is the API view of a saved template.
type TemplateResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ToTemplateResponse maps a template to its API view.
func ToTemplateResponse(tpl *JDTemplate) TemplateResponse {
	return TemplateResponse{
		ID:        tpl.ID.String(),
		Name:      tpl.Name,
		Text:      tpl.Text,
		CreatedAt: tpl.CreatedAt,
	}
}

// RunSummaryResponse is the list view of an archived run.
type RunSummaryResponse struct {
	ID        string       `json:"id"`
	Provider  ProviderKind `json:"provider"`
	Model     string       `json:"model"`
	Summary   RunSummary   `json:"summary"`
	CreatedAt time.Time    `json:"created_at"`
}

// ToRunSummaryResponse maps a run to its list view.
func ToRunSummaryResponse(run *Run) RunSummaryResponse {
	return RunSummaryResponse{
		ID:        run.ID.String(),
		Provider:  run.Provider,
		Model:     run.Model,
		Summary:   run.Summary,
		CreatedAt: run.CreatedAt,
	}
}

// RunResponse is the full API view of an archived run.
type RunResponse struct {
	ID             string        `json:"id"`
	Provider       ProviderKind  `json:"provider"`
	Model          string        `json:"model"`
	JobDescription string        `json:"job_description"`
	Results        []Result      `json:"results"`
	Manifest       []ItemFailure `json:"manifest"`
	Summary        RunSummary    `json:"summary"`
	CreatedAt      time.Time     `json:"created_at"`
}

// ToRunResponse maps a run to its full API view.
func ToRunResponse(run *Run) RunResponse {
	return RunResponse{
		ID:             run.ID.String(),
		Provider:       run.Provider,
		Model:          run.Model,
		JobDescription: run.JobDescription,
		Results:        run.Results,
		Manifest:       run.Manifest,
		Summary:        run.Summary,
		CreatedAt:      run.CreatedAt,
	}
}

// CloudFileResponse is the API view of one importable cloud file.
type CloudFileResponse struct {
	Path         string    `json:"path"`
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	MediaType    MediaType `json:"media_type"`
	LastModified time.Time `json:"last_modified"`
}
