package screeningsrv

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/sift/pkg/fsx"
	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/pkg/logx"
	"github.com/Abraxas-365/sift/screening"
)

// ProviderFactory resolves a provider adapter by kind.
type ProviderFactory func(kind screening.ProviderKind) (screening.Provider, error)

// Service ties the screening core to its collaborators: provider adapters,
// the local extractor, the template store, the run archive and cloud storage.
type Service struct {
	providers ProviderFactory
	extractor screening.TextExtractor
	templates screening.TemplateStore
	runs      screening.RunRepository
	cloud     fsx.FileSystem
	retry     RetryPolicy
}

func NewService(
	providers ProviderFactory,
	extractor screening.TextExtractor,
	templates screening.TemplateStore,
	runs screening.RunRepository,
	cloud fsx.FileSystem,
	retry RetryPolicy,
) *Service {
	return &Service{
		providers: providers,
		extractor: extractor,
		templates: templates,
		runs:      runs,
		cloud:     cloud,
		retry:     retry,
	}
}

// RunBatch screens the items against the job description and archives the
// completed run. Archiving is best effort: a repository failure is logged
// and does not discard the screening outcome.
func (s *Service) RunBatch(
	ctx context.Context,
	kind screening.ProviderKind,
	model string,
	items []screening.ScreeningInput,
	job screening.JobContext,
	progress screening.ProgressFn,
) (*screening.Run, error) {
	provider, err := s.providers(kind)
	if err != nil {
		return nil, err
	}

	runID := kernel.NewRunID(uuid.NewString())
	staged := s.stageUploads(ctx, runID, items)

	orch := NewOrchestrator(NewContextBuilder(s.extractor), provider, s.retry, model).
		WithProgress(progress)
	outcome, err := orch.Run(ctx, items, job)
	if err != nil {
		s.removeStaged(ctx, staged)
		return nil, err
	}

	run := &screening.Run{
		ID:             runID,
		Provider:       provider.Kind(),
		Model:          model,
		JobDescription: job.Text,
		Results:        outcome.Results,
		Manifest:       outcome.Manifest,
		Summary:        Summarize(outcome),
		CreatedAt:      time.Now().UTC(),
	}
	if s.runs != nil {
		if err := s.runs.Create(ctx, run); err != nil {
			logx.Errorf("archive run %s: %v", run.ID, err)
		}
	}

	logx.Infof("run %s finished: %d succeeded, %d failed",
		run.ID, run.Summary.Succeeded, run.Summary.Failed)
	return run, nil
}

// stageUploads copies locally uploaded resumes into cloud storage under the
// run's staging prefix so originals survive the request. Staging is best
// effort and never blocks the batch. Cloud imports already live in storage
// and are skipped.
func (s *Service) stageUploads(ctx context.Context, runID kernel.RunID, items []screening.ScreeningInput) []string {
	if s.cloud == nil {
		return nil
	}
	staged := make([]string, 0, len(items))
	for _, item := range items {
		if item.Provenance != screening.ProvenanceLocalUpload {
			continue
		}
		path := s.cloud.Join("staging", runID.String(), item.FileName)
		if err := s.cloud.WriteFileStream(ctx, path, bytes.NewReader(item.Document.Content)); err != nil {
			logx.Warnf("stage upload %s: %v", path, err)
			continue
		}
		staged = append(staged, path)
	}
	return staged
}

// removeStaged deletes staged copies after a batch that produced no run.
func (s *Service) removeStaged(ctx context.Context, staged []string) {
	for _, path := range staged {
		if err := s.cloud.DeleteFile(ctx, path); err != nil {
			logx.Warnf("remove staged upload %s: %v", path, err)
		}
	}
}

// GetRun fetches an archived run.
func (s *Service) GetRun(ctx context.Context, id kernel.RunID) (*screening.Run, error) {
	return s.runs.GetByID(ctx, id)
}

// ListRuns pages through archived runs, newest first.
func (s *Service) ListRuns(ctx context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[screening.Run], error) {
	return s.runs.List(ctx, opts.Normalize())
}

// RankedResults returns a run's results ordered by score descending.
func (s *Service) RankedResults(ctx context.Context, id kernel.RunID) ([]screening.Result, error) {
	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return SortByScore(run.Results), nil
}

// ExportRunCSV writes a run's ranked results as CSV.
func (s *Service) ExportRunCSV(ctx context.Context, id kernel.RunID, w io.Writer) error {
	results, err := s.RankedResults(ctx, id)
	if err != nil {
		return err
	}
	return WriteCSV(w, results)
}

// SaveTemplate stores a reusable job description template.
func (s *Service) SaveTemplate(ctx context.Context, name, text string) (*screening.JDTemplate, error) {
	if strings.TrimSpace(text) == "" {
		return nil, screening.ErrMissingJobDescription()
	}
	tpl := &screening.JDTemplate{
		ID:        kernel.NewTemplateID(uuid.NewString()),
		Name:      strings.TrimSpace(name),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.templates.Save(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// GetTemplate fetches a template by ID.
func (s *Service) GetTemplate(ctx context.Context, id kernel.TemplateID) (*screening.JDTemplate, error) {
	return s.templates.Get(ctx, id)
}

// ListTemplates returns all saved templates.
func (s *Service) ListTemplates(ctx context.Context) ([]screening.JDTemplate, error) {
	return s.templates.List(ctx)
}

// DeleteTemplate removes a template.
func (s *Service) DeleteTemplate(ctx context.Context, id kernel.TemplateID) error {
	return s.templates.Delete(ctx, id)
}

// ResolveJobContext builds the job context from raw text or, when a template
// ID is given, from the stored template.
func (s *Service) ResolveJobContext(ctx context.Context, text string, templateID kernel.TemplateID) (screening.JobContext, error) {
	if !templateID.IsEmpty() {
		tpl, err := s.templates.Get(ctx, templateID)
		if err != nil {
			return screening.JobContext{}, err
		}
		return screening.JobContext{Text: tpl.Text}, nil
	}
	return screening.JobContext{Text: text}, nil
}

// ListCloudFiles enumerates importable resumes under a cloud folder. Files
// outside the supported media types are filtered out.
func (s *Service) ListCloudFiles(ctx context.Context, folder string) ([]screening.CloudFileResponse, error) {
	infos, err := s.cloud.ListFiles(ctx, folder)
	if err != nil {
		return nil, screening.ErrCloudStorageFailed("list", err)
	}

	files := make([]screening.CloudFileResponse, 0, len(infos))
	for _, info := range infos {
		mediaType := screening.MediaTypeFromFileName(info.Name)
		if mediaType == "" {
			continue
		}
		files = append(files, screening.CloudFileResponse{
			Path:         info.Path,
			Name:         info.Name,
			Size:         info.Size,
			MediaType:    mediaType,
			LastModified: info.LastModified,
		})
	}
	return files, nil
}

// ImportCloudFiles downloads the given objects and turns them into batch
// items with cloud-import provenance. Unsupported media types are kept so
// the orchestrator reports them in the failure manifest.
func (s *Service) ImportCloudFiles(ctx context.Context, paths []string) ([]screening.ScreeningInput, error) {
	items := make([]screening.ScreeningInput, 0, len(paths))
	for _, p := range paths {
		data, err := s.cloud.ReadFile(ctx, p)
		if err != nil {
			return nil, screening.ErrCloudStorageFailed("download", err)
		}
		name := p
		if idx := strings.LastIndex(p, "/"); idx >= 0 {
			name = p[idx+1:]
		}
		items = append(items, screening.ScreeningInput{
			ID:       kernel.NewItemID(uuid.NewString()),
			FileName: name,
			Document: screening.Document{
				Content:   data,
				MediaType: screening.MediaTypeFromFileName(name),
			},
			Provenance: screening.ProvenanceCloudImport,
		})
	}
	return items, nil
}
