package screeningapi

import (
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/screening"
	"github.com/Abraxas-365/sift/screening/screeningsrv"
)

const maxResumeSize = 10 * 1024 * 1024 // 10MB per file

type ScreeningHandlers struct {
	service *screeningsrv.Service
}

func NewScreeningHandlers(service *screeningsrv.Service) *ScreeningHandlers {
	return &ScreeningHandlers{service: service}
}

func (h *ScreeningHandlers) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/v1/screening")

	// Runs
	api.Post("/runs", h.RunBatch)               // Screen a batch of resumes
	api.Get("/runs", h.ListRuns)                // List archived runs
	api.Get("/runs/:id", h.GetRun)              // Full run detail
	api.Get("/runs/:id/ranked", h.RankedView)   // Results ordered by score
	api.Get("/runs/:id/export", h.ExportCSV)    // CSV download

	// Job description templates
	api.Post("/templates", h.CreateTemplate)
	api.Get("/templates", h.ListTemplates)
	api.Get("/templates/:id", h.GetTemplate)
	api.Delete("/templates/:id", h.DeleteTemplate)

	// Cloud import
	api.Get("/cloud/files", h.ListCloudFiles)
}

// RunBatch screens uploaded resumes (multipart field "resumes") and/or cloud
// objects (form field "cloud_paths", comma separated) against a job
// description given as raw text or a saved template ID.
// POST /api/v1/screening/runs
func (h *ScreeningHandlers) RunBatch(c *fiber.Ctx) error {
	provider := screening.ProviderKind(c.FormValue("provider", string(screening.ProviderOpenAI)))
	model := c.FormValue("model")

	job, err := h.service.ResolveJobContext(c.Context(),
		c.FormValue("job_description"),
		kernel.NewTemplateID(c.FormValue("template_id")))
	if err != nil {
		return err
	}

	items, err := h.collectItems(c)
	if err != nil {
		return err
	}

	run, err := h.service.RunBatch(c.Context(), provider, model, items, job, nil)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(screening.ToRunResponse(run))
}

func (h *ScreeningHandlers) collectItems(c *fiber.Ctx) ([]screening.ScreeningInput, error) {
	var items []screening.ScreeningInput

	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for _, file := range form.File["resumes"] {
			if file.Size > maxResumeSize {
				return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge,
					"resume file exceeds the 10MB limit: "+file.Filename)
			}
			item, err := uploadToItem(file)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}

	if paths := strings.TrimSpace(c.FormValue("cloud_paths")); paths != "" {
		imported, err := h.service.ImportCloudFiles(c.Context(), splitPaths(paths))
		if err != nil {
			return nil, err
		}
		items = append(items, imported...)
	}

	return items, nil
}

func uploadToItem(file *multipart.FileHeader) (screening.ScreeningInput, error) {
	f, err := file.Open()
	if err != nil {
		return screening.ScreeningInput{}, fiber.NewError(fiber.StatusBadRequest, "failed to open uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return screening.ScreeningInput{}, fiber.NewError(fiber.StatusBadRequest, "failed to read uploaded file")
	}

	return screening.ScreeningInput{
		ID:       kernel.NewItemID(uuid.NewString()),
		FileName: file.Filename,
		Document: screening.Document{
			Content:   data,
			MediaType: screening.MediaTypeFromFileName(file.Filename),
		},
		Provenance: screening.ProvenanceLocalUpload,
	}, nil
}

func splitPaths(raw string) []string {
	parts := strings.Split(raw, ",")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// ListRuns returns archived run summaries, newest first.
// GET /api/v1/screening/runs?page=1&page_size=20
func (h *ScreeningHandlers) ListRuns(c *fiber.Ctx) error {
	opts := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	paginated, err := h.service.ListRuns(c.Context(), opts)
	if err != nil {
		return err
	}

	summaries := make([]screening.RunSummaryResponse, len(paginated.Items))
	for i := range paginated.Items {
		summaries[i] = screening.ToRunSummaryResponse(&paginated.Items[i])
	}
	return c.JSON(fiber.Map{
		"items": summaries,
		"page":  paginated.Page,
	})
}

// GetRun returns the full archived run.
// GET /api/v1/screening/runs/:id
func (h *ScreeningHandlers) GetRun(c *fiber.Ctx) error {
	run, err := h.service.GetRun(c.Context(), kernel.NewRunID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(screening.ToRunResponse(run))
}

// RankedView returns a run's results ordered by score descending.
// GET /api/v1/screening/runs/:id/ranked
func (h *ScreeningHandlers) RankedView(c *fiber.Ctx) error {
	results, err := h.service.RankedResults(c.Context(), kernel.NewRunID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"results":      results,
		"distribution": screeningsrv.Distribution(results),
		"average":      screeningsrv.AverageScore(results),
	})
}

// ExportCSV streams the ranked results as a CSV attachment.
// GET /api/v1/screening/runs/:id/export
func (h *ScreeningHandlers) ExportCSV(c *fiber.Ctx) error {
	id := kernel.NewRunID(c.Params("id"))

	var buf strings.Builder
	if err := h.service.ExportRunCSV(c.Context(), id, &buf); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="screening-`+id.String()+`.csv"`)
	return c.SendString(buf.String())
}

// CreateTemplate saves a job description template.
// POST /api/v1/screening/templates
func (h *ScreeningHandlers) CreateTemplate(c *fiber.Ctx) error {
	var req screening.CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	tpl, err := h.service.SaveTemplate(c.Context(), req.Name, req.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(screening.ToTemplateResponse(tpl))
}

// ListTemplates returns all saved templates.
// GET /api/v1/screening/templates
func (h *ScreeningHandlers) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.service.ListTemplates(c.Context())
	if err != nil {
		return err
	}

	out := make([]screening.TemplateResponse, len(templates))
	for i := range templates {
		out[i] = screening.ToTemplateResponse(&templates[i])
	}
	return c.JSON(out)
}

// GetTemplate fetches a template by ID.
// GET /api/v1/screening/templates/:id
func (h *ScreeningHandlers) GetTemplate(c *fiber.Ctx) error {
	tpl, err := h.service.GetTemplate(c.Context(), kernel.NewTemplateID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(screening.ToTemplateResponse(tpl))
}

// DeleteTemplate removes a template.
// DELETE /api/v1/screening/templates/:id
func (h *ScreeningHandlers) DeleteTemplate(c *fiber.Ctx) error {
	if err := h.service.DeleteTemplate(c.Context(), kernel.NewTemplateID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCloudFiles enumerates importable resumes under a cloud folder.
// GET /api/v1/screening/cloud/files?folder=resumes/2026
func (h *ScreeningHandlers) ListCloudFiles(c *fiber.Ctx) error {
	files, err := h.service.ListCloudFiles(c.Context(), c.Query("folder"))
	if err != nil {
		return err
	}
	return c.JSON(files)
}
