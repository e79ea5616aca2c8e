package screening

import (
	"net/http"

	"github.com/Abraxas-365/sift/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("SCREENING")

var (
	CodeMissingCredential = ErrRegistry.Register(
		"MISSING_CREDENTIAL", errx.TypeInternal, http.StatusInternalServerError,
		"Provider credential is not configured")
	CodeUnsupportedMediaType = ErrRegistry.Register(
		"UNSUPPORTED_MEDIA_TYPE", errx.TypeValidation, http.StatusBadRequest,
		"Document media type is not supported")
	CodeEmptyDocument = ErrRegistry.Register(
		"EMPTY_DOCUMENT", errx.TypeValidation, http.StatusBadRequest,
		"Document has no content")
	CodeExtractionFailed = ErrRegistry.Register(
		"EXTRACTION_FAILED", errx.TypeInternal, http.StatusUnprocessableEntity,
		"Failed to extract text from document")
	CodeProviderCallFailed = ErrRegistry.Register(
		"PROVIDER_CALL_FAILED", errx.TypeUnavailable, http.StatusBadGateway,
		"Provider call failed")
	CodeEmptyResponse = ErrRegistry.Register(
		"EMPTY_RESPONSE", errx.TypeUnavailable, http.StatusBadGateway,
		"Provider returned an empty response")
	CodeMalformedResponse = ErrRegistry.Register(
		"MALFORMED_RESPONSE", errx.TypeUnavailable, http.StatusBadGateway,
		"Provider response does not match the expected result shape")
	CodeMissingJobDescription = ErrRegistry.Register(
		"MISSING_JOB_DESCRIPTION", errx.TypeValidation, http.StatusBadRequest,
		"Job description is required")
	CodeEmptyBatch = ErrRegistry.Register(
		"EMPTY_BATCH", errx.TypeValidation, http.StatusBadRequest,
		"Batch contains no items")
	CodeAllItemsFailed = ErrRegistry.Register(
		"ALL_ITEMS_FAILED", errx.TypeBusiness, http.StatusUnprocessableEntity,
		"Every item in the batch failed")
	CodeUnknownProvider = ErrRegistry.Register(
		"UNKNOWN_PROVIDER", errx.TypeValidation, http.StatusBadRequest,
		"Unknown screening provider")
	CodeRunNotFound = ErrRegistry.Register(
		"RUN_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound,
		"Screening run not found")
	CodeRunQueryFailed = ErrRegistry.Register(
		"RUN_QUERY_FAILED", errx.TypeInternal, http.StatusInternalServerError,
		"Failed to query screening runs")
	CodeRunSaveFailed = ErrRegistry.Register(
		"RUN_SAVE_FAILED", errx.TypeInternal, http.StatusInternalServerError,
		"Failed to persist screening run")
	CodeTemplateNotFound = ErrRegistry.Register(
		"TEMPLATE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound,
		"Job description template not found")
	CodeTemplateSaveFailed = ErrRegistry.Register(
		"TEMPLATE_SAVE_FAILED", errx.TypeInternal, http.StatusInternalServerError,
		"Failed to persist job description template")
	CodeCloudStorageFailed = ErrRegistry.Register(
		"CLOUD_STORAGE_FAILED", errx.TypeUnavailable, http.StatusBadGateway,
		"Cloud storage operation failed")
)

func ErrMissingCredential(provider ProviderKind, envVar string) error {
	return ErrRegistry.New(CodeMissingCredential).
		WithDetail("provider", string(provider)).
		WithDetail("env_var", envVar)
}

func ErrUnsupportedMediaType(mediaType string) error {
	return ErrRegistry.New(CodeUnsupportedMediaType).WithDetail("media_type", mediaType)
}

func ErrEmptyDocument(fileName string) error {
	return ErrRegistry.New(CodeEmptyDocument).WithDetail("file_name", fileName)
}

func ErrExtractionFailed(fileName string, cause error) error {
	return ErrRegistry.NewWithCause(CodeExtractionFailed, cause).WithDetail("file_name", fileName)
}

func ErrProviderCallFailed(provider ProviderKind, cause error) error {
	return ErrRegistry.NewWithCause(CodeProviderCallFailed, cause).
		WithDetail("provider", string(provider))
}

func ErrEmptyResponse(provider ProviderKind) error {
	return ErrRegistry.New(CodeEmptyResponse).WithDetail("provider", string(provider))
}

func ErrMalformedResponse(provider ProviderKind, cause error) error {
	e := ErrRegistry.NewWithCause(CodeMalformedResponse, cause)
	return e.WithDetail("provider", string(provider))
}

func ErrMissingJobDescription() error {
	return ErrRegistry.New(CodeMissingJobDescription)
}

func ErrEmptyBatch() error {
	return ErrRegistry.New(CodeEmptyBatch)
}

func ErrAllItemsFailed(manifest []ItemFailure) error {
	return ErrRegistry.New(CodeAllItemsFailed).
		WithDetail("total", len(manifest)).
		WithDetail("manifest", manifest)
}

func ErrUnknownProvider(kind string) error {
	return ErrRegistry.New(CodeUnknownProvider).WithDetail("provider", kind)
}

func ErrRunNotFound(id string) error {
	return ErrRegistry.New(CodeRunNotFound).WithDetail("run_id", id)
}

func ErrRunQueryFailed(op string, cause error) error {
	return ErrRegistry.NewWithCause(CodeRunQueryFailed, cause).WithDetail("operation", op)
}

func ErrRunSaveFailed(cause error) error {
	return ErrRegistry.NewWithCause(CodeRunSaveFailed, cause)
}

func ErrTemplateNotFound(id string) error {
	return ErrRegistry.New(CodeTemplateNotFound).WithDetail("template_id", id)
}

func ErrTemplateSaveFailed(cause error) error {
	return ErrRegistry.NewWithCause(CodeTemplateSaveFailed, cause)
}

func ErrCloudStorageFailed(op string, cause error) error {
	return ErrRegistry.NewWithCause(CodeCloudStorageFailed, cause).WithDetail("operation", op)
}
