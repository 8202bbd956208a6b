package services

import (
	"log/slog"
	"strings"

	"clubcms/internal/domain"
)

// imageReconciler decides the stored representation of an image field from
// the request payload and the resource's prior state. Shared by the event and
// team member services; only team members accept the "import" kind.
type imageReconciler struct {
	files  domain.FileStore
	logger *slog.Logger
}

func newImageReconciler(files domain.FileStore, logger *slog.Logger) *imageReconciler {
	return &imageReconciler{files: files, logger: logger}
}

// resolve picks the image field for a freshly created resource. Priority:
// uploaded file, declared url, declared import (when allowed), placeholder.
func (r *imageReconciler) resolve(uploadPath, kind, value string, allowImport bool) domain.ImageField {
	if uploadPath != "" {
		return domain.ImageField{Kind: domain.ImageKindUpload, Value: uploadPath}
	}
	value = strings.TrimSpace(value)
	switch kind {
	case domain.ImageKindURL:
		if value != "" {
			return domain.ImageField{Kind: domain.ImageKindURL, Value: value}
		}
	case domain.ImageKindImport:
		if allowImport && value != "" {
			return domain.ImageField{Kind: domain.ImageKindImport, Value: value}
		}
	}
	return domain.PlaceholderImage()
}

// apply updates an existing image field. A new upload supersedes the prior
// value; a declared url/import without a file overwrites it; neither a file
// nor a kind leaves the field untouched. A superseded uploaded file is
// removed from disk.
func (r *imageReconciler) apply(prev domain.ImageField, uploadPath, kind, value string, allowImport bool) domain.ImageField {
	if uploadPath != "" {
		r.removeUploaded(prev)
		return domain.ImageField{Kind: domain.ImageKindUpload, Value: uploadPath}
	}
	value = strings.TrimSpace(value)
	switch kind {
	case domain.ImageKindURL:
		if value != "" {
			r.removeUploaded(prev)
			return domain.ImageField{Kind: domain.ImageKindURL, Value: value}
		}
	case domain.ImageKindImport:
		if allowImport && value != "" {
			r.removeUploaded(prev)
			return domain.ImageField{Kind: domain.ImageKindImport, Value: value}
		}
	}
	return prev
}

// removeUploaded deletes the backing file when the field holds an upload.
// Best-effort: failures are logged and never propagated.
func (r *imageReconciler) removeUploaded(field domain.ImageField) {
	if field.Kind != domain.ImageKindUpload || field.Value == "" {
		return
	}
	if err := r.files.Remove(field.Value); err != nil {
		r.logger.Warn("failed to remove uploaded file", "path", field.Value, "err", err)
	}
}

// rollback deletes a file uploaded for a request that was then rejected,
// so validation failures never leave orphaned files behind.
func (r *imageReconciler) rollback(uploadPath string) {
	if uploadPath == "" {
		return
	}
	if err := r.files.Remove(uploadPath); err != nil {
		r.logger.Warn("failed to roll back uploaded file", "path", uploadPath, "err", err)
	}
}
