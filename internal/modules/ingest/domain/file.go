package domain

import (
	"strings"

	apperrors "dochub/internal/platform/errors"
)

// PendingFile is a locally selected file awaiting upload. It exists
// only in client memory and is discarded on submit or removal.
type PendingFile struct {
	Name      string
	Path      string
	SizeBytes int64
	MIMEType  string
}

// Extension returns the lowercase substring after the last dot,
// including the dot, or "" when the name has none.
func (f PendingFile) Extension() string {
	idx := strings.LastIndex(f.Name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(f.Name[idx:])
}

// AllowList is the combined set of accepted MIME types and file
// extensions. A file is accepted when either matches: reported MIME
// types are unreliable for several office formats, so this is a
// deliberate OR, not an AND.
type AllowList struct {
	mimeTypes  map[string]struct{}
	extensions map[string]struct{}
}

func NewAllowList(mimeTypes, extensions []string) AllowList {
	a := AllowList{
		mimeTypes:  make(map[string]struct{}, len(mimeTypes)),
		extensions: make(map[string]struct{}, len(extensions)),
	}
	for _, m := range mimeTypes {
		a.mimeTypes[strings.ToLower(strings.TrimSpace(m))] = struct{}{}
	}
	for _, e := range extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" && !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		a.extensions[e] = struct{}{}
	}
	return a
}

func (a AllowList) Accepts(f PendingFile) bool {
	mime := strings.ToLower(f.MIMEType)
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = strings.TrimSpace(mime[:idx])
	}
	if _, ok := a.mimeTypes[mime]; ok {
		return true
	}
	_, ok := a.extensions[f.Extension()]
	return ok
}

// Selection is the outcome of validating a file set. Rejected names
// are a warning side-channel, not a hard error, unless nothing at all
// was accepted.
type Selection struct {
	Accepted []PendingFile
	Rejected []string
}

func (s Selection) PartialRejection() bool {
	return len(s.Accepted) > 0 && len(s.Rejected) > 0
}

// Filter splits files into accepted and rejected sets. A non-empty
// input with an empty accepted subset fails with ErrNoValidFiles.
func (a AllowList) Filter(files []PendingFile) (Selection, error) {
	sel := Selection{}
	for _, f := range files {
		if a.Accepts(f) {
			sel.Accepted = append(sel.Accepted, f)
		} else {
			sel.Rejected = append(sel.Rejected, f.Name)
		}
	}
	if len(files) > 0 && len(sel.Accepted) == 0 {
		return Selection{Rejected: sel.Rejected}, apperrors.ErrNoValidFiles
	}
	return sel, nil
}

// UploadMetadata is the form state attached to a submission.
type UploadMetadata struct {
	CategoryID string
	Tags       []string
}

// Normalize trims tags, drops empty ones and removes duplicates while
// preserving first-seen order.
func (m UploadMetadata) Normalize() UploadMetadata {
	out := UploadMetadata{CategoryID: strings.TrimSpace(m.CategoryID)}
	seen := map[string]struct{}{}
	for _, tag := range m.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out.Tags = append(out.Tags, tag)
	}
	return out
}

func (m UploadMetadata) Validate() error {
	if strings.TrimSpace(m.CategoryID) == "" {
		return apperrors.ErrMissingCategory
	}
	return nil
}
