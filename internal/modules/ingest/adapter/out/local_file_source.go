package out

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"dochub/internal/modules/ingest/domain"
	ingestout "dochub/internal/modules/ingest/port/out"
)

// LocalFileSource resolves filesystem paths into PendingFiles, taking
// the MIME type from the extension the way a browser would report it.
type LocalFileSource struct{}

func NewLocalFileSource() ingestout.FileSource {
	return &LocalFileSource{}
}

func (s *LocalFileSource) Describe(_ context.Context, paths []string) ([]domain.PendingFile, error) {
	out := make([]domain.PendingFile, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", path)
		}
		name := filepath.Base(path)
		mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
		if idx := strings.Index(mimeType, ";"); idx >= 0 {
			mimeType = strings.TrimSpace(mimeType[:idx])
		}
		out = append(out, domain.PendingFile{
			Name:      name,
			Path:      path,
			SizeBytes: info.Size(),
			MIMEType:  mimeType,
		})
	}
	return out, nil
}
