package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"poextract/internal/config"
	"poextract/internal/domain"
	"poextract/internal/port"
)

const s3Scheme = "s3://"

type fetcher struct {
	httpClient *http.Client
	userAgent  string
	storage    port.ObjectStorage
}

// NewFetcher creates a SourceFetcher for HTTP(S) URLs, s3:// references and
// local paths. storage may be nil, in which case s3:// references fail.
func NewFetcher(cfg *config.FetchConfig, storage port.ObjectStorage) port.SourceFetcher {
	return &fetcher{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		storage:    storage,
	}
}

func (f *fetcher) Fetch(ctx context.Context, ref string) (*domain.Document, error) {
	switch {
	case strings.HasPrefix(ref, "http"):
		return f.fetchRemote(ctx, ref)
	case strings.HasPrefix(ref, s3Scheme):
		return f.fetchObject(ctx, ref)
	default:
		return f.fetchLocal(ref)
	}
}

func (f *fetcher) fetchRemote(ctx context.Context, ref string) (*domain.Document, error) {
	log.Debug().Str("ref", ref).Msg("downloading document")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, http.NoBody)
	if err != nil {
		log.Warn().Err(err).Str("ref", ref).Msg("failed to download document")
		return nil, fmt.Errorf("%w: building request: %w", domain.ErrNetwork, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("ref", ref).Msg("failed to download document")
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Int("status", resp.StatusCode).Str("ref", ref).Msg("failed to download document")
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrNetwork, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn().Err(err).Str("ref", ref).Msg("failed to read document body")
		return nil, fmt.Errorf("%w: reading body: %w", domain.ErrNetwork, err)
	}

	log.Debug().Str("ref", ref).Int("bytes", len(data)).Dur("duration", time.Since(start)).Msg("document downloaded")
	return &domain.Document{Ref: ref, Origin: domain.OriginRemote, Data: data}, nil
}

func (f *fetcher) fetchObject(ctx context.Context, ref string) (*domain.Document, error) {
	bucket, key, ok := parseObjectRef(ref)
	if !ok {
		log.Warn().Str("ref", ref).Msg("malformed object storage reference")
		return nil, fmt.Errorf("%w: malformed reference %q", domain.ErrObjectStorage, ref)
	}
	if f.storage == nil {
		log.Warn().Str("ref", ref).Msg("object storage is not configured")
		return nil, fmt.Errorf("%w: storage not configured", domain.ErrObjectStorage)
	}

	data, err := f.storage.Download(ctx, bucket, key)
	if err != nil {
		log.Warn().Err(err).Str("bucket", bucket).Str("key", key).Msg("failed to download object")
		return nil, fmt.Errorf("%w: %w", domain.ErrObjectStorage, err)
	}
	return &domain.Document{Ref: ref, Origin: domain.OriginObjectStorage, Data: data}, nil
}

func (f *fetcher) fetchLocal(ref string) (*domain.Document, error) {
	data, err := os.ReadFile(ref)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("ref", ref).Msg("file not found")
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, ref)
		}
		log.Warn().Err(err).Str("ref", ref).Msg("failed to read file")
		return nil, fmt.Errorf("reading %s: %w", ref, err)
	}
	return &domain.Document{Ref: ref, Origin: domain.OriginLocal, Data: data}, nil
}

// parseObjectRef splits s3://bucket/key into its bucket and key.
func parseObjectRef(ref string) (bucket, key string, ok bool) {
	rest := strings.TrimPrefix(ref, s3Scheme)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
