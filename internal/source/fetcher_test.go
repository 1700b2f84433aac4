package source_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"poextract/internal/config"
	"poextract/internal/domain"
	"poextract/internal/port"
	"poextract/internal/source"
	"poextract/mocks"
)

func fetchConfig() *config.FetchConfig {
	return &config.FetchConfig{Timeout: 5 * time.Second, UserAgent: "poextract-test"}
}

func TestFetcher_Remote_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "poextract-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("%PDF-1.4 body"))
	}))
	defer srv.Close()

	f := source.NewFetcher(fetchConfig(), nil)
	doc, err := f.Fetch(context.Background(), srv.URL+"/invoice.pdf")

	require.NoError(t, err)
	assert.Equal(t, domain.OriginRemote, doc.Origin)
	assert.Equal(t, []byte("%PDF-1.4 body"), doc.Data)
	assert.Equal(t, srv.URL+"/invoice.pdf", doc.Ref)
}

func TestFetcher_Remote_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := source.NewFetcher(fetchConfig(), nil)
	doc, err := f.Fetch(context.Background(), srv.URL+"/missing.pdf")

	assert.Nil(t, doc)
	assert.True(t, errors.Is(err, domain.ErrNetwork))
}

func TestFetcher_Remote_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL + "/invoice.pdf"
	srv.Close()

	f := source.NewFetcher(fetchConfig(), nil)
	doc, err := f.Fetch(context.Background(), url)

	assert.Nil(t, doc)
	assert.True(t, errors.Is(err, domain.ErrNetwork))
}

func TestFetcher_Remote_InvalidURL(t *testing.T) {
	f := source.NewFetcher(fetchConfig(), nil)

	for _, ref := range []string{"http://", "http://exa mple.com/a.pdf", "https//missing-colon.pdf"} {
		doc, err := f.Fetch(context.Background(), ref)
		assert.Nil(t, doc, ref)
		assert.True(t, errors.Is(err, domain.ErrNetwork), ref)
	}
}

func TestFetcher_Local_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte("po,qty\n48213,2\n"), 0o600))

	f := source.NewFetcher(fetchConfig(), nil)
	doc, err := f.Fetch(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, domain.OriginLocal, doc.Origin)
	assert.Equal(t, "po,qty\n48213,2\n", string(doc.Data))
}

func TestFetcher_Local_NotFound(t *testing.T) {
	f := source.NewFetcher(fetchConfig(), nil)
	doc, err := f.Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))

	assert.Nil(t, doc)
	assert.True(t, errors.Is(err, domain.ErrSourceNotFound))
}

func TestFetcher_ObjectStorage_Success(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Download", mock.Anything, "invoices", "2024/q4/po.pdf").Return([]byte("pdf-bytes"), nil)

	f := source.NewFetcher(fetchConfig(), storage)
	doc, err := f.Fetch(context.Background(), "s3://invoices/2024/q4/po.pdf")

	require.NoError(t, err)
	assert.Equal(t, domain.OriginObjectStorage, doc.Origin)
	assert.Equal(t, []byte("pdf-bytes"), doc.Data)
	storage.AssertExpectations(t)
}

func TestFetcher_ObjectStorage_DownloadFails(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Download", mock.Anything, "invoices", "po.pdf").Return(nil, errors.New("access denied"))

	f := source.NewFetcher(fetchConfig(), storage)
	doc, err := f.Fetch(context.Background(), "s3://invoices/po.pdf")

	assert.Nil(t, doc)
	assert.True(t, errors.Is(err, domain.ErrObjectStorage))
	storage.AssertExpectations(t)
}

func TestFetcher_ObjectStorage_MalformedReference(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	f := source.NewFetcher(fetchConfig(), storage)

	for _, ref := range []string{"s3://", "s3://bucket-only", "s3:///key.pdf", "s3://bucket/"} {
		doc, err := f.Fetch(context.Background(), ref)
		assert.Nil(t, doc, ref)
		assert.True(t, errors.Is(err, domain.ErrObjectStorage), ref)
	}
	storage.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything)
}

func TestFetcher_ObjectStorage_NotConfigured(t *testing.T) {
	var storage port.ObjectStorage
	f := source.NewFetcher(fetchConfig(), storage)

	doc, err := f.Fetch(context.Background(), "s3://invoices/po.pdf")

	assert.Nil(t, doc)
	assert.True(t, errors.Is(err, domain.ErrObjectStorage))
}
