package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	"image/png"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"poextract/internal/config"
	"poextract/internal/domain"
)

// OCREngine recognises text in raster images with tesseract. One engine is
// created per process and shared by all requests.
type OCREngine struct {
	cfg    config.OCRConfig
	runner Runner
	sem    chan struct{}
}

// NewOCREngine creates an OCREngine that shells out to the configured tesseract binary.
func NewOCREngine(cfg config.OCRConfig) *OCREngine {
	return NewOCREngineWithRunner(cfg, execRunner{})
}

// NewOCREngineWithRunner creates an OCREngine that runs commands through runner.
func NewOCREngineWithRunner(cfg config.OCRConfig, runner Runner) *OCREngine {
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	return &OCREngine{
		cfg:    cfg,
		runner: runner,
		sem:    make(chan struct{}, cfg.MaxConcurrent),
	}
}

// Available reports whether the tesseract binary can be resolved.
func (e *OCREngine) Available() error {
	if _, err := e.runner.LookPath(e.cfg.Tesseract); err != nil {
		return fmt.Errorf("tesseract not available: %w", err)
	}
	return nil
}

// Extract decodes doc as an image, runs OCR on it and joins every detected
// text fragment with single spaces.
func (e *OCREngine) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	img, format, err := image.Decode(bytes.NewReader(doc.Data))
	if err != nil {
		log.Warn().Err(err).Str("ref", doc.Ref).Msg("failed to decode image")
		return "", fmt.Errorf("%w: decoding image: %w", domain.ErrNoTextExtracted, err)
	}

	path, cleanup, err := writeTempPNG(img)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrNoTextExtracted, err)
	}
	defer cleanup()

	select {
	case e.sem <- struct{}{}:
		defer func() { <-e.sem }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	// tesseract <file> stdout -l <lang>
	args := []string{path, "stdout", "-l", e.cfg.Language}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	out, _, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		log.Warn().Err(err).Str("ref", doc.Ref).Msg("ocr failed")
		return "", fmt.Errorf("%w: tesseract: %w", domain.ErrNoTextExtracted, err)
	}

	text := strings.Join(strings.Fields(string(out)), " ")
	if text == "" {
		return "", fmt.Errorf("%w: no text recognised", domain.ErrNoTextExtracted)
	}
	log.Debug().Str("ref", doc.Ref).Str("format", format).Int("chars", len(text)).Msg("ocr complete")
	return text, nil
}

// writeTempPNG re-encodes img as PNG into a uniquely named temporary file.
func writeTempPNG(img image.Image) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp("", "poextract-ocr-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp image: %w", err)
	}
	cleanup = func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn().Err(rmErr).Str("path", f.Name()).Msg("failed to remove temp image")
		}
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("encoding temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp image: %w", err)
	}
	return f.Name(), cleanup, nil
}
