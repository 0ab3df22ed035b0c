// Package http provides an HTTP-based implementation of mdclip.ImageSampler
// that loads page images and re-encodes them as JPEG.
package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/mdclip"
	_ "golang.org/x/image/webp"
)

// DefaultFetchTimeout is the default timeout for image requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultJPEGQuality matches the quality a browser canvas uses for toDataURL("image/jpeg", 0.8).
const DefaultJPEGQuality = 80

// maxImageBytes caps the size of a downloaded image.
const maxImageBytes = 20 << 20

// MaxImagePixels caps width*height of an image accepted for decoding.
const MaxImagePixels = 40_000_000

// ErrImageTooLarge is returned for images whose declared size exceeds MaxImagePixels.
var ErrImageTooLarge = mdclip.Errorf(mdclip.EINVALID, "image larger than %d pixels", MaxImagePixels)

// ErrImageTooSmall is returned for images below mdclip.MinImageSize in either dimension.
var ErrImageTooSmall = mdclip.Errorf(mdclip.EINVALID, "image smaller than %dx%d", mdclip.MinImageSize, mdclip.MinImageSize)

// Ensure ImageSampler implements mdclip.ImageSampler at compile time.
var _ mdclip.ImageSampler = (*ImageSampler)(nil)

// ImageSampler loads images over HTTP (or from data: URIs), checks their
// pixel size and re-encodes them as JPEG.
type ImageSampler struct {
	client  *http.Client
	timeout time.Duration
	quality int
}

// Option configures an ImageSampler.
type Option func(*ImageSampler)

// WithTimeout sets the timeout for image requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *ImageSampler) {
		s.timeout = d
	}
}

// WithQuality sets the JPEG quality (1-100).
func WithQuality(q int) Option {
	return func(s *ImageSampler) {
		s.quality = q
	}
}

// NewImageSampler creates a new ImageSampler.
func NewImageSampler(opts ...Option) *ImageSampler {
	s := &ImageSampler{
		timeout: DefaultFetchTimeout,
		quality: DefaultJPEGQuality,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{
		Timeout: s.timeout,
	}

	return s
}

// Sample loads the image at src and returns it re-encoded as JPEG.
func (s *ImageSampler) Sample(ctx context.Context, src, alt string) (*mdclip.ImageSample, error) {
	data, err := s.load(ctx, src)
	if err != nil {
		return nil, err
	}

	// The header is checked before decoding: decoders allocate the full
	// pixel buffer up front, whatever the size of the compressed data.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", src, err)
	}
	if cfg.Width < mdclip.MinImageSize || cfg.Height < mdclip.MinImageSize {
		return nil, ErrImageTooSmall
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, ErrImageTooLarge
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", src, err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", src, err)
	}

	return &mdclip.ImageSample{
		Data:     buf.Bytes(),
		MimeType: "image/jpeg",
		Alt:      alt,
		Src:      src,
	}, nil
}

func (s *ImageSampler) load(ctx context.Context, src string) ([]byte, error) {
	if strings.HasPrefix(src, "data:") {
		return decodeDataURI(src)
	}

	if u, err := url.Parse(src); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, mdclip.Errorf(mdclip.EINVALID, "unsupported image source %q", src)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, src)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}

// decodeDataURI returns the payload of a base64 data: URI.
func decodeDataURI(src string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, mdclip.Errorf(mdclip.EINVALID, "unsupported data URI")
	}
	return base64.StdEncoding.DecodeString(payload)
}
