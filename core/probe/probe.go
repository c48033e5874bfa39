package probe

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"time"

	"media-manager/core/reconcile"
	"media-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of probing one key.
type Result struct {
	Key    string `json:"key"`
	Width  *int   `json:"width"`
	Height *int   `json:"height"`
	Format string `json:"format,omitempty"`
	Err    error  `json:"-"`
}

// Prober fetches object headers from storage and decodes their dimensions.
type Prober struct {
	client  storage.Client
	bucket  string
	bytes   int64
	timeout time.Duration
	limit   int
	logger  *zap.Logger
}

// NewProber creates a Prober reading from bucket with the limits in cfg.
func NewProber(client storage.Client, bucket string, cfg reconcile.Config, logger *zap.Logger) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{
		client:  client,
		bucket:  bucket,
		bytes:   cfg.HeaderBytes(),
		timeout: cfg.ProbeTimeout(),
		limit:   cfg.Concurrency(),
		logger:  logger,
	}
}

// DecodeDimensions reads an image header from r. Only the header is decoded.
func DecodeDimensions(r io.Reader) (width, height int, format string, err error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, "", fmt.Errorf("%w: %w", reconcile.ErrProbeFailed, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, format, fmt.Errorf("%w: invalid dimensions %dx%d", reconcile.ErrProbeFailed, cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, format, nil
}

// Probe fetches the first bytes of key and decodes its dimensions.
// Every failure wraps reconcile.ErrProbeFailed.
func (p *Prober) Probe(ctx context.Context, key string) Result {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res := Result{Key: key}

	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(0, p.bytes-1); err != nil {
		res.Err = fmt.Errorf("%w: %w", reconcile.ErrProbeFailed, err)
		return res
	}

	obj, err := p.client.GetObject(ctx, p.bucket, key, opts)
	if err != nil {
		res.Err = fmt.Errorf("%w: fetch %s: %w", reconcile.ErrProbeFailed, key, err)
		return res
	}
	defer obj.Close()

	head, err := io.ReadAll(io.LimitReader(obj, p.bytes))
	if err != nil && len(head) == 0 {
		res.Err = fmt.Errorf("%w: read %s: %w", reconcile.ErrProbeFailed, key, err)
		return res
	}

	w, h, format, err := DecodeDimensions(bytes.NewReader(head))
	if err != nil {
		res.Err = err
		return res
	}

	res.Width, res.Height, res.Format = &w, &h, format
	return res
}

// ProbeAll probes every key with at most the configured number in flight.
// Results are returned in input order; failures are recorded per result and
// never stop the batch.
func (p *Prober) ProbeAll(ctx context.Context, keys []string) []Result {
	results := make([]Result, len(keys))

	var g errgroup.Group
	g.SetLimit(p.limit)

	for i, key := range keys {
		g.Go(func() error {
			results[i] = p.Probe(ctx, key)
			if err := results[i].Err; err != nil {
				p.logger.Warn("Dimension probe failed", zap.String("key", key), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
