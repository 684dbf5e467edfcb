// Package loader resolves the active dataset source and parses it into
// indicator records.
package loader

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/peter890821/esg-eval-dashboard/internal/model"
)

// Options configures the dataset loader.
type Options struct {
	PrimaryURL  string
	FallbackURL string
	Timeout     time.Duration
}

// Loader retrieves the indicator dataset, preferring the primary
// resource and substituting the fallback on any retrieval or parse
// failure. There is no third attempt.
type Loader struct {
	client *http.Client
	opts   Options
}

// New creates a Loader with the given options.
func New(opts Options) *Loader {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Loader{
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
	}
}

// Load fetches and parses the dataset, returning the URL that served
// it. On primary failure it tries the fallback once; if both fail the
// error is terminal for the session and the caller must surface it as a
// visible error state.
func (l *Loader) Load(ctx context.Context) ([]model.Record, string, error) {
	records, err := l.fetch(ctx, l.opts.PrimaryURL)
	if err == nil {
		return records, l.opts.PrimaryURL, nil
	}
	zap.L().Warn("primary dataset failed, trying fallback",
		zap.String("primary", l.opts.PrimaryURL),
		zap.Error(err),
	)

	records, fbErr := l.fetch(ctx, l.opts.FallbackURL)
	if fbErr != nil {
		return nil, "", eris.Wrapf(fbErr, "loader: both sources failed (primary: %v)", err)
	}
	return records, l.opts.FallbackURL, nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]model.Record, error) {
	if rawURL == "" {
		return nil, eris.New("loader: no url configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "loader: create request")
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: get %s", rawURL)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("loader: unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	return Decode(resp.Body)
}

// LoadFile parses a local dataset file with the same rules as a remote
// resource. Used by the export and suggest commands.
func LoadFile(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	return Decode(f)
}

// Decode parses a JSON record sequence and drops entries whose id does
// not match the indicator code pattern. Dropping is expected filtering
// of interleaved section headers, not an error.
func Decode(r io.Reader) ([]model.Record, error) {
	var raw []model.Record
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, eris.Wrap(err, "loader: decode records")
	}

	records := make([]model.Record, 0, len(raw))
	dropped := 0
	for _, rec := range raw {
		if !rec.IsIndicator() {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	if dropped > 0 {
		zap.L().Debug("dropped non-indicator entries", zap.Int("count", dropped))
	}

	return records, nil
}
