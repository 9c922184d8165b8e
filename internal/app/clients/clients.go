// Package clients holds the JSON-over-HTTP plumbing shared by the upstream
// itinerary services.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"

	"github.com/pkg/errors"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

// maxErrorBody caps how much of a failed response body is kept.
const maxErrorBody = 2048

// Request describes one JSON call.
type Request struct {
	Service string
	Method  string
	URL     string
	Header  http.Header
	Body    any
}

// Do sends the request and returns the raw 2xx body. Failures are mapped
// onto the tier error kinds: ErrTimeout, ErrNetwork or *models.StatusError.
// A cancelled ctx is returned as context.Canceled.
func Do(ctx context.Context, hc *http.Client, r Request) ([]byte, error) {
	var body io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal %s request body", r.Service)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s request", r.Service)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, Classify(ctx, r.Service, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Classify(ctx, r.Service, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		return nil, &models.StatusError{Service: r.Service, StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

// Classify maps a transport failure onto ErrTimeout or ErrNetwork.
func Classify(ctx context.Context, service string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return errors.Wrapf(context.Canceled, "%s request abandoned", service)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return errors.Wrapf(models.ErrTimeout, "%s: %v", service, err)
	}
	return errors.Wrapf(models.ErrNetwork, "%s: %v", service, err)
}
