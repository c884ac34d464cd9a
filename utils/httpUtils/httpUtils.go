package httpUtils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/Brawl345/pexelsbot/logger"
	"github.com/Brawl345/pexelsbot/utils"
	"github.com/goccy/go-json"
)

const (
	MethodGet  = http.MethodGet
	MethodPost = http.MethodPost

	// Only this much of an error body ends up in HttpError.Body
	maxErrorBodyLength = 512
)

var (
	log               = logger.New("httpUtils")
	DefaultHttpClient *http.Client
)

func init() {
	DefaultHttpClient = createHTTPClient()
}

func createHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = 7 * time.Second
	transport.ResponseHeaderTimeout = 15 * time.Second
	transport.MaxIdleConnsPerHost = 20
	transport.IdleConnTimeout = 5 * time.Minute

	client := &http.Client{
		Transport: transport,
	}

	return client
}

type RequestOptions struct {
	Method   string
	URL      string
	Headers  map[string]string
	Body     any // JSON-encoded unless it is an io.Reader
	Response any // JSON-decoded into when non-nil
	Timeout  time.Duration
	Client   *http.Client
}

func MakeRequest(ctx context.Context, opts RequestOptions) error {
	log.Debug().
		Str("method", opts.Method).
		Str("url", opts.URL).
		Send()

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var reqBody io.Reader
	isJson := false
	switch v := opts.Body.(type) {
	case nil:
	case io.Reader:
		reqBody = v
	default:
		jsonData, err := json.Marshal(v)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(jsonData)
		isJson = true
	}

	method := opts.Method
	if method == "" {
		method = MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, opts.URL, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", utils.UserAgent)
	if isJson {
		req.Header.Set("Content-Type", "application/json")
	}

	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	httpClient := DefaultHttpClient
	if opts.Client != nil {
		httpClient = opts.Client
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}

	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			log.Err(err).Msg("Failed to close response body")
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength))
		return &HttpError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	if opts.Response == nil {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, opts.Response); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	log.Debug().
		Str("url", opts.URL).
		Interface("result", opts.Response).
		Send()
	return nil
}
