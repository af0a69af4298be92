package backlog

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultTimeout  = 2 * time.Minute
	defaultPageSize = 100

	// The vendor caps the list endpoint's count parameter at 100.
	maxPageSize = 100
)

// Config holds the settings for a Client. SpaceDomain, APIKey and ProjectKey
// are required; the zero value of every other field selects a sensible
// default, except RequestInterval where zero disables throttling.
type Config struct {
	SpaceDomain string // e.g. "example.backlog.com"
	APIKey      string
	ProjectKey  string

	// BaseURL overrides the API base URL. Empty means
	// "https://{SpaceDomain}/api/v2"; tests point it at a local server.
	BaseURL string

	// SkipTLSVerify disables TLS certificate verification. For spaces
	// behind interception proxies with private CAs.
	SkipTLSVerify bool

	Timeout  time.Duration
	PageSize int

	// RequestInterval is the minimum delay between successive API calls.
	RequestInterval time.Duration
}

// Client is a Backlog Document API client. All requests are authenticated
// with the API key as a query parameter and issued sequentially, one in
// flight at a time.
type Client struct {
	spaceDomain string
	apiKey      string
	projectKey  string
	baseURL     string
	pageSize    int
	httpClient  *http.Client
	throttle    *throttle
}

// NewClient creates a Backlog API client from the given configuration.
func NewClient(cfg Config) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
	}
	if cfg.SkipTLSVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	pageSize := cfg.PageSize
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://" + cfg.SpaceDomain + "/api/v2"
	}

	return &Client{
		spaceDomain: cfg.SpaceDomain,
		apiKey:      cfg.APIKey,
		projectKey:  cfg.ProjectKey,
		baseURL:     baseURL,
		pageSize:    pageSize,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		throttle: &throttle{interval: cfg.RequestInterval},
	}
}

// SpaceDomain returns the configured space domain.
func (c *Client) SpaceDomain() string { return c.spaceDomain }

// ProjectKey returns the configured project key.
func (c *Client) ProjectKey() string { return c.projectKey }

// APIError is a non-success response from the Backlog API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// throttle enforces a minimum interval between successive API requests.
// The vendor rate-limits per space; one request per interval stays under it.
type throttle struct {
	interval time.Duration
	last     time.Time
}

func (t *throttle) wait() {
	if t.interval <= 0 {
		return
	}
	if sleep := t.interval - time.Since(t.last); sleep > 0 {
		time.Sleep(sleep)
	}
	t.last = time.Now()
}

// raw performs an authenticated GET and returns the response body and
// headers. Non-2xx responses become an *APIError carrying the status code
// and the body verbatim.
func (c *Client) raw(path string, params url.Values) ([]byte, http.Header, error) {
	c.throttle.wait()

	if params == nil {
		params = url.Values{}
	}
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequest(http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, resp.Header, nil
}

func (c *Client) get(path string, params url.Values, out any) error {
	body, _, err := c.raw(path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// ProjectID resolves the configured project key to its numeric id. The
// document list endpoint takes a numeric projectId only; the statuses
// endpoint is the cheapest call that returns it.
func (c *Client) ProjectID() (int, error) {
	var statuses []projectStatus
	if err := c.get("/projects/"+url.PathEscape(c.projectKey)+"/statuses", nil, &statuses); err != nil {
		return 0, fmt.Errorf("fetch project statuses: %w", err)
	}
	if len(statuses) == 0 {
		return 0, fmt.Errorf("no statuses found for project %q", c.projectKey)
	}
	return statuses[0].ProjectID, nil
}

// ListDocumentsPage retrieves a single page of document summaries starting
// at the given offset.
func (c *Client) ListDocumentsPage(projectID, offset, count int) ([]DocumentSummary, error) {
	params := url.Values{}
	params.Set("projectId[]", strconv.Itoa(projectID))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("count", strconv.Itoa(count))

	var page []DocumentSummary
	if err := c.get("/documents", params, &page); err != nil {
		return nil, fmt.Errorf("fetch documents at offset %d: %w", offset, err)
	}
	return page, nil
}

// ListDocuments retrieves every document of the project in server order,
// advancing the offset by the size of each full page until the server
// returns a short page. A failed page aborts the whole fetch; no partial
// result is returned.
func (c *Client) ListDocuments(projectID int) ([]DocumentSummary, error) {
	var docs []DocumentSummary
	offset := 0
	for {
		page, err := c.ListDocumentsPage(projectID, offset, c.pageSize)
		if err != nil {
			return nil, err
		}
		docs = append(docs, page...)
		if len(page) < c.pageSize {
			return docs, nil
		}
		offset += len(page)
	}
}

// GetDocument retrieves the full detail of one document, including its
// Markdown body and attachment list.
func (c *Client) GetDocument(documentID string) (*Document, error) {
	var doc Document
	if err := c.get("/documents/"+url.PathEscape(documentID), nil, &doc); err != nil {
		return nil, fmt.Errorf("fetch document %s: %w", documentID, err)
	}
	return &doc, nil
}

// DownloadAttachment retrieves the raw bytes of one attachment. The returned
// name comes from the Content-Disposition header when the server supplies
// one, otherwise it falls back to the attachment id.
func (c *Client) DownloadAttachment(documentID string, attachmentID int) ([]byte, string, error) {
	path := fmt.Sprintf("/documents/%s/attachments/%d", url.PathEscape(documentID), attachmentID)
	body, header, err := c.raw(path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("download attachment %d of document %s: %w", attachmentID, documentID, err)
	}

	name := filenameFromDisposition(header.Get("Content-Disposition"))
	if name == "" {
		name = strconv.Itoa(attachmentID)
	}
	return body, name, nil
}

// filenameFromDisposition extracts a filename from a Content-Disposition
// header. mime.ParseMediaType decodes both the plain filename= form and the
// RFC 5987 filename*= form the vendor uses for non-ASCII names.
func filenameFromDisposition(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}
