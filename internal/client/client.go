// Package client talks to the adventofcode.com grading service: fetching
// puzzle instructions and input (with file caching beside the solution)
// and submitting answers. One call per operation, no retries.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/html"

	"advent/internal/logging"
	"advent/internal/puzzle"
)

// Client is an authenticated adventofcode.com client. Fetched artifacts
// are cached under the puzzle's directory in the repository.
type Client struct {
	baseURL string
	session string
	repo    string
	client  *http.Client
}

// New creates a client. baseURL is normally config.DefaultBaseURL; repo is
// the solutions repository root used for caching.
func New(baseURL, session, repo string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		repo:    repo,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchInstructions returns the puzzle's instructions article HTML,
// reading the cache unless overwrite is set. After a correct part-one
// submission the caller re-fetches with overwrite to pick up part two.
func (c *Client) FetchInstructions(ctx context.Context, id puzzle.ID, overwrite bool) (string, error) {
	cachePath := filepath.Join(c.repo, filepath.FromSlash(id.InstructionsPath()))
	if !overwrite {
		if data, err := os.ReadFile(cachePath); err == nil {
			logging.FetchDebug("instructions cache hit: %s", cachePath)
			return string(data), nil
		}
	}

	page, err := c.get(ctx, fmt.Sprintf("%s/%d/day/%d", c.baseURL, id.Year, id.Day))
	if err != nil {
		return "", fmt.Errorf("failed to fetch instructions for %s: %w", id, err)
	}
	article := extractMain(page)

	if err := writeCache(cachePath, article); err != nil {
		return "", err
	}
	logging.Fetch("fetched instructions for %s (%d bytes)", id, len(article))
	return article, nil
}

// FetchInput returns the puzzle's real input, reading the cache if present.
func (c *Client) FetchInput(ctx context.Context, id puzzle.ID) (string, error) {
	cachePath := filepath.Join(c.repo, filepath.FromSlash(id.InputPath()))
	if data, err := os.ReadFile(cachePath); err == nil {
		logging.FetchDebug("input cache hit: %s", cachePath)
		return string(data), nil
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/%d/day/%d/input", c.baseURL, id.Year, id.Day))
	if err != nil {
		return "", fmt.Errorf("failed to fetch input for %s: %w", id, err)
	}

	if err := writeCache(cachePath, body); err != nil {
		return "", err
	}
	logging.Fetch("fetched input for %s (%d bytes)", id, len(body))
	return body, nil
}

// Submit posts an answer for the given part and returns the response
// article as plain text for classification.
func (c *Client) Submit(ctx context.Context, id puzzle.ID, part int, answer string) (string, error) {
	form := url.Values{
		"level":  {fmt.Sprintf("%d", part)},
		"answer": {answer},
	}
	endpoint := fmt.Sprintf("%s/%d/day/%d/answer", c.baseURL, id.Year, id.Day)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.addSession(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("submission request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("grading service returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	logging.Submit("submitted %s part %d", id, part)
	return ArticleText(string(body)), nil
}

func (c *Client) get(ctx context.Context, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	c.addSession(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("service returned status %d for %s", resp.StatusCode, endpoint)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}

func (c *Client) addSession(req *http.Request) {
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: c.session})
	}
}

func writeCache(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// extractMain returns the inner HTML of the page's <main> element, or the
// whole page if none is found (already-extracted cache entries round-trip).
func extractMain(page string) string {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return page
	}
	node := findElement(doc, "main")
	if node == nil {
		return page
	}
	var b strings.Builder
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

// ArticleText returns the plain text of the first <article> in the given
// HTML, or the text of the whole document if there is none.
func ArticleText(page string) string {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return page
	}
	node := findElement(doc, "article")
	if node == nil {
		node = doc
	}
	return strings.TrimSpace(nodeText(node))
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && (n.Data == "p" || n.Data == "br") {
			defer b.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
