package googlebooks

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	domainerrors "github.com/booknest/booknest-server/internal/errors"
)

// isbnPattern accepts the two valid lengths after separators are stripped.
var isbnPattern = regexp.MustCompile(`^\d{10}$|^\d{13}$`)

// yearPattern extracts the leading four-digit year from a published date,
// which the API returns as "2006", "2006-07", or "2006-07-15".
var yearPattern = regexp.MustCompile(`^\d{4}`)

// NormalizeISBN strips hyphens and spaces and validates the digit count.
func NormalizeISBN(raw string) (string, error) {
	cleaned := strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(raw))
	if !isbnPattern.MatchString(cleaned) {
		return "", domainerrors.Validationf("invalid ISBN %q: must be 10 or 13 digits", raw)
	}
	return cleaned, nil
}

// LookupISBN fetches volume metadata for an ISBN and maps it to a record
// draft. Returns a validation error for a malformed ISBN, a not-found error
// when the API has no matching volume, and an upstream error when the API
// call itself fails.
func (c *Client) LookupISBN(ctx context.Context, rawISBN string) (*Draft, error) {
	isbn, err := NormalizeISBN(rawISBN)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	draft, err := c.lookupVolume(ctx, isbn)
	c.metrics.ObserveMetadataLookup(lookupOutcome(err), time.Since(start))
	return draft, err
}

// lookupOutcome classifies a lookup result for the latency histogram.
func lookupOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domainerrors.ErrNotFound):
		return "not_found"
	default:
		return "upstream_error"
	}
}

func (c *Client) lookupVolume(ctx context.Context, isbn string) (*Draft, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("q", "isbn:"+isbn)
	lookupURL := c.baseURL + "/volumes?" + params.Encode()

	c.logger.Debug("looking up ISBN", "isbn", isbn, "url", lookupURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.Upstream("book metadata service unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domainerrors.Upstreamf("book metadata service returned status %d", resp.StatusCode)
	}

	var volumes volumesResponse
	if err := json.UnmarshalRead(resp.Body, &volumes); err != nil {
		return nil, domainerrors.Upstream("malformed book metadata response").WithCause(err)
	}

	if len(volumes.Items) == 0 {
		return nil, domainerrors.NotFoundf("no book found for ISBN %s", isbn)
	}

	draft := draftFromVolume(&volumes.Items[0].VolumeInfo, isbn)

	c.logger.Debug("ISBN lookup succeeded",
		"isbn", isbn,
		"title", draft.Title,
	)

	return draft, nil
}

// draftFromVolume maps volume metadata onto a record draft. The first listed
// author is split on its final token into first and last name.
func draftFromVolume(info *volumeInfo, isbn string) *Draft {
	draft := &Draft{
		Title: info.Title,
		ISBN:  isbn,
	}

	if len(info.Authors) > 0 {
		draft.AuthorFirstName, draft.AuthorLastName = splitAuthor(info.Authors[0])
	}

	if year := yearPattern.FindString(info.PublishedDate); year != "" {
		draft.PublicationYear, _ = strconv.Atoi(year)
	}

	if info.ImageLinks.Thumbnail != "" {
		draft.ImagePath = info.ImageLinks.Thumbnail
	} else {
		draft.ImagePath = coverFallbackURL(isbn)
	}

	return draft
}

// splitAuthor splits a display name into first and last parts on the final
// space. Single-token names become the last name.
func splitAuthor(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return "", name
	}
	return strings.TrimSpace(name[:idx]), name[idx+1:]
}

// coverFallbackURL builds an Open Library cover URL for volumes that carry
// no thumbnail.
func coverFallbackURL(isbn string) string {
	return "https://covers.openlibrary.org/b/isbn/" + isbn + "-L.jpg"
}
