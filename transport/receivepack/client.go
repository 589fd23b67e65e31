// Package receivepack implements the smart-HTTP "receive-pack" client used
// by `picogit push` (spec.md §4.E): a GET to learn the remote branch tip, a
// POST carrying a ref-update command and a pack stream, and a parse of the
// resulting status report.
package receivepack

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goabstract/picogit/ginternals/githash"
	"github.com/goabstract/picogit/transport/pktline"
)

const branchRefPrefix = "refs/heads/"

var (
	// ErrProtocolViolation is returned when the remote's response doesn't
	// match the smart-HTTP receive-pack conventions this client expects.
	ErrProtocolViolation = errors.New("receive-pack protocol violation")
	// ErrHTTPFailure is returned when the HTTP round-trip itself fails, or
	// the remote responds with a non-2xx status.
	ErrHTTPFailure = errors.New("receive-pack HTTP request failed")
)

// Client talks to one remote repository's receive-pack endpoint over HTTP,
// authenticating every request with the same username/password pair
// (spec.md §4.E: "no credential caching across invocations" — this Client
// is built fresh per push, it just doesn't re-prompt per request).
type Client struct {
	HTTPClient *http.Client
	URL        string
	Username   string
	Password   string
	Branch     string
}

// New returns a Client for url's "<branch>" receive-pack endpoint.
func New(url, branch, username, password string) *Client {
	return &Client{
		HTTPClient: http.DefaultClient,
		URL:        url,
		Username:   username,
		Password:   password,
		Branch:     branch,
	}
}

// RemoteTip performs the info/refs advertisement GET and returns the
// remote's current tip for c.Branch, or githash.NullOid if the branch has
// no commits on the remote yet.
func (c *Client) RemoteTip() (githash.Oid, error) {
	req, err := http.NewRequest(http.MethodGet, c.URL+"/info/refs?service=git-receive-pack", nil)
	if err != nil {
		return githash.NullOid, fmt.Errorf("could not build info/refs request: %w", err)
	}
	req.SetBasicAuth(c.Username, c.Password)

	body, err := c.do(req)
	if err != nil {
		return githash.NullOid, err
	}

	lines, err := pktline.ExtractLines(body)
	if err != nil {
		return githash.NullOid, fmt.Errorf("could not parse ref advertisement: %w", err)
	}
	if len(lines) < 3 {
		return githash.NullOid, fmt.Errorf("expected at least 3 pkt-lines, got %d: %w", len(lines), ErrProtocolViolation)
	}
	if string(lines[0]) != "# service=git-receive-pack\n" {
		return githash.NullOid, fmt.Errorf("unexpected service line %q: %w", lines[0], ErrProtocolViolation)
	}
	if len(lines[1]) != 0 {
		return githash.NullOid, fmt.Errorf("expected a flush as line 1, got %q: %w", lines[1], ErrProtocolViolation)
	}

	ref := lines[2]
	sha1AndRest := bytes.SplitN(ref, []byte{0}, 2)
	fields := bytes.Fields(sha1AndRest[0])
	if len(fields) != 2 {
		return githash.NullOid, fmt.Errorf("malformed ref line %q: %w", ref, ErrProtocolViolation)
	}

	sha1, refName := fields[0], string(fields[1])
	if refName != branchRefPrefix+c.Branch {
		return githash.NullOid, fmt.Errorf("expected branch %s, remote advertised %s: %w", c.Branch, refName, ErrProtocolViolation)
	}
	if bytes.Equal(sha1, bytes.Repeat([]byte{'0'}, githash.OidSize*2)) {
		return githash.NullOid, nil
	}

	tip, err := githash.NewFromChars(sha1)
	if err != nil {
		return githash.NullOid, fmt.Errorf("invalid remote tip %q: %w", sha1, ErrProtocolViolation)
	}
	return tip, nil
}

// Push uploads pack (the serialized contents of the missing object set) and
// requests that c.Branch be advanced from remoteTip to localTip.
func (c *Client) Push(remoteTip, localTip githash.Oid, pack []byte) error {
	remote := remoteTip.String()
	if remoteTip.IsZero() {
		remote = fmt.Sprintf("%040x", 0)
	}
	cmd := []byte(fmt.Sprintf("%s %s %s%s\x00 report-status", remote, localTip, branchRefPrefix, c.Branch))

	body := append(pktline.BuildLinesData([][]byte{cmd}), pack...)

	req, err := http.NewRequest(http.MethodPost, c.URL+"/git-receive-pack", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not build receive-pack request: %w", err)
	}
	req.SetBasicAuth(c.Username, c.Password)
	req.Header.Set("Content-Type", "application/x-git-receive-pack-request")

	respBody, err := c.do(req)
	if err != nil {
		return err
	}

	lines, err := pktline.ExtractLines(respBody)
	if err != nil {
		return fmt.Errorf("could not parse receive-pack response: %w", err)
	}
	if len(lines) < 2 {
		return fmt.Errorf("expected at least 2 response lines, got %d: %w", len(lines), ErrProtocolViolation)
	}
	if string(lines[0]) != "unpack ok\n" {
		return fmt.Errorf("unpack failed: %q: %w", lines[0], ErrProtocolViolation)
	}
	wantOK := fmt.Sprintf("ok %s%s\n", branchRefPrefix, c.Branch)
	if string(lines[1]) != wantOK {
		return fmt.Errorf("branch update failed: %q: %w", lines[1], ErrProtocolViolation)
	}
	return nil
}

func (c *Client) do(req *http.Request) (_ []byte, err error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", req.Method, req.URL, err, ErrHTTPFailure)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close response body: %w", cerr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s: status %d: %w", req.Method, req.URL, resp.StatusCode, ErrHTTPFailure)
	}
	return body, nil
}
