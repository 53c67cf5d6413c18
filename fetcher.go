package netrand

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// BlockSize is the number of random bytes requested from a provider per
// fetch, independent of how many bytes the caller ultimately needs.
const BlockSize = 1024

// A Fetcher retrieves one block of raw random bytes from a remote provider.
// A failed or unparseable request yields an error; there are no retries at
// this level.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

const defaultFetchTimeout = 10 * time.Second

// Shared by the built-in fetchers, so all sources reuse one connection pool.
var defaultHTTPClient = &http.Client{Timeout: defaultFetchTimeout}

func httpGet(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// hotBitsFetcher reads radioactive-decay bytes from Fourmilab's HotBits
// service, which returns hex digit pairs broken across lines.
type hotBitsFetcher struct {
	client *http.Client
	url    string
}

func newHotBitsFetcher() *hotBitsFetcher {
	return &hotBitsFetcher{
		client: defaultHTTPClient,
		url:    fmt.Sprintf("https://www.fourmilab.ch/cgi-bin/Hotbits?nbytes=%d&fmt=hex", BlockSize),
	}
}

func (f *hotBitsFetcher) Fetch(ctx context.Context) ([]byte, error) {
	body, err := httpGet(ctx, f.client, f.url)
	if err != nil {
		return nil, errors.Wrap(err, "hotbits")
	}
	out, err := parseHexBytes(body)
	if err != nil {
		return nil, errors.Wrap(err, "hotbits: decoding response")
	}
	return out, nil
}

// parseHexBytes decodes a body of hex digit pairs, ignoring whitespace.
func parseHexBytes(body []byte) ([]byte, error) {
	compact := make([]byte, 0, len(body))
	for _, c := range body {
		switch c {
		case ' ', '\n', '\r', '\t':
		default:
			compact = append(compact, c)
		}
	}
	out := make([]byte, hex.DecodedLen(len(compact)))
	if _, err := hex.Decode(out, compact); err != nil {
		return nil, err
	}
	return out, nil
}

// Quota handling for random.org: the service rations callers through a shared
// buffer, and asks clients to back off when it runs low.
const (
	quotaLowWater = 20
	quotaPause    = 10 * time.Second
)

// randomOrgFetcher reads atmospheric-noise bytes from random.org. The byte
// endpoint returns whitespace-separated decimal values; the quota endpoint
// returns the buffer fill percentage. A low quota delays the fetch, it does
// not abort it.
type randomOrgFetcher struct {
	client   *http.Client
	url      string
	quotaURL string
	sleep    func(time.Duration)
}

func newRandomOrgFetcher() *randomOrgFetcher {
	return &randomOrgFetcher{
		client:   defaultHTTPClient,
		url:      fmt.Sprintf("https://www.random.org/cgi-bin/randbyte?nbytes=%d&format=d", BlockSize),
		quotaURL: "https://www.random.org/cgi-bin/checkbuf",
		sleep:    time.Sleep,
	}
}

func (f *randomOrgFetcher) Fetch(ctx context.Context) ([]byte, error) {
	// A failed quota check is not fatal; we just skip the courtesy pause.
	if level, err := f.quota(ctx); err == nil && level < quotaLowWater {
		f.sleep(quotaPause)
	}
	body, err := httpGet(ctx, f.client, f.url)
	if err != nil {
		return nil, errors.Wrap(err, "random.org")
	}
	return parseDecimalBytes(body)
}

func (f *randomOrgFetcher) quota(ctx context.Context) (int, error) {
	body, err := httpGet(ctx, f.client, f.quotaURL)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(body)))
}

func parseDecimalBytes(body []byte) ([]byte, error) {
	fields := strings.Fields(string(body))
	out := make([]byte, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseUint(field, 10, 8)
		if err != nil {
			return nil, errors.Wrapf(err, "random.org: bad byte value %q", field)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

// qrngFetcher reads quantum-vacuum bytes from ANU's QRNG JSON API.
type qrngFetcher struct {
	client *http.Client
	url    string
}

func newQRNGFetcher() *qrngFetcher {
	return &qrngFetcher{
		client: defaultHTTPClient,
		url:    fmt.Sprintf("https://qrng.anu.edu.au/API/jsonI.php?length=%d&type=uint8", BlockSize),
	}
}

type qrngResponse struct {
	Data    []int `json:"data"`
	Success bool  `json:"success"`
}

func (f *qrngFetcher) Fetch(ctx context.Context) ([]byte, error) {
	body, err := httpGet(ctx, f.client, f.url)
	if err != nil {
		return nil, errors.Wrap(err, "qrng")
	}
	var resp qrngResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "qrng: decoding response")
	}
	if !resp.Success {
		return nil, errors.New("qrng: service reported failure")
	}
	out := make([]byte, 0, len(resp.Data))
	for _, v := range resp.Data {
		if v < 0 || v > 255 {
			return nil, errors.Errorf("qrng: byte value %d out of range", v)
		}
		out = append(out, byte(v))
	}
	return out, nil
}
