package obr

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httputil"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// diskCache is an http.RoundTripper keeping successful GET responses on disk.
//
// Workbooks are immutable publications: entries never expire. Delete the cache
// directory to force a new download.
type diskCache struct {
	base http.RoundTripper
	dir  string
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return c.base.RoundTrip(req)
	}
	filename := c.entry(req)

	if resp, err := readEntry(filename, req); err == nil {
		log.Debug().Str("url", req.URL.String()).Str("file", filename).Msg("workbook cache hit")
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Info().Str("host", req.URL.Host).Str("path", req.URL.Path).Str("status", resp.Status).Msg("workbook downloaded")
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}
	if err := writeEntry(filename, resp); err != nil {
		log.Warn().Err(err).Str("file", filename).Msg("cannot cache workbook (ignored)")
	}
	return resp, nil
}

// entry returns the cache file of req, "obr-<url hash>-<workbook name>".
func (c *diskCache) entry(req *http.Request) string {
	sum := sha1.Sum([]byte(req.URL.String()))
	name := path.Base(req.URL.Path)
	if name == "." || name == "/" {
		name = "index"
	}
	name = strings.NewReplacer(string(os.PathSeparator), "_", ":", "_").Replace(name)
	return filepath.Join(c.dir, "obr-"+hex.EncodeToString(sum[:6])+"-"+name)
}

// readEntry returns the response stored in filename.
func readEntry(filename string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// writeEntry stores resp in filename. The response body remains readable.
func writeEntry(filename string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	// a concurrent reader must never see a partial entry.
	tmp, err := os.CreateTemp(dir, "obr-*.part")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filename)
}
