package registry

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/packship/pkg/errors"
	"github.com/arthur-debert/packship/pkg/logging"
)

// Client publishes packages over HTTP. Uploads are a single multipart PUT to
// {base}/{namespace}/{name}/versions/{version}.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a registry client for baseURL. authToken may be empty
// for registries that allow anonymous publishing.
func NewClient(baseURL, authToken string) *Client {
	return &Client{
		baseURL:    baseURL,
		authToken:  authToken,
		httpClient: http.DefaultClient,
		logger:     logging.GetLogger("registry"),
	}
}

// Publish implements the Publisher capability
func (c *Client) Publish(namespace, name, version string, description, tarball, readme io.Reader, readmeExt string) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUpload(mw, description, tarball, readme, readmeExt))
	}()

	target := fmt.Sprintf("%s/%s/%s/versions/%s",
		c.baseURL, url.PathEscape(namespace), url.PathEscape(name), url.PathEscape(version))

	req, err := http.NewRequest(http.MethodPut, target, pr)
	if err != nil {
		return errors.Wrap(err, errors.ErrRegistryPublish, "cannot build publish request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	c.logger.Info().Str("name", name).Str("version", version).Str("namespace", namespace).Msg("publishing")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.ErrRegistryPublish, "publish request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.Newf(errors.ErrRegistryPublish, "registry rejected %s@%s: %s: %s",
			name, version, resp.Status, string(body))
	}
	return nil
}

// writeUpload streams the three upload parts into the multipart writer
func writeUpload(mw *multipart.Writer, description, tarball, readme io.Reader, readmeExt string) error {
	part, err := mw.CreateFormFile("metadata", "module.json")
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, description); err != nil {
		return err
	}

	part, err = mw.CreateFormFile("tarball", "upload.tar.gz")
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, tarball); err != nil {
		return err
	}

	part, err = mw.CreateFormFile("readme", "readme"+readmeExt)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, readme); err != nil {
		return err
	}

	return mw.Close()
}
