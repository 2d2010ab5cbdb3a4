package liblf

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

type (
	// A Client defines all interactions that can be performed on a lostfound server.
	Client interface {
		// Version returns the version of the server.
		Version() (string, error)
		// ListItems returns the held items matching the given criteria.
		ListItems(c Criteria) ([]Item, error)
		// Report declares a lost item and returns the stored item.
		Report(r Report) (*Item, error)
		// Image returns the image of the item at the given index and its content type.
		Image(index int) ([]byte, string, error)
	}

	client struct {
		http     *http.Client
		endpoint string
	}
)

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(endpoint string) (Client, error) {
	return NewClient(http.DefaultClient, endpoint)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string) (Client, error) {
	_, err := url.Parse(endpoint)
	return &client{endpoint: endpoint, http: c}, errors.Wrap(err, "could not parse endpoint")
}

func (c *client) Version() (string, error) {
	var v struct {
		Version string `json:"version"`
	}
	err := c.get("/version", nil, &v)
	return v.Version, err
}

func (c *client) ListItems(criteria Criteria) ([]Item, error) {
	query := url.Values{}
	if criteria.Category != "" {
		query.Set("category", criteria.Category)
	}
	if criteria.Location != "" {
		query.Set("location", criteria.Location)
	}
	if criteria.Date != "" {
		query.Set("date", criteria.Date)
	}

	var v struct {
		Items []Item `json:"items"`
	}
	err := c.get("/items", query, &v)
	return v.Items, err
}

func (c *client) Report(r Report) (*Item, error) {
	u, err := c.url("/items", nil)
	if err != nil {
		return nil, err
	}

	//
	// Build request
	body, ctype, err := form(r)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, u, body)
	if err != nil {
		return nil, errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", ctype)
	req.Header.Add("Accept", "application/json")

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, parseLFError(res.Body, res.StatusCode)
	}

	//
	// Process response
	var v struct {
		Item Item `json:"item"`
	}
	dec := json.NewDecoder(res.Body)
	return &v.Item, errors.Wrap(dec.Decode(&v), "could not parse response")
}

func (c *client) Image(index int) ([]byte, string, error) {
	u, err := c.url(path.Join("/items", strconv.Itoa(index), "image"), nil)
	if err != nil {
		return nil, "", err
	}

	res, err := c.http.Get(u)
	if err != nil {
		return nil, "", errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, "", parseLFError(res.Body, res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	return data, res.Header.Get("Content-Type"), errors.Wrap(err, "could not read image")
}

func (c *client) url(p string, query url.Values) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, p)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

func (c *client) get(p string, query url.Values, v any) error {
	u, err := c.url(p, query)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return parseLFError(res.Body, res.StatusCode)
	}

	dec := json.NewDecoder(res.Body)
	return errors.Wrap(dec.Decode(v), "could not parse response")
}

func form(r Report) (io.Reader, string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := [][2]string{
		{"name", r.Name},
		{"category", r.Category},
		{"location", r.Location},
		{"date", r.Date},
		{"description", r.Description},
	}
	for _, field := range fields {
		if err := w.WriteField(field[0], field[1]); err != nil {
			return nil, "", errors.Wrap(err, "could not write form")
		}
	}

	if r.ImagePath != "" {
		f, err := os.Open(r.ImagePath)
		if err != nil {
			return nil, "", errors.Wrap(err, "could not open image")
		}
		defer f.Close()

		part, err := w.CreateFormFile("image", filepath.Base(r.ImagePath))
		if err != nil {
			return nil, "", errors.Wrap(err, "could not write form")
		}
		if _, err = io.Copy(part, f); err != nil {
			return nil, "", errors.Wrap(err, "could not copy image")
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "could not write form")
	}
	return &body, w.FormDataContentType(), nil
}
