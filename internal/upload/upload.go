package upload

import (
	"context"
	"io"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"
)

// DefaultMaxSize is the default maximum size of an uploaded image.
const DefaultMaxSize = 5 << 20

var (
	// ErrNotImage is returned when the uploaded content is not an image.
	ErrNotImage = errors.New("not an image")
	// ErrTooLarge is returned when the uploaded content exceeds the size limit.
	ErrTooLarge = errors.New("image too large")
)

// A Pending is a single-shot conversion of an image into a data URI.
// It resolves once, to the data URI or to a read error. It cannot be canceled.
type Pending struct {
	done chan struct{}
	uri  string
	err  error
}

// Read starts reading r into a data URI.
// r is closed once read if it implements io.Closer.
func Read(r io.Reader, limit int64) *Pending {
	p := &Pending{done: make(chan struct{})}

	go func() {
		defer close(p.done)
		if c, ok := r.(io.Closer); ok {
			defer c.Close()
		}

		p.uri, p.err = encode(r, limit)
	}()

	return p
}

// Open starts reading the given file into a data URI.
func Open(filename string, limit int64) *Pending {
	f, err := os.Open(filename)
	if err != nil {
		return Failed(errors.Wrap(err, "could not open image"))
	}
	return Read(f, limit)
}

// Resolved returns an already resolved Pending.
func Resolved(uri string) *Pending {
	p := &Pending{done: make(chan struct{}), uri: uri}
	close(p.done)
	return p
}

// Failed returns an already failed Pending.
func Failed(err error) *Pending {
	p := &Pending{done: make(chan struct{}), err: err}
	close(p.done)
	return p
}

// Wait blocks until the conversion is over or ctx is done.
func (p *Pending) Wait(ctx context.Context) (string, error) {
	select {
	case <-p.done:
		return p.uri, p.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Parse checks an already encoded data URI like an uploaded file.
// The media type is sniffed from the content, the declared one is ignored.
func Parse(uri string, limit int64) *Pending {
	du, err := dataurl.DecodeString(uri)
	if err != nil {
		return Failed(ErrNotImage)
	}

	mediatype, err := check(du.Data, limit)
	if err != nil {
		return Failed(err)
	}
	return Resolved(dataurl.New(du.Data, mediatype).String())
}

// Decode returns the content and the media type of an image data URI.
func Decode(uri string) ([]byte, string, error) {
	du, err := dataurl.DecodeString(uri)
	if err != nil {
		return nil, "", errors.Wrap(err, "could not decode data URI")
	}

	mediatype := du.ContentType()
	if !strings.HasPrefix(mediatype, "image/") {
		return nil, "", ErrNotImage
	}
	return du.Data, mediatype, nil
}

func encode(r io.Reader, limit int64) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxSize
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", errors.Wrap(err, "could not read image")
	}

	mediatype, err := check(data, limit)
	if err != nil {
		return "", err
	}
	return dataurl.New(data, mediatype).String(), nil
}

// check returns the sniffed media type of data.
func check(data []byte, limit int64) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	if int64(len(data)) > limit {
		return "", ErrTooLarge
	}

	mediatype, _, err := mime.ParseMediaType(http.DetectContentType(data))
	if err != nil || !strings.HasPrefix(mediatype, "image/") {
		return "", ErrNotImage
	}
	return mediatype, nil
}
