package liblf

import (
	"encoding/json"
	"fmt"
	"io"
)

// An LFError reprensents an HTTP error returned by lostfound server.
type LFError struct {
	StatusCode int
	Err        struct {
		Tag     string `json:"tag"`
		Message string `json:"message"`
	} `json:"error"`
}

func parseLFError(r io.Reader, code int) error {
	var lferr LFError
	dec := json.NewDecoder(r)
	if err := dec.Decode(&lferr); err != nil {
		return fmt.Errorf("unexpected response (status %d)", code)
	}
	lferr.StatusCode = code
	return &lferr
}

func (e *LFError) Error() string {
	return e.Err.Message
}
