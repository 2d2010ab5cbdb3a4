package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/lostfound/internal/filter"
	"github.com/mdouchement/lostfound/internal/lferror"
	"github.com/mdouchement/lostfound/internal/model"
	"github.com/mdouchement/lostfound/internal/server/serializer"
	"github.com/mdouchement/lostfound/internal/service"
	"github.com/mdouchement/lostfound/internal/store"
	"github.com/mdouchement/lostfound/internal/upload"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// item contains all item handlers.
type item struct {
	store   *store.Store
	maxSize int64
}

///// List
////
//

// List returns the held items matching the category, location and date query params.
func (h *item) List(c echo.Context) error {
	criteria := model.Criteria{
		Category: c.QueryParam("category"),
		Location: c.QueryParam("location"),
		Date:     c.QueryParam("date"),
	}

	if criteria.Date != "" {
		date, err := model.NormalizeDate(criteria.Date)
		if err != nil {
			return lferror.NewWithTagCode(http.StatusBadRequest, "invalid-criteria", "Invalid date.")
		}
		criteria.Date = date
	}

	items := filter.Apply(h.store.Items(), criteria)
	return c.JSON(http.StatusOK, serializer.Items(items))
}

///// Report
////
//

// Report appends a new lost item.
// It accepts a JSON body or a multipart form with an optional `image` file.
func (h *item) Report(c echo.Context) error {
	var params service.ReportParams
	if err := c.Bind(&params); err != nil {
		if lferr, ok := err.(*lferror.Error); ok {
			return lferr
		}
		return c.JSON(http.StatusBadRequest, lferror.New("Could not get item params."))
	}

	var image *upload.Pending
	fh, err := c.FormFile("image")
	switch err {
	case nil:
		f, err := fh.Open()
		if err != nil {
			return errors.Wrap(err, "could not open uploaded image")
		}
		image = upload.Read(f, h.maxSize)
	case http.ErrMissingFile, http.ErrNotMultipart:
	default:
		return c.JSON(http.StatusBadRequest, lferror.New("Could not get uploaded image."))
	}

	report := service.NewReport(h.store, params, image, h.maxSize)
	if err := report.Execute(c.Request().Context()); err != nil {
		if verr, ok := errors.Cause(err).(*model.ValidationError); ok {
			return lferror.NewWithTagCode(http.StatusBadRequest, "invalid-item", verr.Error())
		}
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"item":    serializer.Item(report.Item()),
		"message": "Lost item reported!",
	})
}

///// Image
////
//

// Image renders the image of the item at the given index of the held items.
// The placeholder is rendered when the item has no usable image.
func (h *item) Image(c echo.Context) error {
	items := h.store.Items()

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index >= len(items) {
		return lferror.NewWithTagCode(http.StatusNotFound, "item-not-found", "No such item.")
	}

	uri := items[index].Image
	if uri == "" {
		return blob(c, PlaceholderContentType, placeholder)
	}

	data, mediatype, err := upload.Decode(uri)
	if err != nil {
		c.Logger().Debugf("Unusable image for item %d: %s", index, err)
		return blob(c, PlaceholderContentType, placeholder)
	}

	return blob(c, mediatype, data)
}

// blob renders data with an ETag, answering 304 when the client already has it.
func blob(c echo.Context, ctype string, data []byte) error {
	etag := fmt.Sprintf(`"%x"`, blake2b.Sum256(data))
	c.Response().Header().Set("ETag", etag)

	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.Blob(http.StatusOK, ctype, data)
}
