package service

import (
	"context"

	"github.com/mdouchement/lostfound/internal/model"
	"github.com/mdouchement/lostfound/internal/store"
	"github.com/mdouchement/lostfound/internal/upload"
	"github.com/pkg/errors"
)

type (
	// A ReportParams holds the submitted form of a lost item.
	// Image is an already encoded data URI, an uploaded file is given to NewReport instead.
	ReportParams struct {
		Name        string `json:"name"        form:"name"`
		Category    string `json:"category"    form:"category"`
		Location    string `json:"location"    form:"location"`
		Date        string `json:"date"        form:"date"`
		Description string `json:"description" form:"description"`
		Image       string `json:"image"       form:"image"`
	}

	// A ReportService is a service used for reporting a lost item.
	ReportService interface {
		// Execute validates the report and appends the new item to the store.
		Execute(ctx context.Context) error
		// Item returns the appended item.
		Item() model.Item
	}

	reportService struct {
		store  *store.Store
		params ReportParams
		image  *upload.Pending
		limit  int64
		item   model.Item
	}
)

// NewReport instantiates a new Report service.
// image may be nil when no file has been uploaded.
// limit is the maximum image size in bytes, applied to the data URI of params too.
func NewReport(s *store.Store, params ReportParams, image *upload.Pending, limit int64) ReportService {
	return &reportService{
		store:  s,
		params: params,
		image:  image,
		limit:  limit,
	}
}

func (s *reportService) Execute(ctx context.Context) error {
	item := model.Item{
		Name:        s.params.Name,
		Category:    s.params.Category,
		Location:    s.params.Location,
		Date:        s.params.Date,
		Description: s.params.Description,
	}

	verr := new(model.ValidationError)
	if err := item.Validate(); err != nil {
		verr = err.(*model.ValidationError)
	}

	image, err := s.resolveImage(ctx)
	if err != nil {
		if errors.Cause(err) != upload.ErrNotImage && errors.Cause(err) != upload.ErrTooLarge {
			return errors.Wrap(err, "could not read image")
		}
		verr.Add("image", err.Error())
	}

	if len(verr.Fields) > 0 {
		return verr
	}

	item.Image = image
	s.store.Append(item)
	s.item = item
	return nil
}

func (s *reportService) Item() model.Item {
	return s.item
}

func (s *reportService) resolveImage(ctx context.Context) (string, error) {
	if s.image != nil {
		return s.image.Wait(ctx)
	}

	if s.params.Image == "" {
		return "", nil
	}

	return upload.Parse(s.params.Image, s.limit).Wait(ctx)
}
