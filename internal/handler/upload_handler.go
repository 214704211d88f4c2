package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hrrecords/internal/domain"
	"github.com/locvowork/hrrecords/internal/ingestion"
	"github.com/locvowork/hrrecords/internal/logger"
	"github.com/locvowork/hrrecords/internal/service/serviceutils"
)

// Importer runs one bulk ingestion.
type Importer interface {
	Run(ctx context.Context, src domain.RowReader) (ingestion.Result, error)
}

type UploadHandler struct {
	importer Importer
}

func NewUploadHandler(importer Importer) *UploadHandler {
	return &UploadHandler{importer: importer}
}

// UploadHandler accepts a multipart "file" field holding CSV or xlsx rows.
// Storage failures after a clean read are reported with 200, not 4xx.
func (h *UploadHandler) UploadHandler(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Please upload a file", err)
	}
	f, err := fh.Open()
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Unable to open uploaded file", err)
	}
	defer f.Close()

	ctx := logger.WithLogger(c.Request().Context(), map[string]interface{}{"upload": fh.Filename})
	res, err := h.importer.Run(ctx, ingestion.ReaderFor(fh.Filename, f))
	switch domain.KindOf(err) {
	case "":
		if err != nil {
			return serviceutils.ResponseError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), err)
		}
		logger.InfoLog(ctx, "Upload %s stored %d employees", res.RunID, res.Persisted)
		return serviceutils.ResponseSuccess(c, http.StatusCreated, "Data is created", nil)
	case domain.KindUnableToPersist:
		return serviceutils.ResponseError(c, http.StatusOK, "File is uploaded but not processed - "+err.Error(), err)
	default:
		return serviceutils.ResponseError(c, http.StatusBadRequest, err.Error(), err)
	}
}
