package ui

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"datadeck/adapters/tabular"
	"datadeck/internal/errors"

	"github.com/gin-gonic/gin"
)

// handleAnalyze accepts a multipart upload, runs the analysis pipeline and
// returns either {"presentation": ...} or {"error": ...}. No partial
// output: a failed chart angle only lowers the chart count, every other
// failure aborts the request.
func (s *Server) handleAnalyze(c *gin.Context) {
	requestID := c.GetString("request_id")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		s.respondError(c, errors.Input("no file part"))
		return
	}
	defer file.Close()

	if header.Filename == "" {
		s.respondError(c, errors.Input("no selected file"))
		return
	}
	if header.Size > s.cfg.Upload.MaxFileSize {
		s.respondError(c, errors.Input("file size (%.1f MB) exceeds the %d MB limit",
			float64(header.Size)/(1024*1024), s.cfg.Upload.MaxFileSize/(1024*1024)))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(c, errors.Wrap(err, "failed to read upload"))
		return
	}

	log.Printf("[handleAnalyze] request=%s file=%q size=%d", requestID, header.Filename, len(data))

	ds, err := tabular.Decode(header.Filename, data)
	if err != nil {
		s.respondError(c, err)
		return
	}

	doc, err := s.service.BuildPresentation(c.Request.Context(), ds)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"presentation": doc})
}

// respondError converts a coded error to the response contract. Client
// faults keep their message; collaborator faults get a generic one so
// upstream provider detail never leaks; everything else carries the error
// text for diagnostics.
func (s *Server) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	message := err.Error()
	switch errors.CodeOf(err) {
	case errors.CodeCollaborator:
		message = "narrative generation failed, please retry"
	case errors.CodeInternal:
		message = fmt.Sprintf("an unexpected error occurred during processing: %s", err.Error())
	}

	log.Printf("[handleAnalyze] request=%s error=%s code=%s", c.GetString("request_id"), err.Error(), errors.CodeOf(err))
	c.JSON(status, gin.H{"error": message})
}
