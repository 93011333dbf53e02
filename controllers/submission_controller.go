package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/civicreport/metrics"
	"github.com/cppla/civicreport/models"
	"github.com/cppla/civicreport/services"
	"github.com/cppla/civicreport/utils"
)

// Submitter runs the submission flow for one parsed form.
type Submitter interface {
	Submit(ctx context.Context, in services.SubmissionInput) (*models.Submission, error)
}

// SubmissionController handles the public report endpoint.
type SubmissionController struct {
	svc Submitter
	log *zap.Logger
}

// NewSubmissionController creates a new SubmissionController instance.
func NewSubmissionController(svc Submitter, log *zap.Logger) *SubmissionController {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionController{svc: svc, log: log}
}

// Submit accepts a multipart report and answers {success, submission|error}.
func (s *SubmissionController) Submit(ctx *gin.Context) {
	in, err := bindSubmission(ctx)
	if err != nil {
		s.log.Error("parse submission form failed", zap.Error(err))
		metrics.SubmissionsTotal.WithLabelValues("unexpected").Inc()
		utils.Error(ctx, http.StatusInternalServerError, services.MsgUnexpected)
		return
	}

	submission, err := s.svc.Submit(ctx.Request.Context(), in)
	if err != nil {
		var se *services.SubmitError
		if errors.As(err, &se) {
			if se.Err != nil {
				s.log.Warn("submission rejected", zap.String("outcome", se.Outcome()), zap.Error(se.Err))
			}
			metrics.SubmissionsTotal.WithLabelValues(se.Outcome()).Inc()
			utils.Error(ctx, se.Status(), se.Message())
			return
		}
		s.log.Error("submission failed", zap.Error(err))
		metrics.SubmissionsTotal.WithLabelValues("unexpected").Inc()
		utils.Error(ctx, http.StatusInternalServerError, services.MsgUnexpected)
		return
	}

	metrics.SubmissionsTotal.WithLabelValues("created").Inc()
	utils.Success(ctx, http.StatusCreated, "submission", submission)
}

// bindSubmission reads the form fields. Non-multipart bodies still yield their text fields.
func bindSubmission(ctx *gin.Context) (services.SubmissionInput, error) {
	form, err := ctx.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return services.SubmissionInput{}, err
	}

	in := services.SubmissionInput{
		Title:       ctx.PostForm("title"),
		Description: ctx.PostForm("description"),
		Tags:        ctx.PostForm("tags"),
		Anonymity:   ctx.PostForm("anonymity") == "true",
		ContactInfo: ctx.PostForm("contact_info"),
		Source:      ctx.PostForm("source"),
		Location:    ctx.PostForm("location"),
	}
	if form == nil {
		return in, nil
	}

	for _, fh := range form.File["files"] {
		in.Files = append(in.Files, services.Attachment{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return in, nil
}
