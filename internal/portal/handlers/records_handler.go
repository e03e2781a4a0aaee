package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// RecordsUpstream is the slice of the upstream client the records view needs.
type RecordsUpstream interface {
	ListRecords(ctx context.Context, credential string) (json.RawMessage, error)
	UploadRecord(ctx context.Context, credential, filename string, file io.Reader) (json.RawMessage, error)
}

// RecordsHandler serves the patient medical-record screens.
type RecordsHandler struct {
	upstream RecordsUpstream
}

// NewRecordsHandler constructs handler.
func NewRecordsHandler(upstream RecordsUpstream) *RecordsHandler {
	return &RecordsHandler{upstream: upstream}
}

// List handles GET /records, proxying the patient's record list.
func (h *RecordsHandler) List(c *fiber.Ctx) error {
	_, _, cred, err := currentSession(c)
	if err != nil {
		return err
	}

	payload, err := h.upstream.ListRecords(c.UserContext(), cred)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": payload})
}

// Upload handles POST /records, streaming the uploaded file to the upstream
// ingestion endpoint.
func (h *RecordsHandler) Upload(c *fiber.Ctx) error {
	_, _, cred, err := currentSession(c)
	if err != nil {
		return err
	}

	header, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "file required")
	}
	file, err := header.Open()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "unreadable file")
	}
	defer file.Close()

	payload, err := h.upstream.UploadRecord(c.UserContext(), cred, header.Filename, file)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": payload})
}
