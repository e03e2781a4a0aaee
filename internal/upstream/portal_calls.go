package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"

	"github.com/medchain/portal/internal/domain"
	apperrors "github.com/medchain/portal/pkg/util"
)

// ProfileExists checks whether the patient behind the credential has completed
// onboarding.
func (c *Client) ProfileExists(ctx context.Context, credential string) (domain.ProfileStatus, error) {
	body, status, err := c.send(ctx, http.MethodGet, "/patients/profile/exists", credential, nil)
	if err != nil {
		return domain.ProfileStatus{}, err
	}
	if !is2xx(status) {
		return domain.ProfileStatus{}, rejection(body, status, "profile check failed")
	}

	var payload struct {
		Exists bool `json:"exists"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.ProfileStatus{}, apperrors.NewNetworkError(err)
	}
	return domain.ProfileStatus{Exists: payload.Exists}, nil
}

// CreateProfile submits the onboarding form fields for a new patient.
func (c *Client) CreateProfile(ctx context.Context, credential string, fields map[string]any) (json.RawMessage, error) {
	body, status, err := c.send(ctx, http.MethodPost, "/patients/profile", credential, fields)
	if err != nil {
		return nil, err
	}
	if !is2xx(status) {
		return nil, rejection(body, status, "Failed to create profile. Please try again.")
	}
	return json.RawMessage(body), nil
}

// PatientDashboard fetches the patient landing data.
func (c *Client) PatientDashboard(ctx context.Context, credential string) (json.RawMessage, error) {
	return c.proxyGet(ctx, "/patients/dashboard", credential)
}

// ListRecords fetches the patient's uploaded medical records.
func (c *Client) ListRecords(ctx context.Context, credential string) (json.RawMessage, error) {
	return c.proxyGet(ctx, "/patients/records", credential)
}

// ListPatients fetches the doctor's patient roster.
func (c *Client) ListPatients(ctx context.Context, credential string) (json.RawMessage, error) {
	return c.proxyGet(ctx, "/doctors/patients", credential)
}

// AskChatbot forwards a record-scoped question to the chat assistant.
func (c *Client) AskChatbot(ctx context.Context, credential, recordID, message string) (json.RawMessage, error) {
	payload := map[string]string{"message": message}
	if recordID != "" {
		payload["record_id"] = recordID
	}
	body, status, err := c.send(ctx, http.MethodPost, "/medical_chatbot/ask", credential, payload)
	if err != nil {
		return nil, err
	}
	if !is2xx(status) {
		return nil, rejection(body, status, "chat assistant unavailable")
	}
	return json.RawMessage(body), nil
}

// PredictDisease forwards selected symptoms to the prediction service.
func (c *Client) PredictDisease(ctx context.Context, credential string, symptoms []string) (json.RawMessage, error) {
	body, status, err := c.send(ctx, http.MethodPost, "/predict_disease/", credential, map[string]any{
		"symptoms": symptoms,
	})
	if err != nil {
		return nil, err
	}
	if !is2xx(status) {
		return nil, rejection(body, status, "prediction service unavailable")
	}
	return json.RawMessage(body), nil
}

// UploadRecord streams a medical record file to the chatbot ingestion endpoint.
func (c *Client) UploadRecord(ctx context.Context, credential, filename string, file io.Reader) (json.RawMessage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := writer.Close(); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/medical_chatbot/upload", &buf)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewNetworkError(err)
	}
	if !is2xx(resp.StatusCode) {
		return nil, rejection(body, resp.StatusCode, "record upload failed")
	}
	c.logger.Debug("record uploaded", zap.String("filename", filename))
	return json.RawMessage(body), nil
}

func (c *Client) proxyGet(ctx context.Context, path, credential string) (json.RawMessage, error) {
	body, status, err := c.send(ctx, http.MethodGet, path, credential, nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(status) {
		return nil, rejection(body, status, "upstream request failed")
	}
	return json.RawMessage(body), nil
}
