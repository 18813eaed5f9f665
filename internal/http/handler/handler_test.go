package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"docqa/internal/extractor"
	"docqa/internal/model"
	"docqa/internal/service"
	serviceMocks "docqa/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	app := fiber.New()
	app.Get("/health", HealthCheck())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, ServiceName, body["service"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestReadyCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/ready", ReadyCheck(db))

	t.Run("ready", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("database down", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Dependency unavailable", body.Error)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// multipartUpload builds a multipart request carrying one file field.
func multipartUpload(t *testing.T, field, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/documents/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadDocument(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockDocumentService)
		app := fiber.New()
		app.Post("/documents/upload", UploadDocument(mockSvc))

		want := &model.Document{
			ID:          uuid.NewString(),
			FileName:    "report.pdf",
			TextContent: "Annual report. Total: $42",
		}
		mockSvc.On("Ingest", mock.Anything, mock.Anything, "report.pdf", mock.Anything).
			Return(want, nil).Once()

		req := multipartUpload(t, "file", "report.pdf", "application/pdf", []byte("%PDF-fake"))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got model.Document
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, "report.pdf", got.FileName)
		assert.Equal(t, want.TextContent, got.TextContent)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file field", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockDocumentService)
		app := fiber.New()
		app.Post("/documents/upload", UploadDocument(mockSvc))

		req := httptest.NewRequest(http.MethodPost, "/documents/upload", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "No file provided", body.Error)
		mockSvc.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("extraction failure discloses reason", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockDocumentService)
		app := fiber.New()
		app.Post("/documents/upload", UploadDocument(mockSvc))

		mockSvc.On("Ingest", mock.Anything, mock.Anything, "blank.png", mock.Anything).
			Return(nil, extractor.ErrNoTextInImage).Once()

		req := multipartUpload(t, "file", "blank.png", "image/png", []byte{0x89, 0x50})
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "No text extracted from image", body.Error)
	})

	t.Run("storage failure stays generic", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockDocumentService)
		app := fiber.New()
		app.Post("/documents/upload", UploadDocument(mockSvc))

		mockSvc.On("Ingest", mock.Anything, mock.Anything, "report.pdf", mock.Anything).
			Return(nil, errors.New("store document: connection refused")).Once()

		req := multipartUpload(t, "file", "report.pdf", "application/pdf", []byte("%PDF-fake"))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Internal server error", body.Error)
	})
}

func TestGetDocument(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockDocumentService)
		app := fiber.New()
		app.Get("/documents/:id", GetDocument(mockSvc))

		id := uuid.NewString()
		want := &model.Document{ID: id, FileName: "report.pdf", TextContent: "text"}
		mockSvc.On("Get", mock.Anything, id).Return(want, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got model.Document
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, id, got.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockDocumentService)
		app := fiber.New()
		app.Get("/documents/:id", GetDocument(mockSvc))

		mockSvc.On("Get", mock.Anything, "does-not-exist").
			Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/does-not-exist", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Document not found", body.Error)
	})
}

func TestListDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents", ListDocuments(mockSvc))

	t.Run("success", func(t *testing.T) {
		expectedRes := &service.DocumentListResult{
			Items: []model.Document{{ID: uuid.NewString(), FileName: "report.pdf"}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, 10, 0).Return(expectedRes, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents?limit=10&offset=0", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.DocumentListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAskQuestion(t *testing.T) {
	newApp := func(mockSvc *serviceMocks.MockQuestionService) *fiber.App {
		app := fiber.New()
		app.Post("/documents/question", AskQuestion(mockSvc))
		return app
	}

	postJSON := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/documents/question", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockQuestionService)
		app := newApp(mockSvc)

		id := uuid.NewString()
		mockSvc.On("Ask", mock.Anything, id, "What is the total?").
			Return("O total é $42.", nil).Once()

		resp, _ := app.Test(postJSON(`{"documentId":"` + id + `","question":"What is the total?"}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body answerResponse
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Contains(t, body.Answer, "42")
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown document", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockQuestionService)
		app := newApp(mockSvc)

		mockSvc.On("Ask", mock.Anything, "missing-id", "q?").
			Return("", service.ErrNotFound).Once()

		resp, _ := app.Test(postJSON(`{"documentId":"missing-id","question":"q?"}`))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Document not found", body.Error)
	})

	t.Run("blank question", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockQuestionService)
		app := newApp(mockSvc)

		mockSvc.On("Ask", mock.Anything, "some-id", " ").
			Return("", service.ErrQuestionRequired).Once()

		resp, _ := app.Test(postJSON(`{"documentId":"some-id","question":" "}`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockQuestionService)
		app := newApp(mockSvc)

		resp, _ := app.Test(postJSON(`{not json`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockSvc.AssertNotCalled(t, "Ask", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("completion failure stays generic", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockQuestionService)
		app := newApp(mockSvc)

		id := uuid.NewString()
		mockSvc.On("Ask", mock.Anything, id, "q?").
			Return("", errors.New("answer question: context length exceeded")).Once()

		resp, _ := app.Test(postJSON(`{"documentId":"` + id + `","question":"q?"}`))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Failed to answer question", body.Error)
	})
}
