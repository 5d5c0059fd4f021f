package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	perrors "github.com/tamnd/productsvc/internal/errors"
	"github.com/tamnd/productsvc/internal/service"
)

// mockProductService is a mock implementation of the ProductService interface
type mockProductService struct {
	product *service.ProductDto
	list    *service.ProductListDto
	upload  *service.ImageUploadResultDto
	error   error
}

func (m *mockProductService) Create(_ context.Context, _ service.ProductCreateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) FindAll(_ context.Context) (*service.ProductListDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.list, nil
}

func (m *mockProductService) FindPending(_ context.Context) (*service.ProductListDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.list, nil
}

func (m *mockProductService) FindByID(_ context.Context, _ uuid.UUID) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) Update(_ context.Context, _ uuid.UUID, _ service.ProductUpdateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) UpdateDescription(_ context.Context, _ uuid.UUID, _ string) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) Publish(_ context.Context, _ uuid.UUID, _ string) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) UploadImage(_ context.Context, _ uuid.UUID, _ service.ImageUpload) (*service.ImageUploadResultDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.upload, nil
}

func (m *mockProductService) DeleteByID(_ context.Context, _ uuid.UUID) error {
	return m.error
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	ValidationErrors map[string]string `json:"validation_errors"`
}

// toJSON is a helper function to convert a struct to JSON string
func toJSON(t *testing.T, v interface{}) string {
	t.Helper()
	bytes, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal to JSON: %v", err)
	}
	return string(bytes)
}

func newTestHandler(svc service.ProductService) *Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewHandler(svc, logger)
}

func Test_ProductAPI_Create(t *testing.T) {
	mockID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	testCases := []struct {
		name         string
		mockService  mockProductService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - product created",
			mockService: mockProductService{
				product: &service.ProductDto{ID: mockID.String(), Name: "Toy", Price: 10},
			},
			body:         `{"name":"Toy","price":10}`,
			expectedCode: http.StatusCreated,
			expectedBody: toJSON(t, service.ProductDto{ID: mockID.String(), Name: "Toy", Price: 10}),
		},
		{
			name:         "Error - missing price",
			mockService:  mockProductService{},
			body:         `{"name":"Toy"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ValidationErrorResponse{ValidationErrors: map[string]string{"Price": "failed on rule: required"}}),
		},
		{
			name:         "Error - negative price",
			mockService:  mockProductService{},
			body:         `{"name":"Toy","price":-5}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ValidationErrorResponse{ValidationErrors: map[string]string{"Price": "failed on rule: gt"}}),
		},
		{
			name:         "Error - malformed body",
			mockService:  mockProductService{},
			body:         `{"name":`,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid request body"}),
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("boom")},
			body:         `{"name":"Toy","price":10}`,
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to create product"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			// when
			api.Create(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductAPI_FindByID(t *testing.T) {
	mockID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - product found",
			mockService: mockProductService{
				product: &service.ProductDto{ID: mockID.String(), Name: "Toy", Price: 10, PostID: "P1", Status: true},
			},
			productID:    mockID.String(),
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, service.ProductDto{ID: mockID.String(), Name: "Toy", Price: 10, PostID: "P1", Status: true}),
		},
		{
			name:         "Error - invalid id",
			mockService:  mockProductService{},
			productID:    "123-invalid-id",
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid ID: 123-invalid-id"}),
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: perrors.ErrProductNotFound},
			productID:    mockID.String(),
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Product with ID " + mockID.String() + " not found"}),
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("boom")},
			productID:    mockID.String(),
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to retrieve product with ID " + mockID.String()}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rr := httptest.NewRecorder()
			// when
			api.FindByID(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductAPI_FindAll(t *testing.T) {
	mockID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	list := &service.ProductListDto{
		Count: 1,
		Results: []service.ProductListItemDto{
			{ID: mockID.String(), Name: "Toy", Price: 10},
		},
	}

	testCases := []struct {
		name         string
		mockService  mockProductService
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - products found",
			mockService:  mockProductService{list: list},
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, list),
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("boom")},
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to fetch products"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
			rr := httptest.NewRecorder()
			// when
			api.FindAll(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_FindPending(t *testing.T) {
	// given
	list := &service.ProductListDto{Count: 0, Results: []service.ProductListItemDto{}}
	api := newTestHandler(&mockProductService{list: list})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/pending", nil)
	rr := httptest.NewRecorder()
	// when
	api.FindPending(rr, req)
	// then
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, toJSON(t, list), rr.Body.String())
}

func Test_ProductAPI_Update(t *testing.T) {
	mockID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	testCases := []struct {
		name         string
		mockService  mockProductService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - partial update",
			mockService: mockProductService{
				product: &service.ProductDto{ID: mockID.String(), Name: "Toy", Price: 99},
			},
			body:         `{"price":99}`,
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, service.ProductDto{ID: mockID.String(), Name: "Toy", Price: 99}),
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: perrors.ErrProductNotFound},
			body:         `{"price":99}`,
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Product with ID " + mockID.String() + " not found"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+mockID.String(), strings.NewReader(tc.body))
			req.SetPathValue("id", mockID.String())
			rr := httptest.NewRecorder()
			// when
			api.Update(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_DeleteByID(t *testing.T) {
	mockID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	testCases := []struct {
		name         string
		mockService  mockProductService
		expectedCode int
	}{
		{name: "Success - deleted", mockService: mockProductService{}, expectedCode: http.StatusNoContent},
		{name: "Error - not found", mockService: mockProductService{error: perrors.ErrProductNotFound}, expectedCode: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+mockID.String(), nil)
			req.SetPathValue("id", mockID.String())
			rr := httptest.NewRecorder()
			// when
			api.DeleteByID(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedCode == http.StatusNoContent {
				assert.Empty(t, rr.Body.String(), "204 response has no body")
			}
		})
	}
}

// multipartBody builds a multipart request body with a single image file field.
func multipartBody(t *testing.T, fieldName, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func Test_ProductAPI_UploadImage(t *testing.T) {
	mockID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	const imageURL = "http://localhost:9000/products/products/new.jpg"

	testCases := []struct {
		name         string
		mockService  mockProductService
		fieldName    string
		filename     string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - image uploaded",
			mockService: mockProductService{
				upload: &service.ImageUploadResultDto{ID: mockID.String(), Image: imageURL, Message: "image uploaded successfully"},
			},
			fieldName:    "image",
			filename:     "photo.jpg",
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, service.ImageUploadResultDto{ID: mockID.String(), Image: imageURL, Message: "image uploaded successfully"}),
		},
		{
			name:         "Error - wrong form field",
			mockService:  mockProductService{},
			fieldName:    "file",
			filename:     "photo.jpg",
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ValidationErrorResponse{ValidationErrors: map[string]string{"image": "multipart field 'image' is required"}}),
		},
		{
			name:         "Error - payload rejected by validation",
			mockService:  mockProductService{error: perrors.NewValidationError("image", "unsupported file extension")},
			fieldName:    "image",
			filename:     "photo.bmp",
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ValidationErrorResponse{ValidationErrors: map[string]string{"image": "unsupported file extension"}}),
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: perrors.ErrProductNotFound},
			fieldName:    "image",
			filename:     "photo.jpg",
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Product with ID " + mockID.String() + " not found"}),
		},
		{
			name:         "Error - storage write failed",
			mockService:  mockProductService{error: perrors.ErrStorageWrite},
			fieldName:    "image",
			filename:     "photo.jpg",
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to store image"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			body, contentType := multipartBody(t, tc.fieldName, tc.filename, []byte("payload"))
			req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+mockID.String()+"/upload-image", body)
			req.Header.Set("Content-Type", contentType)
			req.SetPathValue("id", mockID.String())
			rr := httptest.NewRecorder()
			// when
			api.UploadImage(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductAPI_UpdateDescription(t *testing.T) {
	mockID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	// given
	api := newTestHandler(&mockProductService{
		product: &service.ProductDto{ID: mockID.String(), Name: "Toy", Description: "new text"},
	})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/products/"+mockID.String()+"/update-description",
		strings.NewReader(`{"description":"new text"}`))
	req.SetPathValue("id", mockID.String())
	rr := httptest.NewRecorder()
	// when
	api.UpdateDescription(rr, req)
	// then
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, toJSON(t, service.ProductDto{ID: mockID.String(), Name: "Toy", Description: "new text"}), rr.Body.String())
}

func Test_ProductAPI_UpdatePostID(t *testing.T) {
	mockID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	testCases := []struct {
		name         string
		mockService  mockProductService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - post ID set and status flipped",
			mockService: mockProductService{
				product: &service.ProductDto{ID: mockID.String(), Name: "Toy", PostID: "XYZ", Status: true},
			},
			body:         `{"post_id":"XYZ"}`,
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, service.ProductDto{ID: mockID.String(), Name: "Toy", PostID: "XYZ", Status: true}),
		},
		{
			name:         "Error - blank post ID",
			mockService:  mockProductService{error: perrors.NewValidationError("post_id", "post_id must not be blank")},
			body:         `{"post_id":"   "}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ValidationErrorResponse{ValidationErrors: map[string]string{"post_id": "post_id must not be blank"}}),
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: perrors.ErrProductNotFound},
			body:         `{"post_id":"XYZ"}`,
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Product with ID " + mockID.String() + " not found"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodPatch, "/api/v1/products/"+mockID.String()+"/update-post-id", strings.NewReader(tc.body))
			req.SetPathValue("id", mockID.String())
			rr := httptest.NewRecorder()
			// when
			api.UpdatePostID(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
