package company_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/biztime/internal/company"
	companyHandler "github.com/MrJamesThe3rd/biztime/internal/http/company"
)

func newServer(t *testing.T, setup func(m *company.MockRepository)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := company.NewMockRepository(ctrl)

	if setup != nil {
		setup(repo)
	}

	r := chi.NewRouter()
	r.Route("/companies", companyHandler.NewHandler(company.NewService(repo)).Routes)

	return r
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m *company.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name: "Success",
			body: `{"code":"ibm","name":"IBM","description":"Big blue."}`,
			setupMock: func(m *company.MockRepository) {
				m.EXPECT().
					CreateCompany(gomock.Any(), &company.Company{Code: "ibm", Name: "IBM", Description: "Big blue."}).
					Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"company":{"code":"ibm","name":"IBM","description":"Big blue."}}`,
		},
		{
			name: "DescriptionOptional",
			body: `{"code":"apple","name":"Apple"}`,
			setupMock: func(m *company.MockRepository) {
				m.EXPECT().
					CreateCompany(gomock.Any(), &company.Company{Code: "apple", Name: "Apple"}).
					Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"company":{"code":"apple","name":"Apple","description":""}}`,
		},
		{
			name:       "EmptyBody",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":{"message":"request body is required","status":400}}`,
		},
		{
			name:       "MissingFields",
			body:       `{"description":"nothing else"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":{"message":"Validation failed: code is required, name is required","status":400}}`,
		},
		{
			name:       "MalformedJSON",
			body:       `{"code":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "DuplicateCode",
			body: `{"code":"ibm","name":"IBM"}`,
			setupMock: func(m *company.MockRepository) {
				m.EXPECT().CreateCompany(gomock.Any(), gomock.Any()).Return(company.ErrAlreadyExists)
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":{"message":"A company with this code already exists","status":409}}`,
		},
		{
			name: "StoreFailure",
			body: `{"code":"ibm","name":"IBM"}`,
			setupMock: func(m *company.MockRepository) {
				m.EXPECT().CreateCompany(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":{"message":"Internal Server Error","status":500}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newServer(t, tt.setupMock), http.MethodPost, "/companies", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHandler_List(t *testing.T) {
	t.Run("Companies", func(t *testing.T) {
		srv := newServer(t, func(m *company.MockRepository) {
			m.EXPECT().ListCompanies(gomock.Any()).Return([]*company.Company{
				{Code: "apple", Name: "Apple"},
				{Code: "ibm", Name: "IBM"},
			}, nil)
		})

		rec := do(srv, http.MethodGet, "/companies", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"companies":[{"code":"apple","name":"Apple"},{"code":"ibm","name":"IBM"}]}`,
			rec.Body.String())
	})

	t.Run("EmptyIsArray", func(t *testing.T) {
		srv := newServer(t, func(m *company.MockRepository) {
			m.EXPECT().ListCompanies(gomock.Any()).Return(nil, nil)
		})

		rec := do(srv, http.MethodGet, "/companies", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"companies":[]}`, rec.Body.String())
	})
}

func TestHandler_Get(t *testing.T) {
	srv := newServer(t, func(m *company.MockRepository) {
		m.EXPECT().
			GetCompany(gomock.Any(), "ibm").
			Return(&company.Company{Code: "ibm", Name: "IBM", Description: "Big blue."}, nil)
		m.EXPECT().
			GetCompany(gomock.Any(), "doesnotexist").
			Return(nil, company.ErrNotFound)
	})

	rec := do(srv, http.MethodGet, "/companies/ibm", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"company":{"code":"ibm","name":"IBM","description":"Big blue."}}`, rec.Body.String())

	rec = do(srv, http.MethodGet, "/companies/doesnotexist", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":{"message":"Company not found","status":404}}`, rec.Body.String())
}

func TestHandler_Update(t *testing.T) {
	type testCase struct {
		name       string
		target     string
		body       string
		setupMock  func(m *company.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:   "Success",
			target: "/companies/ibm",
			body:   `{"name":"International Business Machines","description":"Still blue."}`,
			setupMock: func(m *company.MockRepository) {
				m.EXPECT().
					UpdateCompany(gomock.Any(), &company.Company{
						Code:        "ibm",
						Name:        "International Business Machines",
						Description: "Still blue.",
					}).
					Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"company":{"code":"ibm","name":"International Business Machines","description":"Still blue."}}`,
		},
		{
			name:   "NotFound",
			target: "/companies/nope",
			body:   `{"name":"Nope"}`,
			setupMock: func(m *company.MockRepository) {
				m.EXPECT().UpdateCompany(gomock.Any(), gomock.Any()).Return(company.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "NameTaken",
			target: "/companies/ibm",
			body:   `{"name":"Apple"}`,
			setupMock: func(m *company.MockRepository) {
				m.EXPECT().UpdateCompany(gomock.Any(), gomock.Any()).Return(company.ErrNameTaken)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "EmptyBody",
			target:     "/companies/ibm",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newServer(t, tt.setupMock), http.MethodPut, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	var deleted bool

	srv := newServer(t, func(m *company.MockRepository) {
		m.EXPECT().
			DeleteCompany(gomock.Any(), "ibm").
			DoAndReturn(func(context.Context, string) error {
				deleted = true
				return nil
			})
		m.EXPECT().DeleteCompany(gomock.Any(), "ghost").Return(company.ErrNotFound)
		m.EXPECT().DeleteCompany(gomock.Any(), "apple").Return(company.ErrHasInvoices)
	})

	rec := do(srv, http.MethodDelete, "/companies/ibm", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"deleted"}`, rec.Body.String())
	assert.True(t, deleted)

	rec = do(srv, http.MethodDelete, "/companies/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(srv, http.MethodDelete, "/companies/apple", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":{"message":"Company still has invoices","status":409}}`, rec.Body.String())
}
