package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	jwttoken "provider-registry/internal/jwt_token"
	"provider-registry/internal/provider/clock"
	"provider-registry/internal/provider/handler/mocks"
	"provider-registry/internal/provider/models"
	"provider-registry/internal/provider/service"
	"provider-registry/internal/provider/store"
	id "provider-registry/pkg/domain"
	dErrors "provider-registry/pkg/domain-errors"
	request "provider-registry/pkg/platform/middleware/request"
	"provider-registry/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

type ProviderHandlerSuite struct {
	suite.Suite
	jwt    *jwttoken.JWTService
	router http.Handler
}

func TestProviderHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProviderHandlerSuite))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(svc Service, jwt *jwttoken.JWTService) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	New(svc, discardLogger(), jwttoken.NewJWTServiceAdapter(jwt)).Register(r)
	return r
}

func (s *ProviderHandlerSuite) SetupTest() {
	s.jwt = jwttoken.NewJWTService("test-key", "test-issuer", "test-audience")
	svc, err := service.New(store.NewInMemoryStore(), clock.NewLogical(), service.WithLogger(discardLogger()))
	s.Require().NoError(err)
	s.router = newRouter(svc, s.jwt)
}

func (s *ProviderHandlerSuite) token(principal string) string {
	token, err := s.jwt.GeneratePrincipalToken(id.Principal(principal), time.Hour)
	s.Require().NoError(err)
	return token
}

func (s *ProviderHandlerSuite) do(req *http.Request, principal string) *http.Response {
	if principal != "" {
		testutil.WithBearer(req, s.token(principal))
	}
	rr := testutil.DoRequest(s.router, req)
	return rr.Result()
}

func janeRequest() RegisterProviderRequest {
	return RegisterProviderRequest{
		ProviderID: "provider-123",
		FullName:   "Dr. Jane Smith",
		Specialty:  "Cardiology",
		NPINumber:  "1234567890",
	}
}

func (s *ProviderHandlerSuite) registerJane() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/providers", janeRequest())
	testutil.WithBearer(req, s.token("alice"))
	rr := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusCreated, rr.Code)
}

func (s *ProviderHandlerSuite) TestRegisterProvider() {
	s.Run("authenticated register returns ok id", func() {
		s.SetupTest()
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/providers", janeRequest())
		testutil.WithBearer(req, s.token("alice"))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[MutationResponse](s.T(), rr)
		s.Equal("provider-123", resp.OK)
		s.NotEmpty(rr.Header().Get(request.HeaderRequestID))
	})

	s.Run("missing token is rejected", func() {
		s.SetupTest()
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/providers", janeRequest())
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("duplicate returns conflict with result code 2", func() {
		s.SetupTest()
		s.registerJane()

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/providers", janeRequest())
		testutil.WithBearer(req, s.token("bob"))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusConflict)
		errResp := testutil.UnmarshalErrorResponse(s.T(), rr)
		s.Equal("conflict", errResp.Error)
		s.Equal(models.ResultProviderAlreadyExists, errResp.ResultCode)
	})

	s.Run("invalid bodies return result code 4", func() {
		cases := map[string]string{
			"malformed json": `{"provider_id":`,
			"unknown field":  `{"provider_id":"p-1","full_name":"a","specialty":"b","npi_number":"c","extra":1}`,
			"missing name":   `{"provider_id":"p-1","specialty":"b","npi_number":"c"}`,
			"blank npi":      `{"provider_id":"p-1","full_name":"a","specialty":"b","npi_number":"   "}`,
			"bad id":         `{"provider_id":"p 1","full_name":"a","specialty":"b","npi_number":"c"}`,
		}
		for name, body := range cases {
			s.Run(name, func() {
				s.SetupTest()
				req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/providers", body)
				testutil.WithBearer(req, s.token("alice"))
				rr := testutil.DoRequest(s.router, req)

				testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
				errResp := testutil.UnmarshalErrorResponse(s.T(), rr)
				s.Equal(models.ResultInvalidInput, errResp.ResultCode)
			})
		}
	})
}

func (s *ProviderHandlerSuite) TestMutationsRequireOwnership() {
	update := UpdateProviderRequest{FullName: "Dr. Jane Smith", Specialty: "Neurology", NPINumber: "1234567890"}

	testutil.Given(s.T(), "a provider registered by alice", func(t *testing.T) {
		s.SetupTest()
		s.registerJane()

		testutil.When(t, "bob updates it", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPut, "/providers/provider-123", update)
			testutil.WithBearer(req, s.token("bob"))
			rr := testutil.DoRequest(s.router, req)

			testutil.Then(t, "the request is forbidden with result code 1", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusForbidden)
				errResp := testutil.UnmarshalErrorResponse(t, rr)
				s.Equal(models.ResultUnauthorized, errResp.ResultCode)
			})
		})

		testutil.When(t, "bob deactivates it", func(t *testing.T) {
			req := testutil.NewRequest(t, http.MethodPost, "/providers/provider-123/deactivate")
			testutil.WithBearer(req, s.token("bob"))
			rr := testutil.DoRequest(s.router, req)

			testutil.Then(t, "the request is forbidden", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")
			})
		})

		testutil.Then(t, "the record is unchanged", func(t *testing.T) {
			rr := testutil.DoRequest(s.router, testutil.NewRequest(t, http.MethodGet, "/providers/provider-123"))
			testutil.AssertStatusOK(t, rr)
			p := testutil.UnmarshalResponse[models.Provider](t, rr)
			s.Equal("Cardiology", p.Specialty)
			s.True(p.Active)
			s.Equal(p.CreatedAt, p.UpdatedAt)
		})
	})
}

func (s *ProviderHandlerSuite) TestLifecycle() {
	s.registerJane()

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/providers/provider-123"))
	testutil.AssertStatusOK(s.T(), rr)
	created := testutil.UnmarshalResponse[models.Provider](s.T(), rr)
	s.Equal(id.Principal("alice"), created.Owner)
	s.True(created.Active)
	s.Equal(created.CreatedAt, created.UpdatedAt)

	req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/providers/provider-123",
		UpdateProviderRequest{FullName: "Dr. Jane Smith", Specialty: "Neurology", NPINumber: "1234567890"})
	resp := s.do(req, "alice")
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.do(testutil.NewRequest(s.T(), http.MethodPost, "/providers/provider-123/deactivate"), "alice")
	s.Equal(http.StatusOK, resp.StatusCode)

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/providers/provider-123"))
	deactivated := testutil.UnmarshalResponse[models.Provider](s.T(), rr)
	s.Equal("Neurology", deactivated.Specialty)
	s.False(deactivated.Active)
	s.Greater(deactivated.UpdatedAt, created.UpdatedAt)

	resp = s.do(testutil.NewRequest(s.T(), http.MethodPost, "/providers/provider-123/reactivate"), "alice")
	s.Equal(http.StatusOK, resp.StatusCode)

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/principals/alice/provider"))
	testutil.AssertJSONContains(s.T(), rr, "provider_id", "provider-123")

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/providers/provider-123/exists"))
	testutil.AssertJSONContains(s.T(), rr, "exists", true)

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodHead, "/providers/provider-123"))
	testutil.AssertStatusOK(s.T(), rr)
}

func (s *ProviderHandlerSuite) TestLookupsOfUnknownRecords() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/providers/missing"))
	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	errResp := testutil.UnmarshalErrorResponse(s.T(), rr)
	s.Equal(models.ResultProviderNotFound, errResp.ResultCode)

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/principals/nobody/provider"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/providers/missing/exists"))
	testutil.AssertJSONContains(s.T(), rr, "exists", false)

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodHead, "/providers/missing"))
	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)

	resp := s.do(testutil.NewRequest(s.T(), http.MethodPost, "/providers/missing/reactivate"), "alice")
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *ProviderHandlerSuite) TestInternalErrorsHideDetails() {
	ctrl := gomock.NewController(s.T())
	svc := mocks.NewMockService(ctrl)
	router := newRouter(svc, s.jwt)

	svc.EXPECT().GetProvider(gomock.Any(), id.ProviderID("provider-123")).
		Return(nil, dErrors.Wrap(errors.New("pq: connection refused"), dErrors.CodeInternal, "failed to load provider"))

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/providers/provider-123"))
	testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
	errResp := testutil.UnmarshalErrorResponse(s.T(), rr)
	s.Equal("internal_error", errResp.Error)
	s.Empty(errResp.ErrorDescription)
	s.Zero(errResp.ResultCode)
}

func (s *ProviderHandlerSuite) TestCallerComesFromToken() {
	ctrl := gomock.NewController(s.T())
	svc := mocks.NewMockService(ctrl)
	router := newRouter(svc, s.jwt)

	svc.EXPECT().DeactivateProvider(gomock.Any(), id.Principal("alice"), id.ProviderID("provider-123")).
		DoAndReturn(func(ctx context.Context, caller id.Principal, providerID id.ProviderID) (id.ProviderID, error) {
			return providerID, nil
		})

	req := testutil.NewRequest(s.T(), http.MethodPost, "/providers/provider-123/deactivate")
	testutil.WithBearer(req, s.token("alice"))
	rr := testutil.DoRequest(router, req)
	testutil.AssertJSONContains(s.T(), rr, "ok", "provider-123")
}
