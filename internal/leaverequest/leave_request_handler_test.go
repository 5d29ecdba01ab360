package leaverequest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yashcpg/leave1/internal/leaverequest"
	lrerrors "github.com/yashcpg/leave1/internal/leaverequest/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveRequestService struct {
	applyFn   func(ctx context.Context, employeeID string, req leaverequest.ApplyLeaveRequest) (leaverequest.ApplyLeaveResponse, error)
	decideFn  func(ctx context.Context, managerID, requestID string, approved bool) (leaverequest.DecideLeaveResponse, error)
	getMineFn func(ctx context.Context, employeeID string) ([]leaverequest.LeaveRequestResponse, error)
	getTeamFn func(ctx context.Context, managerID string) ([]leaverequest.LeaveRequestResponse, error)
	getByIDFn func(ctx context.Context, actorID, requestID string) (leaverequest.LeaveRequestResponse, error)
}

func (f *fakeLeaveRequestService) Apply(ctx context.Context, employeeID string, req leaverequest.ApplyLeaveRequest) (leaverequest.ApplyLeaveResponse, error) {
	return f.applyFn(ctx, employeeID, req)
}

func (f *fakeLeaveRequestService) Decide(ctx context.Context, managerID, requestID string, approved bool) (leaverequest.DecideLeaveResponse, error) {
	return f.decideFn(ctx, managerID, requestID, approved)
}

func (f *fakeLeaveRequestService) GetMine(ctx context.Context, employeeID string) ([]leaverequest.LeaveRequestResponse, error) {
	return f.getMineFn(ctx, employeeID)
}

func (f *fakeLeaveRequestService) GetTeam(ctx context.Context, managerID string) ([]leaverequest.LeaveRequestResponse, error) {
	return f.getTeamFn(ctx, managerID)
}

func (f *fakeLeaveRequestService) GetByID(ctx context.Context, actorID, requestID string) (leaverequest.LeaveRequestResponse, error) {
	return f.getByIDFn(ctx, actorID, requestID)
}

func TestLeaveRequestHandler_Apply(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		employeeID := uuid.New().String()

		svc := &fakeLeaveRequestService{
			applyFn: func(ctx context.Context, eid string, req leaverequest.ApplyLeaveRequest) (leaverequest.ApplyLeaveResponse, error) {
				assert.Equal(t, employeeID, eid)
				assert.Equal(t, "ANNUAL", req.LeaveType)
				return leaverequest.ApplyLeaveResponse{
					Message: leaverequest.MsgSubmitted,
					Request: leaverequest.LeaveRequestResponse{
						ID:         uuid.New().String(),
						EmployeeID: eid,
						LeaveType:  req.LeaveType,
						StartDate:  req.StartDate,
						EndDate:    req.EndDate,
						TotalDays:  2,
						Status:     "PENDING",
					},
				}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"ANNUAL","start_date":"2027-03-10","end_date":"2027-03-11","reason":"Family matters"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/api/LeaveRequest/apply", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", employeeID)

		h.Apply(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var got leaverequest.ApplyLeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "Leave request submitted successfully.", got.Message)
		assert.Equal(t, "PENDING", got.Request.Status)
	})

	t.Run("negative missing identity", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			applyFn: func(ctx context.Context, eid string, req leaverequest.ApplyLeaveRequest) (leaverequest.ApplyLeaveResponse, error) {
				t.Fatal("service must not be called without an identity")
				return leaverequest.ApplyLeaveResponse{}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"ANNUAL","start_date":"2027-03-10","end_date":"2027-03-11"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/api/LeaveRequest/apply", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Apply(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
		assert.Equal(t, "Invalid token: Employee ID not found.", env.Error.Message)
	})

	t.Run("negative invalid body", func(t *testing.T) {
		svc := &fakeLeaveRequestService{}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"VACATION","start_date":"2027-03-10","end_date":"2027-03-11"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/api/LeaveRequest/apply", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", uuid.New().String())

		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("negative past date maps to 400", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			applyFn: func(ctx context.Context, eid string, req leaverequest.ApplyLeaveRequest) (leaverequest.ApplyLeaveResponse, error) {
				return leaverequest.ApplyLeaveResponse{}, lrerrors.ErrPastStartDate
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"ANNUAL","start_date":"2020-03-10","end_date":"2027-03-11"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/api/LeaveRequest/apply", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", uuid.New().String())

		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "Cannot apply for past dates.", env.Error.Message)
	})
}

func TestLeaveRequestHandler_Decide(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success raw boolean body", func(t *testing.T) {
		managerID := uuid.New().String()
		requestID := uuid.New().String()

		svc := &fakeLeaveRequestService{
			decideFn: func(ctx context.Context, mid, rid string, approved bool) (leaverequest.DecideLeaveResponse, error) {
				assert.Equal(t, managerID, mid)
				assert.Equal(t, requestID, rid)
				assert.True(t, approved)
				return leaverequest.DecideLeaveResponse{
					Message: leaverequest.MsgUpdated,
					Request: leaverequest.LeaveRequestResponse{ID: rid, Status: "APPROVED"},
				}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/LeaveRequest/approve/"+requestID, strings.NewReader("true"))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: requestID}}
		c.Set("employee_id", managerID)

		h.Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var got leaverequest.DecideLeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "Leave request updated.", got.Message)
		assert.Equal(t, "APPROVED", got.Request.Status)
	})

	t.Run("success false rejects", func(t *testing.T) {
		requestID := uuid.New().String()

		svc := &fakeLeaveRequestService{
			decideFn: func(ctx context.Context, mid, rid string, approved bool) (leaverequest.DecideLeaveResponse, error) {
				assert.False(t, approved)
				return leaverequest.DecideLeaveResponse{
					Message: leaverequest.MsgUpdated,
					Request: leaverequest.LeaveRequestResponse{ID: rid, Status: "REJECTED"},
				}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/LeaveRequest/approve/"+requestID, strings.NewReader("false"))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: requestID}}
		c.Set("employee_id", uuid.New().String())

		h.Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative non boolean body", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			decideFn: func(ctx context.Context, mid, rid string, approved bool) (leaverequest.DecideLeaveResponse, error) {
				t.Fatal("service must not be called with an invalid body")
				return leaverequest.DecideLeaveResponse{}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/LeaveRequest/approve/x", strings.NewReader(`"yes"`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "x"}}
		c.Set("employee_id", uuid.New().String())

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative insufficient balance maps to 400", func(t *testing.T) {
		requestID := uuid.New().String()

		svc := &fakeLeaveRequestService{
			decideFn: func(ctx context.Context, mid, rid string, approved bool) (leaverequest.DecideLeaveResponse, error) {
				return leaverequest.DecideLeaveResponse{}, lrerrors.ErrInsufficientBalance
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/LeaveRequest/approve/"+requestID, strings.NewReader("true"))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: requestID}}
		c.Set("employee_id", uuid.New().String())

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
		assert.Equal(t, "Insufficient leave balance.", env.Error.Message)
	})

	t.Run("negative already actioned maps to 400", func(t *testing.T) {
		requestID := uuid.New().String()

		svc := &fakeLeaveRequestService{
			decideFn: func(ctx context.Context, mid, rid string, approved bool) (leaverequest.DecideLeaveResponse, error) {
				return leaverequest.DecideLeaveResponse{}, lrerrors.ErrAlreadyActioned
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/LeaveRequest/approve/"+requestID, strings.NewReader("false"))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: requestID}}
		c.Set("employee_id", uuid.New().String())

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})

	t.Run("negative not found maps to 404", func(t *testing.T) {
		requestID := uuid.New().String()

		svc := &fakeLeaveRequestService{
			decideFn: func(ctx context.Context, mid, rid string, approved bool) (leaverequest.DecideLeaveResponse, error) {
				return leaverequest.DecideLeaveResponse{}, lrerrors.ErrLeaveRequestNotFound
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/LeaveRequest/approve/"+requestID, strings.NewReader("true"))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: requestID}}
		c.Set("employee_id", uuid.New().String())

		h.Decide(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "Leave request not found.", env.Error.Message)
	})
}
