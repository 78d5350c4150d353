package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"shift_manager_backend/internal/models"
	"shift_manager_backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeShiftService answers every call from its function fields; unset fields panic.
type fakeShiftService struct {
	assign     func(services.AssignShiftRequest) (int64, error)
	update     func(int64, services.UpdateShiftRequest) error
	remove     func(int64) error
	completion func(shiftID, taskID int64, completed bool) error
	get        func(int64) (*models.Shift, error)
	byDate     func(string) (*models.ShiftsByType, error)
	byWeek     func(string) ([]models.Shift, error)
	byEmployee func(int64, string) ([]models.Shift, error)
}

func (f *fakeShiftService) AssignShift(_ context.Context, req services.AssignShiftRequest) (int64, error) {
	return f.assign(req)
}

func (f *fakeShiftService) UpdateShift(_ context.Context, id int64, req services.UpdateShiftRequest) error {
	return f.update(id, req)
}

func (f *fakeShiftService) DeleteShift(_ context.Context, id int64) error { return f.remove(id) }

func (f *fakeShiftService) SetTaskCompletion(_ context.Context, shiftID, taskID int64, completed bool) error {
	return f.completion(shiftID, taskID, completed)
}

func (f *fakeShiftService) GetShiftByID(_ context.Context, id int64) (*models.Shift, error) {
	return f.get(id)
}

func (f *fakeShiftService) ListShiftsByDate(_ context.Context, date string) (*models.ShiftsByType, error) {
	return f.byDate(date)
}

func (f *fakeShiftService) ListShiftsByWeek(_ context.Context, start string) ([]models.Shift, error) {
	return f.byWeek(start)
}

func (f *fakeShiftService) ListShiftsByEmployee(_ context.Context, id int64, month string) ([]models.Shift, error) {
	return f.byEmployee(id, month)
}

func perform(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, _ := json.Marshal(b)
			reader = bytes.NewBuffer(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
