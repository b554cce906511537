package endpoints

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rta-apps/pta-archiving-backend/pkg/model"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

func TestHREmployeesListEndpoint(t *testing.T) {
	t.Run("passes search and page through", func(t *testing.T) {
		ts := newTestServer(t)
		ts.hr.On("List", mock.Anything, "ahmed", 3).Return([]model.HREmployee{
			{SystemID: 42, FullNameEN: strPtr("Ahmed Saeed"), EmpNo: strPtr("10042")},
		}, 31, nil)

		rec := ts.doAs(t, viewerIdentity(),
			httptest.NewRequest(http.MethodGet, "/api/hr_employees?search=ahmed&page=3", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"employees": [
				{"system_id": 42, "fullname_en": "Ahmed Saeed", "fullname_ar": null, "empno": "10042"}
			],
			"hasMore": true
		}`, rec.Body.String())
	})

	t.Run("hasMore is false on the last page", func(t *testing.T) {
		ts := newTestServer(t)
		ts.hr.On("List", mock.Anything, "", 3).Return([]model.HREmployee{}, 30, nil)

		rec := ts.doAs(t, viewerIdentity(),
			httptest.NewRequest(http.MethodGet, "/api/hr_employees?page=3", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"employees": [], "hasMore": false}`, rec.Body.String())
	})

	t.Run("page defaults to 1", func(t *testing.T) {
		ts := newTestServer(t)
		ts.hr.On("List", mock.Anything, "", 1).Return([]model.HREmployee{}, 0, nil)

		rec := ts.doAs(t, viewerIdentity(),
			httptest.NewRequest(http.MethodGet, "/api/hr_employees", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		ts.hr.AssertExpectations(t)
	})
}

func TestHREmployeeDetailsEndpoint(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		ts := newTestServer(t)
		ts.hr.On("Get", mock.Anything, int64(42)).Return(&model.HREmployeeDetails{
			SystemID:   42,
			FullNameEN: strPtr("Ahmed Saeed"),
			EmpNo:      strPtr("10042"),
			Department: strPtr("Licensing"),
		}, nil)

		rec := ts.doAs(t, viewerIdentity(),
			httptest.NewRequest(http.MethodGet, "/api/hr_employees/42", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"system_id": 42,
			"fullname_en": "Ahmed Saeed",
			"fullname_ar": null,
			"empno": "10042",
			"department": "Licensing",
			"section": null,
			"email": null,
			"mobile": null,
			"supervisorname": null,
			"nationality": null,
			"job_name": null
		}`, rec.Body.String())
	})

	t.Run("unknown employee", func(t *testing.T) {
		ts := newTestServer(t)
		ts.hr.On("Get", mock.Anything, int64(99)).Return(nil, store.ErrHREmployeeNotFound)

		rec := ts.doAs(t, viewerIdentity(),
			httptest.NewRequest(http.MethodGet, "/api/hr_employees/99", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error": "Not found"}`, rec.Body.String())
	})
}
