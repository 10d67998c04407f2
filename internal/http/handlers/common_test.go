package handlers

import (
	"net/http/httptest"
	"testing"

	"transport-crm/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/bookings?"+rawQuery, nil)
	return c
}

func TestFilterFromQueryReadsAllParams(t *testing.T) {
	c := queryContext(t, "date_filter_type=month&filter_month=2025-03&filter_date=2025-03-15&filter_agency=Sol&filter_provider=Trans&filter_vehicle=Van")

	f := filterFromQuery(c)
	assert.Equal(t, domain.DateFilterMonth, f.DateFilterType)
	assert.Equal(t, "2025-03", f.Month)
	assert.Equal(t, "2025-03-15", f.Date)
	assert.Equal(t, "Sol", f.Agency)
	assert.Equal(t, "Trans", f.Provider)
	assert.Equal(t, "Van", f.Vehicle)
	assert.True(t, f.MonthActive())
}

func TestFilterMonthRequiresBothTypeAndValue(t *testing.T) {
	// a stale filter_month without the month toggle keeps the day filter active
	c := queryContext(t, "filter_month=2025-03&filter_date=2025-03-15")
	f := filterFromQuery(c)
	assert.False(t, f.MonthActive())

	// toggle without a value is ignored too
	c = queryContext(t, "date_filter_type=month")
	f = filterFromQuery(c)
	assert.False(t, f.MonthActive())
}

func TestPageFromQuery(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"paged=3", 3},
		{"paged=0", 1},
		{"paged=-2", 1},
		{"paged=abc", 1},
	}
	for _, tc := range cases {
		c := queryContext(t, tc.query)
		assert.Equal(t, tc.want, pageFromQuery(c), "query %q", tc.query)
	}
}
