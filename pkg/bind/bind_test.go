package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Name string `json:"name" validate:"required"`
}

func request(body string) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return httptest.NewRecorder(), req
}

func TestJSONDecodesAndValidates(t *testing.T) {
	w, r := request(`{"name":"Addis Kitchen"}`)

	var p testPayload
	errs, err := JSON(w, r, &p)
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, "Addis Kitchen", p.Name)
}

func TestJSONReportsValidationFailures(t *testing.T) {
	w, r := request(`{}`)

	var p testPayload
	errs, err := JSON(w, r, &p)
	require.NoError(t, err)
	assert.Contains(t, errs, "name")
}

func TestJSONRejectsMalformedBody(t *testing.T) {
	w, r := request(`{"name":`)

	var p testPayload
	_, err := JSON(w, r, &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}
