package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmin574/pc-diamond-edge/pkg/apperr"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestFromErrorValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	FromError(rec, apperr.ValidationField("name", "The name field is required."))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decode(t, rec)
	errs, ok := body["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "name")
}

func TestFromErrorReference(t *testing.T) {
	rec := httptest.NewRecorder()
	FromError(rec, apperr.Reference("material", 9))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "material 9 does not exist", body["message"])
}

func TestFromErrorNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	FromError(rec, fmt.Errorf("find material: %w", apperr.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFromErrorStoreFailuresAreOpaque(t *testing.T) {
	rec := httptest.NewRecorder()
	FromError(rec, &apperr.StoreError{Op: "create product", Err: fmt.Errorf("disk full")})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// Internal details never leak to the client.
	body := decode(t, rec)
	assert.Equal(t, "Internal Server Error", body["message"])
	assert.NotContains(t, rec.Body.String(), "disk full")
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "world", data["hello"])
}
