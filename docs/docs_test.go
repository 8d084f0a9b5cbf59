package docs_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"

	"predictions-hub/docs"
)

func TestSwaggerDocRegistered(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger  string                            `json:"swagger"`
		BasePath string                            `json:"basePath"`
		Paths    map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, docs.SwaggerInfo.BasePath, doc.BasePath)

	expected := map[string]string{
		"/health":                 "get",
		"/ready":                  "get",
		"/predictions":            "get",
		"/predictions/reload":     "post",
		"/predictions/columns":    "get",
		"/predictions/statistics": "get",
		"/predictions/export":     "get",
		"/gallery":                "get",
		"/activities":             "get",
	}
	assert.Len(t, doc.Paths, len(expected))
	for path, method := range expected {
		assert.Contains(t, doc.Paths[path], method, path)
	}
}

func TestSwaggerHandler(t *testing.T) {
	r := chi.NewRouter()
	r.Handle("/swagger*", httpSwagger.WrapHandler)

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/predictions/reload")
}
