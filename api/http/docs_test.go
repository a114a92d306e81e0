package http_test

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/users-api/docs"
)

type swaggerDoc struct {
	Paths map[string]map[string]struct {
		Security  []map[string][]string      `json:"security"`
		Responses map[string]json.RawMessage `json:"responses"`
	} `json:"paths"`
}

func readSwagger(t *testing.T) swaggerDoc {
	t.Helper()
	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))
	return doc
}

func TestSwaggerMatchesRegisteredRoutes(t *testing.T) {
	f := newFixture(t, 0)
	doc := readSwagger(t)

	var registered, documented []string
	for _, r := range f.app.GetRoutes(true) {
		switch r.Method {
		case http.MethodGet, http.MethodPost, http.MethodDelete:
		default:
			continue
		}
		path := strings.ReplaceAll(r.Path, ":id", "{id}")
		registered = append(registered, strings.ToLower(r.Method)+" "+path)
	}
	for path, ops := range doc.Paths {
		for method := range ops {
			documented = append(documented, method+" "+path)
		}
	}
	sort.Strings(registered)
	sort.Strings(documented)
	assert.Equal(t, registered, documented)
}

func TestSwaggerDocumentsGuardAndStatuses(t *testing.T) {
	doc := readSwagger(t)

	del := doc.Paths["/api/users/{id}"]["delete"]
	require.NotEmpty(t, del.Security)
	assert.Contains(t, del.Security[0], "BearerAuth")
	for _, code := range []string{"200", "401", "403", "404"} {
		assert.Contains(t, del.Responses, code)
	}

	create := doc.Paths["/api/users"]["post"]
	for _, code := range []string{"201", "400", "409"} {
		assert.Contains(t, create.Responses, code)
	}

	login := doc.Paths["/api/login"]["post"]
	for _, code := range []string{"200", "400", "401", "429"} {
		assert.Contains(t, login.Responses, code)
	}
}
