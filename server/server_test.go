package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dekarrin/rg2nfa/internal/version"
	"github.com/dekarrin/rg2nfa/server/api"
	"github.com/dekarrin/rg2nfa/server/result"
	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T) Server {
	srv, err := New(Config{UnauthDelayMillis: -1})
	if err != nil {
		t.Fatalf("could not create server: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv
}

func do(srv Server, method, path, contentType, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func createConversion(t *testing.T, srv Server, name, grammar string) api.ConversionModel {
	body, _ := json.Marshal(api.ConversionRequest{Name: name, Grammar: grammar})
	w := do(srv, http.MethodPost, "/api/v1/conversions", "application/json", string(body))
	if w.Code != http.StatusCreated {
		t.Fatalf("create conversion: got HTTP-%d: %s", w.Code, w.Body.String())
	}

	var m api.ConversionModel
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("create conversion: bad response body: %v", err)
	}
	return m
}

func Test_Server_CreateConversion(t *testing.T) {
	testCases := []struct {
		name            string
		grammar         string
		expectLinearity string
		expectStates    []string
		expectAccepting []string
		expectSymbols   []string
		expectDropped   int
	}{
		{
			name:            "right-linear",
			grammar:         "<S> -> a <A> | b\n<A> -> a <A> | b\n",
			expectLinearity: "right-linear",
			expectStates:    []string{"q0", "q1", "q2"},
			expectAccepting: []string{"q2"},
			expectSymbols:   []string{"a", "b"},
		},
		{
			name:            "left-linear",
			grammar:         "<S> -> <A> a\n<A> -> b\n",
			expectLinearity: "left-linear",
			expectStates:    []string{"q2", "q1", "q0"},
			expectAccepting: []string{"q0"},
			expectSymbols:   []string{"a", "b"},
		},
		{
			name:            "undeclared reference is dropped",
			grammar:         "<S> -> a <X> | b\n",
			expectLinearity: "right-linear",
			expectStates:    []string{"q0", "q1"},
			expectAccepting: []string{"q1"},
			expectSymbols:   []string{"a", "b"},
			expectDropped:   1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			srv := newTestServer(t)

			m := createConversion(t, srv, tc.name, tc.grammar)

			assert.NotEmpty(m.ID)
			assert.Equal("/api/v1/conversions/"+m.ID, m.URI)
			assert.Equal(tc.name, m.Name)
			assert.Equal(tc.grammar, m.Grammar)
			assert.Equal(tc.expectLinearity, m.Linearity)
			assert.Equal(tc.expectStates, m.Table.States)
			assert.Equal(tc.expectAccepting, m.Table.Accepting)
			assert.Equal(tc.expectSymbols, m.Table.Symbols)
			assert.Len(m.Dropped, tc.expectDropped)
		})
	}
}

func Test_Server_CreateConversion_BadRequest(t *testing.T) {
	testCases := []struct {
		name        string
		contentType string
		body        string
	}{
		{
			name:        "mixed shapes",
			contentType: "application/json",
			body:        `{"name": "x", "grammar": "<S> -> a <A>\n<A> -> <S> b\n"}`,
		},
		{
			name:        "malformed rule",
			contentType: "application/json",
			body:        `{"name": "x", "grammar": "<S> -> a <A> <B>\n"}`,
		},
		{
			name:        "no grammar",
			contentType: "application/json",
			body:        `{"name": "x"}`,
		},
		{
			name:        "not JSON",
			contentType: "application/json",
			body:        `<S> -> a`,
		},
		{
			name:        "wrong content type",
			contentType: "text/plain",
			body:        `{"name": "x", "grammar": "<S> -> a\n"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			srv := newTestServer(t)

			w := do(srv, http.MethodPost, "/api/v1/conversions", tc.contentType, tc.body)

			assert.Equal(http.StatusBadRequest, w.Code)

			var errResp result.ErrorResponse
			if assert.NoError(json.Unmarshal(w.Body.Bytes(), &errResp)) {
				assert.Equal(http.StatusBadRequest, errResp.Status)
				assert.NotEmpty(errResp.Error)
			}

			// nothing is stored
			all, err := srv.Service().GetAllConversions(context.Background())
			assert.NoError(err)
			assert.Empty(all)
		})
	}
}

func Test_Server_GetAllConversions(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)

	first := createConversion(t, srv, "first", "<S> -> a\n")
	second := createConversion(t, srv, "second", "<S> -> <S> b | c\n")

	w := do(srv, http.MethodGet, "/api/v1/conversions", "", "")
	if !assert.Equal(http.StatusOK, w.Code) {
		return
	}

	var all []api.ConversionModel
	if !assert.NoError(json.Unmarshal(w.Body.Bytes(), &all)) {
		return
	}
	if assert.Len(all, 2) {
		assert.Equal(first.ID, all[0].ID)
		assert.Equal(second.ID, all[1].ID)
	}
}

func Test_Server_GetConversion(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)

	created := createConversion(t, srv, "c", "<S> -> a <S> | b\n")

	w := do(srv, http.MethodGet, created.URI, "", "")
	if !assert.Equal(http.StatusOK, w.Code) {
		return
	}

	var got api.ConversionModel
	if assert.NoError(json.Unmarshal(w.Body.Bytes(), &got)) {
		assert.Equal(created, got)
	}
}

func Test_Server_GetConversion_NotFound(t *testing.T) {
	srv := newTestServer(t)

	w := do(srv, http.MethodGet, "/api/v1/conversions/5f1ff2b4-4d1f-4a3c-8b1c-8e7b7c0e9a10", "", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func Test_Server_GetConversionTable(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)

	created := createConversion(t, srv, "c", "<S> -> a <A> | b\n<A> -> a <A> | b\n")

	w := do(srv, http.MethodGet, created.URI+"/table", "", "")

	assert.Equal(http.StatusOK, w.Code)
	assert.Equal("text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(";;;F\n;q0;q1;q2\na;q1;q1;\nb;q2;q2;\n", w.Body.String())
}

func Test_Server_DeleteConversion(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)

	created := createConversion(t, srv, "c", "<S> -> a\n")

	w := do(srv, http.MethodDelete, created.URI, "", "")
	assert.Equal(http.StatusOK, w.Code)

	w = do(srv, http.MethodGet, created.URI, "", "")
	assert.Equal(http.StatusNotFound, w.Code)

	w = do(srv, http.MethodDelete, created.URI, "", "")
	assert.Equal(http.StatusNotFound, w.Code)
}

func Test_Server_GetInfo(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)

	w := do(srv, http.MethodGet, "/api/v1/info", "", "")
	if !assert.Equal(http.StatusOK, w.Code) {
		return
	}

	var info api.InfoModel
	if assert.NoError(json.Unmarshal(w.Body.Bytes(), &info)) {
		assert.Equal(version.ServerCurrent, info.Version.Server)
		assert.Equal(version.Current, info.Version.RG2NFA)
	}
}

func Test_Server_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	w := do(srv, http.MethodPut, "/api/v1/conversions", "application/json", `{}`)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func Test_Server_BodyTooLarge(t *testing.T) {
	srv, err := New(Config{UnauthDelayMillis: -1, MaxBodyBytes: 16})
	if err != nil {
		t.Fatalf("could not create server: %v", err)
	}
	defer srv.Close()

	w := do(srv, http.MethodPost, "/api/v1/conversions", "application/json", `{"name": "big", "grammar": "<S> -> a\n"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
