// Copyright 2026 The POETICS authors
//   This file is part of POETICS.
//
//  POETICS is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  POETICS is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with POETICS.  If not, see <https://www.gnu.org/licenses/>.


package openapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponsePaths(t *testing.T) {
	resp := NewResponse("1.0.0", "http://localhost:3010")
	for _, p := range []string{"/taxonomy", "/imagery", "/imagery/stats", "/imagery/cloud", "/poems", "/poems/{idx}"} {
		methods, ok := resp.Paths[p]
		require.True(t, ok, p)
		assert.NotNil(t, methods.Get, p)
		assert.Nil(t, methods.Post, p)
	}
	assert.NotNil(t, resp.Paths["/analyze"].Post)
	assert.Equal(t, "1.0.0", resp.Info.Version)
}

func TestHandlerDerivesServerURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/openapi", MkHandleRequest("", "1.0.0"))

	req := httptest.NewRequest(http.MethodGet, "/openapi", nil)
	req.Host = "poems.example.org"
	req.Header.Set("x-forwarded-proto", "https")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Servers, 1)
	assert.Equal(t, "https://poems.example.org", resp.Servers[0].URL)
	assert.Equal(t, openAPIVersion, resp.OpenAPI)
}

func TestHandlerUsesPublicURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/openapi", MkHandleRequest("https://api.example.org/poetics", "2.0"))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi", nil))

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://api.example.org/poetics", resp.Servers[0].URL)
}
