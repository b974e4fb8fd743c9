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
	"fmt"
	"net/http"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

func findHTTPProtocol(req *http.Request) string {
	if prot := req.Header.Get("x-forwarded-proto"); prot != "" {
		return prot
	}
	if req.TLS != nil {
		return "https"
	}
	return "http"
}

func findHTTPServer(req *http.Request) string {
	if serv := req.Header.Get("x-forwarded-host"); serv != "" {
		return serv
	}
	return req.Host
}

// MkHandleRequest creates a handler serving the API description.
// With empty publicURL, the server URL is derived from the request.
func MkHandleRequest(publicURL, ver string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		srvURL := publicURL
		if srvURL == "" {
			srvURL = fmt.Sprintf("%s://%s", findHTTPProtocol(ctx.Request), findHTTPServer(ctx.Request))
		}
		uniresp.WriteJSONResponse(ctx.Writer, NewResponse(ver, srvURL))
	}
}
