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

const (
	openAPIVersion = "3.1.0"
	jsonMediaType  = "application/json"
)

func jsonResponse(desc string, schema ObjectProperty) MethodResponse {
	return MethodResponse{
		Description: desc,
		Content: map[string]MethodResponseContent{
			jsonMediaType: {
				Schema: MethodResponseSchema{
					Type:       schema.Type,
					Properties: schema.Properties,
				},
			},
		},
	}
}

func errorResponse(desc string) MethodResponse {
	return jsonResponse(
		desc,
		ObjectProperty{
			Type: "object",
			Properties: ObjectProperties{
				"error": ObjectProperty{Type: "string"},
			},
		},
	)
}

func NewResponse(ver, url string) *APIResponse {
	schemas := createSchemas()
	paths := make(map[string]Methods)

	paths["/taxonomy"] = Methods{
		Get: &Method{
			Description: "Shows the imagery taxonomy (categories and their terms) used for extraction.",
			OperationID: "Taxonomy",
			Parameters:  []Parameter{},
			Responses: MethodResponses{
				200: jsonResponse("taxonomy", schemas["Taxonomy"]),
			},
		},
	}

	paths["/imagery"] = Methods{
		Get: &Method{
			Description: "Returns the complete analysis of the served poem collection.",
			OperationID: "Imagery",
			Parameters:  []Parameter{},
			Responses: MethodResponses{
				200: jsonResponse("analysis document", schemas["Document"]),
				404: errorResponse("no collection loaded"),
			},
		},
	}

	paths["/imagery/stats"] = Methods{
		Get: &Method{
			Description: "Shows category shares and the most frequent imagery of the served collection.",
			OperationID: "Stats",
			Parameters:  []Parameter{},
			Responses: MethodResponses{
				200: jsonResponse("summary", ObjectProperty{Type: "object"}),
				404: errorResponse("no collection loaded"),
			},
		},
	}

	paths["/imagery/cloud"] = Methods{
		Get: &Method{
			Description: "Provides a word cloud dataset with the most frequent imagery words.",
			OperationID: "WordCloud",
			Parameters: []Parameter{
				{
					Name:        "limit",
					In:          "query",
					Description: "Maximum number of returned words",
					Required:    false,
					Schema: ParamSchema{
						Type:    "integer",
						Default: 50,
					},
				},
			},
			Responses: MethodResponses{
				200: jsonResponse("word cloud items", schemas["WordCloud"]),
				400: errorResponse("invalid limit"),
				404: errorResponse("no collection loaded"),
			},
		},
	}

	paths["/poems"] = Methods{
		Get: &Method{
			Description: "Lists poems of the served collection, optionally only the ones containing an imagery word.",
			OperationID: "Poems",
			Parameters: []Parameter{
				{
					Name:        "word",
					In:          "query",
					Description: "An imagery word the poems must contain",
					Required:    false,
					Schema: ParamSchema{
						Type: "string",
					},
				},
				{
					Name:        "offset",
					In:          "query",
					Description: "Index of the first returned poem",
					Required:    false,
					Schema: ParamSchema{
						Type:    "integer",
						Default: 0,
					},
				},
				{
					Name:        "limit",
					In:          "query",
					Description: "Maximum number of returned poems",
					Required:    false,
					Schema: ParamSchema{
						Type:    "integer",
						Default: 50,
					},
				},
			},
			Responses: MethodResponses{
				200: jsonResponse(
					"a page of poems",
					ObjectProperty{
						Type: "object",
						Properties: ObjectProperties{
							"total":  ObjectProperty{Type: "integer"},
							"offset": ObjectProperty{Type: "integer"},
							"limit":  ObjectProperty{Type: "integer"},
							"word":   ObjectProperty{Type: "string"},
							"poems":  ObjectProperty{Type: "array", Items: &arrayItem{Type: "object"}},
						},
					},
				),
				400: errorResponse("invalid paging arguments"),
				404: errorResponse("no collection loaded"),
			},
		},
	}

	paths["/poems/{idx}"] = Methods{
		Get: &Method{
			Description: "Shows a single poem with its imagery.",
			OperationID: "Poem",
			Parameters: []Parameter{
				{
					Name:        "idx",
					In:          "path",
					Description: "Position of the poem within the collection",
					Required:    true,
					Schema: ParamSchema{
						Type: "integer",
					},
				},
			},
			Responses: MethodResponses{
				200: jsonResponse("poem", schemas["Poem"]),
				400: errorResponse("invalid index"),
				404: errorResponse("poem not found"),
			},
		},
	}

	paths["/analyze"] = Methods{
		Post: &Method{
			Description: "Analyzes a posted collection of poems (plain UTF-8 text, a title line followed by the poem lines).",
			OperationID: "Analyze",
			Parameters: []Parameter{
				{
					Name:        "author",
					In:          "query",
					Description: "Author attached to all the poems",
					Required:    false,
					Schema: ParamSchema{
						Type: "string",
					},
				},
				{
					Name:        "dynasty",
					In:          "query",
					Description: "Dynasty attached to all the poems",
					Required:    false,
					Schema: ParamSchema{
						Type: "string",
					},
				},
			},
			RequestBody: &RequestBody{
				Description: "poems",
				Required:    true,
				Content: map[string]MethodResponseContent{
					"text/plain": {Schema: MethodResponseSchema{Type: "string"}},
				},
			},
			Responses: MethodResponses{
				200: jsonResponse("analysis document", schemas["Document"]),
				401: errorResponse("unauthorized"),
				413: errorResponse("text too large"),
				504: errorResponse("analysis timeout"),
			},
		},
	}

	return &APIResponse{
		OpenAPI: openAPIVersion,
		Info: Info{
			Title:       "POETICS",
			Description: "Imagery extraction and statistics for classical Chinese poetry",
			Version:     ver,
		},
		Servers: []Server{
			{URL: url},
		},
		Paths: paths,
	}
}
