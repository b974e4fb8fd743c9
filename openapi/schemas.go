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

func matchProperties() ObjectProperties {
	return ObjectProperties{
		"word": ObjectProperty{
			Type: "string",
		},
		"category": ObjectProperty{
			Type: "string",
		},
		"count": ObjectProperty{
			Type: "integer",
		},
		"type": ObjectProperty{
			Type: "string",
			Enum: []string{"single_char", "double_char"},
		},
	}
}

func poemProperties() ObjectProperties {
	return ObjectProperties{
		"title": ObjectProperty{
			Type: "string",
		},
		"content": ObjectProperty{
			Type:        "string",
			Description: "poem lines joined by a newline",
		},
		"imagery": ObjectProperty{
			Type: "array",
			Items: &arrayItem{
				Type:       "object",
				Properties: matchProperties(),
			},
		},
		"dynasty": ObjectProperty{
			Type: "string",
		},
		"author": ObjectProperty{
			Type: "string",
		},
	}
}

func freqListProperty(desc string) ObjectProperty {
	return ObjectProperty{
		Type:                 "object",
		AdditionalProperties: &AdditionalProperty{Type: "integer"},
		Description:          desc,
	}
}

func createSchemas() ObjectProperties {
	ans := make(ObjectProperties)
	ans["Taxonomy"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"singleChar": ObjectProperty{
				Type: "array",
				Items: &arrayItem{
					Type: "object",
					Properties: ObjectProperties{
						"category": ObjectProperty{Type: "string"},
						"terms":    ObjectProperty{Type: "array", Items: &arrayItem{Type: "string"}},
					},
				},
			},
			"multiChar": ObjectProperty{
				Type: "array",
				Items: &arrayItem{
					Type: "object",
					Properties: ObjectProperties{
						"category": ObjectProperty{Type: "string"},
						"terms":    ObjectProperty{Type: "array", Items: &arrayItem{Type: "string"}},
					},
				},
			},
			"categories": ObjectProperty{
				Type:        "array",
				Items:       &arrayItem{Type: "string"},
				Description: "all the categories of both tiers in the order of their first appearance",
			},
		},
	}
	ans["Poem"] = ObjectProperty{
		Type:       "object",
		Properties: poemProperties(),
	}
	ans["Document"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"metadata": ObjectProperty{
				Type: "object",
				Properties: ObjectProperties{
					"total_poems":                   ObjectProperty{Type: "integer"},
					"total_imagery_words":           ObjectProperty{Type: "integer"},
					"total_imagery_occurrences":     ObjectProperty{Type: "integer"},
					"total_single_char_imagery":     ObjectProperty{Type: "integer"},
					"total_single_char_occurrences": ObjectProperty{Type: "integer"},
					"author":                        ObjectProperty{Type: "string"},
					"dynasty":                       ObjectProperty{Type: "string"},
					"source":                        ObjectProperty{Type: "string"},
					"collection_date":               ObjectProperty{Type: "string"},
					"run_id":                        ObjectProperty{Type: "string"},
					"source_checksum":               ObjectProperty{Type: "string"},
				},
			},
			"imagery_statistics": ObjectProperty{
				Type: "object",
				Properties: ObjectProperties{
					"word_frequency":                freqListProperty("top imagery words, ordered by frequency"),
					"category_frequency":            freqListProperty("all categories, ordered by frequency"),
					"single_char_frequency":         freqListProperty("top single character imagery, ordered by frequency"),
					"total_unique_imagery":          ObjectProperty{Type: "integer"},
					"total_imagery_occurrences":     ObjectProperty{Type: "integer"},
					"total_single_char_imagery":     ObjectProperty{Type: "integer"},
					"total_single_char_occurrences": ObjectProperty{Type: "integer"},
				},
			},
			"poems": ObjectProperty{
				Type: "array",
				Items: &arrayItem{
					Type:       "object",
					Properties: poemProperties(),
				},
			},
		},
	}
	ans["WordCloud"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"items": ObjectProperty{
				Type: "array",
				Items: &arrayItem{
					Type: "object",
					Properties: ObjectProperties{
						"text":       ObjectProperty{Type: "string"},
						"frequency":  ObjectProperty{Type: "integer", Description: "number of poems containing the word"},
						"totalCount": ObjectProperty{Type: "integer"},
						"categories": ObjectProperty{Type: "array", Items: &arrayItem{Type: "string"}},
						"poems":      ObjectProperty{Type: "array", Items: &arrayItem{Type: "object"}},
					},
				},
			},
		},
	}
	return ans
}
