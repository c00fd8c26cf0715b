// Package docs registers the OpenAPI document served by the Swagger UI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/countries/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["countries"],
                "summary": "Summarize all countries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SummaryResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/countries/summary/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["countries"],
                "summary": "Summarize countries matching a name",
                "parameters": [
                    {"type": "string", "description": "Country name fragment", "name": "name", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SummaryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.CountryItem": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "population": {"type": "integer"},
                "region": {"type": "string"}
            }
        },
        "handler.SummaryResponse": {
            "type": "object",
            "properties": {
                "countries": {"type": "array", "items": {"$ref": "#/definitions/handler.CountryItem"}},
                "summary": {"$ref": "#/definitions/model.AggregateResult"}
            }
        },
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "request_id": {"type": "string"}
            }
        },
        "model.AggregateResult": {
            "type": "object",
            "properties": {
                "average_population": {"type": "integer"},
                "regions": {"type": "array", "items": {"$ref": "#/definitions/model.RegionStat"}},
                "total_countries": {"type": "integer"},
                "total_population": {"type": "integer"}
            }
        },
        "model.RegionStat": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "population": {"type": "integer"},
                "region": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Country Statistics API",
	Description:      "Population aggregates over the REST Countries API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
