// Package api holds the OpenAPI document served at /swagger.
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "info@localnerve.com"
        },
        "license": {
            "name": "AGPL-3.0",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Every endpoint with a one-line description",
                "produces": ["application/json"],
                "tags": ["Help"],
                "summary": "API help",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports whether the database is reachable",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.HealthCheckResult"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/services.HealthCheckResult"}}
                }
            }
        },
        "/sales_records/books/{book}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["SalesRecords"],
                "summary": "Sales records of a book",
                "parameters": [
                    {"type": "integer", "description": "Book ID", "name": "book", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.SalesRecord"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        },
        "/sales_records/years/{year}": {
            "get": {
                "description": "Records of one year ordered by month then book. A year with no records is a 400 naming the recorded range; an empty table is a 404.",
                "produces": ["application/json"],
                "tags": ["SalesRecords"],
                "summary": "Sales records of a year",
                "parameters": [
                    {"type": "integer", "description": "Year", "name": "year", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.SalesRecord"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        },
        "/sales_records/years/{year}/months/{month}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["SalesRecords"],
                "summary": "Sales records of a month",
                "parameters": [
                    {"type": "integer", "description": "Year", "name": "year", "in": "path", "required": true},
                    {"type": "integer", "description": "Month (1-12)", "name": "month", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.SalesRecord"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        },
        "/sales_records/years/{year}/months/{month}/books/{book}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["SalesRecords"],
                "summary": "Sales record of a book for one month",
                "parameters": [
                    {"type": "integer", "description": "Year", "name": "year", "in": "path", "required": true},
                    {"type": "integer", "description": "Month (1-12)", "name": "month", "in": "path", "required": true},
                    {"type": "integer", "description": "Book ID", "name": "book", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SalesRecord"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        }
    },
    "definitions": {
        "models.SalesRecord": {
            "type": "object",
            "properties": {
                "sales_record_id": {"type": "integer"},
                "book_id": {"type": "integer"},
                "year": {"type": "integer"},
                "month": {"type": "integer"},
                "copies_sold": {"type": "integer"},
                "gross_profit": {"type": "number"},
                "net_profit": {"type": "number"}
            }
        },
        "services.HealthCheckResult": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "database": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "error": {"type": "string"}
            }
        },
        "utils.ErrorResponseStruct": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "message": {"type": "string"},
                "ok": {"type": "boolean"},
                "timestamp": {"type": "string"},
                "url": {"type": "string"},
                "type": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Publishing House API",
	Description:      "REST service for a publishing house: authors, books, manuscripts, editors, series, salespeople, clients and sales records",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
