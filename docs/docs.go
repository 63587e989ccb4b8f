// Package docs registra la especificación OpenAPI servida en /swagger.
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
        "/health": {
            "get": {
                "tags": ["system"],
                "summary": "Liveness",
                "produces": ["text/plain"],
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/score": {
            "post": {
                "tags": ["analysis"],
                "summary": "Calcular score de salud",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/health.Record"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/analysis.scoreResponse"}},
                    "400": {"description": "invalid json / signos vitales faltantes", "schema": {"type": "string"}}
                }
            }
        },
        "/analyze": {
            "post": {
                "tags": ["analysis"],
                "summary": "Analizar registro",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/health.Record"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/analysis.Result"}},
                    "400": {"description": "success=false", "schema": {"$ref": "#/definitions/analysis.Result"}}
                }
            }
        },
        "/datasets": {
            "get": {
                "tags": ["datasets"],
                "summary": "Listar corridas",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["datasets"],
                "summary": "Generar dataset",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "payload", "schema": {"$ref": "#/definitions/datasets.generateRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/datasets.runResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}}
                }
            }
        },
        "/datasets/{runID}": {
            "get": {
                "tags": ["datasets"],
                "summary": "Obtener corrida",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "runID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/datasets.runResponse"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            }
        },
        "/datasets/{runID}/records": {
            "get": {
                "tags": ["datasets"],
                "summary": "Listar registros de una corrida",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "runID", "in": "path", "required": true},
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "not found"}}
            }
        },
        "/datasets/{runID}/export": {
            "get": {
                "tags": ["datasets"],
                "summary": "Exportar CSV",
                "produces": ["text/csv"],
                "parameters": [{"type": "string", "name": "runID", "in": "path", "required": true}],
                "responses": {"200": {"description": "CSV"}, "404": {"description": "not found"}}
            }
        },
        "/datasets/{runID}/upload": {
            "post": {
                "tags": ["datasets"],
                "summary": "Publicar CSV en S3",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "runID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "not found"}, "503": {"description": "upload sink not configured"}}
            }
        },
        "/metrics": {
            "get": {
                "tags": ["system"],
                "summary": "Métricas Prometheus",
                "produces": ["text/plain"],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "health.Record": {"type": "object"},
        "analysis.scoreResponse": {"type": "object"},
        "analysis.Result": {"type": "object"},
        "datasets.generateRequest": {
            "type": "object",
            "properties": {
                "records": {"type": "integer"},
                "supplement": {"type": "integer"},
                "seed": {"type": "integer"}
            }
        },
        "datasets.runResponse": {"type": "object"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "cat-health-synth API",
	Description:      "Generación de datasets sintéticos de salud felina y scoring por reglas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
