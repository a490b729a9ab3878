// Package docs holds the OpenAPI document for the API, kept in the swag layout
// so swaggerkit can read it through SwaggerInfo
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "servers": [{"url": "/api/v1"}],
    "tags": [
        {"name": "Curation", "description": "Plan reels from labelled scenes"},
        {"name": "Meta", "description": "Health, readiness and build info"}
    ],
    "paths": {
        "/curation/plans": {
            "post": {
                "tags": ["Curation"],
                "summary": "Curate a plan from one or more sources",
                "requestBody": {
                    "required": true,
                    "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CurateInput"}}}
                },
                "responses": {
                    "200": {"description": "plan", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CurateOutput"}}}},
                    "422": {"description": "invalid params", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
                    "503": {"description": "persist requested without a run store", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            },
            "get": {
                "tags": ["Curation"],
                "summary": "List stored runs, newest first",
                "parameters": [{"name": "limit", "in": "query", "schema": {"type": "integer", "default": 20, "maximum": 500}}],
                "responses": {
                    "200": {"description": "runs", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/RunSummary"}}}}}
                }
            }
        },
        "/curation/plans/{id}": {
            "get": {
                "tags": ["Curation"],
                "summary": "Fetch a stored run",
                "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
                "responses": {
                    "200": {"description": "run", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Run"}}}},
                    "404": {"description": "unknown run", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/curation/plans/{id}/edl": {
            "get": {
                "tags": ["Curation"],
                "summary": "Render a stored run as a CMX3600 EDL",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}},
                    {"name": "fps", "in": "query", "schema": {"type": "number", "default": 30}}
                ],
                "responses": {
                    "200": {"description": "edl text", "content": {"text/plain": {"schema": {"type": "string"}}}},
                    "404": {"description": "unknown run", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/curation/windows": {
            "post": {
                "tags": ["Curation"],
                "summary": "Split long scenes into sampling windows",
                "requestBody": {
                    "required": true,
                    "content": {"application/json": {"schema": {"$ref": "#/components/schemas/WindowsInput"}}}
                },
                "responses": {
                    "200": {"description": "windows", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/WindowsOutput"}}}}
                }
            }
        },
        "/curation/defaults": {
            "get": {
                "tags": ["Curation"],
                "summary": "Effective default params",
                "responses": {
                    "200": {"description": "params", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Params"}}}}
                }
            }
        },
        "/curation/stats/labels": {
            "get": {
                "tags": ["Curation"],
                "summary": "Per label selection stats across runs",
                "parameters": [{"name": "limit", "in": "query", "schema": {"type": "integer", "default": 20, "maximum": 500}}],
                "responses": {
                    "200": {"description": "stats", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/LabelStat"}}}}},
                    "503": {"description": "stats store not configured", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/meta/health": {
            "get": {"tags": ["Meta"], "summary": "Health check", "responses": {"200": {"description": "ok"}}}
        },
        "/meta/ready": {
            "get": {
                "tags": ["Meta"],
                "summary": "Readiness probe with store checks",
                "responses": {"200": {"description": "ok"}, "503": {"description": "a store is down"}}
            }
        },
        "/meta/version": {
            "get": {"tags": ["Meta"], "summary": "Build and version info", "responses": {"200": {"description": "ok"}}}
        },
        "/meta/engine": {
            "get": {"tags": ["Meta"], "summary": "Curation stage order and effective defaults", "responses": {"200": {"description": "ok"}}}
        }
    },
    "components": {
        "schemas": {
            "Scene": {
                "type": "object",
                "required": ["id", "start", "end"],
                "properties": {
                    "id": {"type": "string", "example": "s1"},
                    "start": {"type": "number", "example": 12.5},
                    "end": {"type": "number", "example": 18},
                    "label": {"type": "string", "example": "chase"},
                    "confidence": {"type": "number", "example": 0.82},
                    "is_action": {"type": "boolean"},
                    "source_ref": {"type": "string"},
                    "sub_segments": {"type": "array", "items": {"type": "object", "properties": {
                        "start": {"type": "number"}, "end": {"type": "number"}, "label": {"type": "string"},
                        "confidence": {"type": "number"}, "is_action": {"type": "boolean"}}}}
                }
            },
            "Source": {
                "type": "object",
                "required": ["source_ref"],
                "properties": {
                    "source_ref": {"type": "string", "example": "clips/trip.mp4"},
                    "scenes": {"type": "array", "items": {"$ref": "#/components/schemas/Scene"}}
                }
            },
            "Params": {
                "type": "object",
                "properties": {
                    "min_confidence": {"type": "number", "example": 0.3},
                    "min_duration": {"type": "number", "example": 3},
                    "max_duration": {"type": "number", "example": 60},
                    "target_duration": {"type": "number", "example": 300},
                    "overflow_factor": {"type": "number", "example": 1.2},
                    "ensure_diversity": {"type": "boolean", "example": true},
                    "max_per_category": {"type": "integer", "example": 0},
                    "min_per_category": {"type": "integer", "example": 1},
                    "split_threshold": {"type": "number", "example": 10},
                    "window_length": {"type": "number", "example": 5},
                    "min_window": {"type": "number", "exclusiveMinimum": 0, "example": 1},
                    "trim_to_window": {"type": "boolean"}
                }
            },
            "CurateInput": {
                "type": "object",
                "required": ["sources"],
                "properties": {
                    "title": {"type": "string", "example": "road trip"},
                    "sources": {"type": "array", "items": {"$ref": "#/components/schemas/Source"}},
                    "params": {"$ref": "#/components/schemas/Params"},
                    "persist": {"type": "boolean"}
                }
            },
            "Segment": {
                "type": "object",
                "properties": {
                    "scene_id": {"type": "string"},
                    "source_ref": {"type": "string"},
                    "start": {"type": "number"},
                    "end": {"type": "number"},
                    "label": {"type": "string"},
                    "confidence": {"type": "number"}
                }
            },
            "CurateOutput": {
                "type": "object",
                "properties": {
                    "run_id": {"type": "string", "format": "uuid"},
                    "title": {"type": "string"},
                    "segments": {"type": "array", "items": {"$ref": "#/components/schemas/Segment"}},
                    "total": {"type": "number"},
                    "target": {"type": "number"},
                    "underfilled": {"type": "boolean"},
                    "params": {"$ref": "#/components/schemas/Params"},
                    "report": {"type": "object"}
                }
            },
            "RunSummary": {
                "type": "object",
                "properties": {
                    "id": {"type": "string", "format": "uuid"},
                    "created_at_unix_ms": {"type": "integer"},
                    "title": {"type": "string"},
                    "target": {"type": "number"},
                    "total": {"type": "number"},
                    "underfilled": {"type": "boolean"},
                    "segment_count": {"type": "integer"}
                }
            },
            "Run": {
                "type": "object",
                "properties": {
                    "id": {"type": "string", "format": "uuid"},
                    "created_at_unix_ms": {"type": "integer"},
                    "title": {"type": "string"},
                    "params": {"$ref": "#/components/schemas/Params"},
                    "target": {"type": "number"},
                    "total": {"type": "number"},
                    "underfilled": {"type": "boolean"},
                    "segments": {"type": "array", "items": {"$ref": "#/components/schemas/Segment"}}
                }
            },
            "WindowsInput": {
                "type": "object",
                "required": ["scenes"],
                "properties": {
                    "scenes": {"type": "array", "items": {"type": "object", "properties": {"id": {"type": "string"}, "start": {"type": "number"}, "end": {"type": "number"}}}},
                    "split_threshold": {"type": "number"},
                    "window_length": {"type": "number"},
                    "min_window": {"type": "number"}
                }
            },
            "WindowsOutput": {
                "type": "object",
                "properties": {
                    "scenes": {"type": "array", "items": {"type": "object"}},
                    "drops": {"type": "array", "items": {"type": "object"}}
                }
            },
            "LabelStat": {
                "type": "object",
                "properties": {
                    "label": {"type": "string"},
                    "runs": {"type": "integer"},
                    "candidates": {"type": "integer"},
                    "selected": {"type": "integer"},
                    "selected_seconds": {"type": "number"},
                    "selection_rate": {"type": "number"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Title:            "supercut API",
	Description:      "Scene curation: plan reels from labelled scenes, store runs, export EDLs",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
