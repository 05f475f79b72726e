// Package docs holds the OpenAPI document served by swaggerkit
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "tags": [
        {"name": "Analyze", "description": "Khmer canonicalization pipeline"},
        {"name": "Index", "description": "Documents stored by canonical term"},
        {"name": "Stats", "description": "Term event aggregates"},
        {"name": "Meta", "description": "Health, readiness and build info"}
    ],
    "paths": {
        "/analyze": {
            "post": {
                "tags": ["Analyze"],
                "summary": "Normalize, segment and reorder text into canonical terms",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/analyze.AnalyzeInput"}}}},
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/analyze.AnalyzeOutput"}}}}}
            }
        },
        "/analyze/normalize": {
            "post": {
                "tags": ["Analyze"],
                "summary": "Apply the normalization rules only",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/analyze.NormalizeInput"}}}},
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/analyze.NormalizeOutput"}}}}}
            }
        },
        "/analyze/segment": {
            "post": {
                "tags": ["Analyze"],
                "summary": "Split text into orthographic clusters",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/analyze.SegmentInput"}}}},
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/analyze.SegmentOutput"}}}}}
            }
        },
        "/analyze/reorder": {
            "post": {
                "tags": ["Analyze"],
                "summary": "Put each cluster into canonical order",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/analyze.ReorderInput"}}}},
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/analyze.ReorderOutput"}}}}}
            }
        },
        "/index/documents": {
            "post": {
                "tags": ["Index"],
                "summary": "Analyze and store a document",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/index.IndexInput"}}}},
                "responses": {
                    "201": {"description": "created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/index.IndexOutput"}}}},
                    "422": {"description": "no khmer terms", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/index/documents/{id}": {
            "get": {
                "tags": ["Index"],
                "summary": "Fetch a stored document with its postings",
                "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/index.Document"}}}},
                    "404": {"description": "not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            },
            "delete": {
                "tags": ["Index"],
                "summary": "Delete a document",
                "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
                "responses": {"204": {"description": "deleted"}}
            }
        },
        "/index/search": {
            "post": {
                "tags": ["Index"],
                "summary": "Search documents by canonical term",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/index.SearchInput"}}}},
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/index.SearchOutput"}}}}}
            }
        },
        "/stats/terms": {
            "get": {
                "tags": ["Stats"],
                "summary": "Most frequent canonical terms",
                "parameters": [{"name": "limit", "in": "query", "schema": {"type": "integer", "default": 20, "minimum": 1, "maximum": 500}}],
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/termstats.TopTerm"}}}}}}
            }
        },
        "/stats/variants": {
            "get": {
                "tags": ["Stats"],
                "summary": "Spellings folded into one canonical term",
                "parameters": [{"name": "term", "in": "query", "required": true, "schema": {"type": "string"}}],
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/termstats.VariantsOutput"}}}}}
            }
        },
        "/meta/health": {
            "get": {"tags": ["Meta"], "summary": "Liveness", "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/meta.HealthResponse"}}}}}}
        },
        "/meta/ready": {
            "get": {"tags": ["Meta"], "summary": "Readiness with backend checks", "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/meta.ReadyResponse"}}}}}}
        },
        "/meta/version": {
            "get": {"tags": ["Meta"], "summary": "Build and version info", "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/version.BuildInfo"}}}}}}
        },
        "/meta/service": {
            "get": {"tags": ["Meta"], "summary": "Service info, uptime and mounted modules", "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/meta.ServiceResponse"}}}}}}
        },
        "/meta/analyzer": {
            "get": {"tags": ["Meta"], "summary": "Analyzer version and default level", "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/meta.AnalyzerResponse"}}}}}}
        }
    },
    "components": {
        "schemas": {
            "analyze.NormalizeInput": {
                "type": "object",
                "required": ["text"],
                "properties": {
                    "text": {"type": "string", "example": "សើុ"},
                    "level": {"type": "integer", "enum": [0, 1, 2], "example": 1}
                }
            },
            "analyze.Edit": {
                "type": "object",
                "properties": {
                    "src": {"type": "integer"},
                    "dst": {"type": "integer"},
                    "consumed": {"type": "integer"},
                    "produced": {"type": "integer"},
                    "from": {"type": "string"},
                    "to": {"type": "string"}
                }
            },
            "analyze.NormalizeOutput": {
                "type": "object",
                "properties": {
                    "normalized": {"type": "string"},
                    "level": {"type": "string", "example": "standard"},
                    "edits": {"type": "array", "items": {"$ref": "#/components/schemas/analyze.Edit"}}
                }
            },
            "analyze.SegmentInput": {
                "type": "object",
                "required": ["text"],
                "properties": {"text": {"type": "string", "example": "ធ្វើការ"}}
            },
            "analyze.Token": {
                "type": "object",
                "properties": {
                    "text": {"type": "string"},
                    "start": {"type": "integer"},
                    "end": {"type": "integer"}
                }
            },
            "analyze.SegmentOutput": {
                "type": "object",
                "properties": {"tokens": {"type": "array", "items": {"$ref": "#/components/schemas/analyze.Token"}}}
            },
            "analyze.ReorderInput": {
                "type": "object",
                "required": ["tokens"],
                "properties": {"tokens": {"type": "array", "minItems": 1, "maxItems": 1024, "items": {"type": "string", "maxLength": 255}}}
            },
            "analyze.ReorderOutput": {
                "type": "object",
                "properties": {"canonical": {"type": "array", "items": {"type": "string"}}}
            },
            "analyze.AnalyzeInput": {
                "type": "object",
                "required": ["text"],
                "properties": {
                    "text": {"type": "string", "example": "ខ្ញុំ ចង់ធ្វើការ"},
                    "level": {"type": "integer", "enum": [0, 1, 2]}
                }
            },
            "analyze.Term": {
                "type": "object",
                "properties": {
                    "text": {"type": "string"},
                    "surface": {"type": "string"},
                    "position": {"type": "integer"},
                    "start": {"type": "integer"},
                    "end": {"type": "integer"},
                    "source_start": {"type": "integer"},
                    "source_end": {"type": "integer"}
                }
            },
            "analyze.AnalyzeOutput": {
                "type": "object",
                "properties": {
                    "normalized": {"type": "string"},
                    "level": {"type": "string"},
                    "terms": {"type": "array", "items": {"$ref": "#/components/schemas/analyze.Term"}}
                }
            },
            "index.IndexInput": {
                "type": "object",
                "required": ["text"],
                "properties": {
                    "title": {"type": "string", "maxLength": 500},
                    "text": {"type": "string", "example": "ស្រ្តី និង បុរស"}
                }
            },
            "index.IndexOutput": {
                "type": "object",
                "properties": {
                    "id": {"type": "string", "format": "uuid"},
                    "terms": {"type": "integer"},
                    "level": {"type": "string"},
                    "analyzer_version": {"type": "integer"}
                }
            },
            "index.Posting": {
                "type": "object",
                "properties": {
                    "term": {"type": "string"},
                    "surface": {"type": "string"},
                    "position": {"type": "integer"},
                    "source_start": {"type": "integer"},
                    "source_end": {"type": "integer"}
                }
            },
            "index.Document": {
                "type": "object",
                "properties": {
                    "id": {"type": "string", "format": "uuid"},
                    "title": {"type": "string"},
                    "text": {"type": "string"},
                    "normalized": {"type": "string"},
                    "level": {"type": "string"},
                    "analyzer_version": {"type": "integer"},
                    "term_count": {"type": "integer"},
                    "created_at": {"type": "string", "format": "date-time"},
                    "postings": {"type": "array", "items": {"$ref": "#/components/schemas/index.Posting"}}
                }
            },
            "index.SearchInput": {
                "type": "object",
                "required": ["query"],
                "properties": {
                    "query": {"type": "string"},
                    "mode": {"type": "string", "enum": ["all", "any"], "default": "all"},
                    "limit": {"type": "integer", "minimum": 1, "maximum": 100, "default": 10}
                }
            },
            "index.Hit": {
                "type": "object",
                "properties": {
                    "id": {"type": "string"},
                    "title": {"type": "string"},
                    "snippet": {"type": "string"},
                    "matched": {"type": "integer"},
                    "hits": {"type": "integer"}
                }
            },
            "index.SearchOutput": {
                "type": "object",
                "properties": {
                    "terms": {"type": "array", "items": {"type": "string"}},
                    "mode": {"type": "string"},
                    "hits": {"type": "array", "items": {"$ref": "#/components/schemas/index.Hit"}}
                }
            },
            "termstats.TopTerm": {
                "type": "object",
                "properties": {
                    "term": {"type": "string"},
                    "hits": {"type": "integer"},
                    "documents": {"type": "integer"}
                }
            },
            "termstats.Variant": {
                "type": "object",
                "properties": {
                    "surface": {"type": "string"},
                    "hits": {"type": "integer"}
                }
            },
            "termstats.VariantsOutput": {
                "type": "object",
                "properties": {
                    "term": {"type": "string"},
                    "variants": {"type": "array", "items": {"$ref": "#/components/schemas/termstats.Variant"}}
                }
            },
            "meta.HealthResponse": {
                "type": "object",
                "properties": {
                    "ok": {"type": "boolean"},
                    "service": {"type": "string"},
                    "started": {"type": "string"},
                    "now": {"type": "string"}
                }
            },
            "meta.ReadyCheck": {
                "type": "object",
                "properties": {
                    "name": {"type": "string"},
                    "status": {"type": "string", "enum": ["ok", "fail", "skipped"]},
                    "error": {"type": "string"}
                }
            },
            "meta.ReadyResponse": {
                "type": "object",
                "properties": {
                    "status": {"type": "string", "enum": ["ok", "degraded", "fail"]},
                    "checks": {"type": "array", "items": {"$ref": "#/components/schemas/meta.ReadyCheck"}},
                    "now": {"type": "string"}
                }
            },
            "meta.ServiceResponse": {
                "type": "object",
                "properties": {
                    "name": {"type": "string"},
                    "started": {"type": "string"},
                    "uptime": {"type": "integer"},
                    "modules": {"type": "array", "items": {"type": "string"}}
                }
            },
            "meta.AnalyzerResponse": {
                "type": "object",
                "properties": {
                    "analyzer_version": {"type": "integer"},
                    "level": {"type": "string"},
                    "max_level": {"type": "integer"},
                    "build": {"$ref": "#/components/schemas/version.BuildInfo"}
                }
            },
            "version.BuildInfo": {
                "type": "object",
                "properties": {
                    "service": {"type": "string"},
                    "version": {"type": "string"},
                    "commit": {"type": "string"},
                    "date": {"type": "string"},
                    "analyzer": {"type": "string"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "khmerfold API",
	Description:      "Khmer text canonicalization for search indexing.",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
