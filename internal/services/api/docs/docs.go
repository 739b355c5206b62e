// Package docs holds the OpenAPI document for the vesselq API
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
  "openapi": "3.0.3",
  "info": {
    "title": "{{.Title}}",
    "description": "{{.Description}}",
    "version": "{{.Version}}"
  },
  "paths": {
    "/meta/health": {
      "get": {
        "tags": ["Meta"],
        "summary": "Liveness",
        "responses": {"200": {"description": "ok"}}
      }
    },
    "/meta/ready": {
      "get": {
        "tags": ["Meta"],
        "summary": "Readiness, pings the positional store",
        "responses": {
          "200": {"description": "ready"},
          "503": {"description": "store unavailable", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
        }
      }
    },
    "/meta/version": {
      "get": {
        "tags": ["Meta"],
        "summary": "Build information",
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/VersionEnvelope"}}}}}
      }
    },
    "/vessels": {
      "get": {
        "tags": ["Vessels"],
        "summary": "Known vessel names, optionally by prefix",
        "parameters": [
          {"name": "prefix", "in": "query", "schema": {"type": "string"}},
          {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 50}}
        ],
        "responses": {"200": {"description": "names"}}
      }
    },
    "/vessels/summary": {
      "get": {
        "tags": ["Vessels"],
        "summary": "Per vessel record counts and time span",
        "responses": {"200": {"description": "summaries"}}
      }
    },
    "/vessels/resolve": {
      "post": {
        "tags": ["Vessels"],
        "summary": "Resolve a vessel and the record closest to a time",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/VesselRef"}}}},
        "responses": {
          "200": {"description": "resolution", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ResolutionEnvelope"}}}},
          "422": {"description": "invalid argument", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
        }
      }
    },
    "/vessels/track": {
      "post": {
        "tags": ["Vessels"],
        "summary": "Positions for a vessel in a time range",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/TrackRequest"}}}},
        "responses": {
          "200": {"description": "track", "content": {"application/json": {"schema": {"type": "object"}}}},
          "404": {"description": "unknown vessel", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
        }
      }
    },
    "/trajectory/predict": {
      "post": {
        "tags": ["Trajectory"],
        "summary": "Predict a vessel position minutes ahead",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/PredictRequest"}}}},
        "responses": {
          "200": {"description": "prediction", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/PredictionEnvelope"}}}},
          "404": {"description": "unknown vessel", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
        }
      }
    },
    "/trajectory/verify": {
      "post": {
        "tags": ["Trajectory"],
        "summary": "Check that recent movement is physically plausible",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/VesselRef"}}}},
        "responses": {"200": {"description": "verdict", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/VerdictEnvelope"}}}}}
      }
    },
    "/query": {
      "post": {
        "tags": ["Query"],
        "summary": "Answer a free text question about a vessel",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/QueryRequest"}}}},
        "responses": {"200": {"description": "answer", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AnswerEnvelope"}}}}}
      }
    }
  },
  "components": {
    "schemas": {
      "VesselRef": {
        "type": "object",
        "properties": {
          "name": {"type": "string", "example": "Brava"},
          "mmsi": {"type": "integer", "example": 367000001},
          "at": {"type": "string", "example": "2024-01-01 10:00:00"}
        }
      },
      "TrackRequest": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "mmsi": {"type": "integer"},
          "from": {"type": "string"},
          "to": {"type": "string"},
          "limit": {"type": "integer", "maximum": 1000}
        }
      },
      "PredictRequest": {
        "allOf": [
          {"$ref": "#/components/schemas/VesselRef"},
          {"type": "object", "properties": {"minutes": {"type": "integer", "minimum": 1, "maximum": 1440}}}
        ]
      },
      "QueryRequest": {
        "type": "object",
        "required": ["text"],
        "properties": {"text": {"type": "string", "example": "where will LAVACA be in 30 minutes"}}
      },
      "Position": {
        "type": "object",
        "properties": {
          "mmsi": {"type": "integer"},
          "name": {"type": "string"},
          "timestamp": {"type": "string"},
          "lat": {"type": "number"},
          "lon": {"type": "number"},
          "sog": {"type": "number"},
          "cog": {"type": "number"},
          "heading": {"type": "number"},
          "vessel_type": {"type": "integer"}
        }
      },
      "Prediction": {
        "type": "object",
        "properties": {
          "latitude": {"type": "number"},
          "longitude": {"type": "number"},
          "speed": {"type": "number"},
          "course": {"type": "number"},
          "minutes_ahead": {"type": "integer"},
          "mode": {"type": "string", "enum": ["DEAD_RECKONING", "LEARNED", "LEARNED_FALLBACK"]},
          "distance_nm": {"type": "number"}
        }
      },
      "Verdict": {
        "type": "object",
        "properties": {
          "verdict": {"type": "string", "enum": ["consistent", "suspicious", "insufficient"]},
          "reasons": {"type": "array", "items": {"type": "string"}}
        }
      },
      "ResolutionEnvelope": {"type": "object", "properties": {"data": {"type": "object"}}},
      "PredictionEnvelope": {"type": "object", "properties": {"data": {"$ref": "#/components/schemas/Prediction"}}},
      "VerdictEnvelope": {"type": "object", "properties": {"data": {"$ref": "#/components/schemas/Verdict"}}},
      "AnswerEnvelope": {
        "type": "object",
        "properties": {
          "data": {
            "type": "object",
            "properties": {
              "parsed": {"type": "object"},
              "answer": {"type": "object"},
              "text": {"type": "string"}
            }
          }
        }
      },
      "VersionEnvelope": {"type": "object", "properties": {"data": {"type": "object"}}}
    }
  }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "vesselq API",
	Description:      "Free text questions about tracked vessels",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
