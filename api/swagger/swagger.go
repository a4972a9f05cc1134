package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Marrel SRL Back-Office API",
        "description": "Construction back-office: workers, work sites, Unilav history, attendance, pay ledger, document bundles, certifications and the expiry dashboard",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Workers", "description": "Worker registry management"},
        {"name": "Unilav", "description": "Employment event history and assignment resolution"},
        {"name": "Certifications", "description": "Safety certifications and renewal ledger"},
        {"name": "Dashboard", "description": "Expiry overview"},
        {"name": "Exports", "description": "Attendance sheet and pay ledger downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/workers": {
            "get": {
                "tags": ["Workers"],
                "summary": "List workers",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "role", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Workers"],
                "summary": "Create worker",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateWorkerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workers/{id}": {
            "get": {
                "tags": ["Workers"],
                "summary": "Get worker",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Workers"],
                "summary": "Update worker",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateWorkerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Workers"],
                "summary": "Delete worker",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/workers/{id}/unilav": {
            "get": {
                "tags": ["Unilav"],
                "summary": "List employment events",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Unilav"],
                "summary": "Record employment event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUnilavEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workers/{id}/status": {
            "get": {
                "tags": ["Unilav"],
                "summary": "Employment status on a reference date",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workers/{id}/unilav/active": {
            "get": {
                "tags": ["Unilav"],
                "summary": "Active assignment on a reference date",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workers/{id}/certifications": {
            "get": {
                "tags": ["Certifications"],
                "summary": "List certifications classified by expiry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Certifications"],
                "summary": "Register certification",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCertificationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workers/{id}/certifications/{certId}/renewals": {
            "post": {
                "tags": ["Certifications"],
                "summary": "Append renewal to the ledger",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "certId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddRenewalRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/certifications/expiring": {
            "get": {
                "tags": ["Certifications"],
                "summary": "Expired and upcoming certifications across workers",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/expiry": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Expiry dashboard for a reference date",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/attendance": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download monthly attendance sheet",
                "parameters": [
                    {"name": "year", "in": "query", "required": true, "type": "integer"},
                    {"name": "month", "in": "query", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/exports/pay-ledger": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download yearly pay ledger",
                "parameters": [
                    {"name": "year", "in": "query", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        }
    },
    "definitions": {
        "Worker": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "fiscal_code": {"type": "string"},
                "role": {"type": "string"},
                "phone": {"type": "string"},
                "birth_date": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "UnilavEvent": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "worker_id": {"type": "string"},
                "kind": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "site_id": {"type": "string"},
                "contract_type": {"type": "string"},
                "level": {"type": "string"},
                "schedule": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "CreateWorkerRequest": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "fiscal_code": {"type": "string"},
                "role": {"type": "string"},
                "phone": {"type": "string"},
                "birth_date": {"type": "string"}
            },
            "required": ["first_name", "last_name", "role"]
        },
        "UpdateWorkerRequest": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "fiscal_code": {"type": "string"},
                "role": {"type": "string"},
                "phone": {"type": "string"},
                "birth_date": {"type": "string"}
            },
            "required": ["first_name", "last_name", "role"]
        },
        "CreateUnilavEventRequest": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "site_id": {"type": "string"},
                "contract_type": {"type": "string"},
                "level": {"type": "string"},
                "schedule": {"type": "string"}
            },
            "required": ["kind", "start_date", "contract_type"]
        },
        "CreateCertificationRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "name": {"type": "string"},
                "expiry_date": {"type": "string"}
            },
            "required": ["category", "name"]
        },
        "AddRenewalRequest": {
            "type": "object",
            "properties": {
                "new_expiry": {"type": "string"}
            },
            "required": ["new_expiry"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
