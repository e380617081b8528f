// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g src/main.go -o docs
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/api/events": {"get": {"tags": ["events"], "summary": "List events", "responses": {"200": {"description": "OK"}}}},
        "/api/events/{id}": {
            "get": {"tags": ["events"], "summary": "Get an event", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["events"], "summary": "Join an event", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Already registered"}, "404": {"description": "Not Found"}}}
        },
        "/api/admin/events": {
            "get": {"tags": ["admin-events"], "summary": "List events", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "tags": ["admin-events"], "summary": "Create an event", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}},
            "put": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "tags": ["admin-events"], "summary": "Update an event", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["admin-events"], "summary": "Delete an event", "parameters": [{"type": "string", "name": "id", "in": "query", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/news": {"get": {"tags": ["news"], "summary": "List news", "responses": {"200": {"description": "OK"}}}},
        "/api/news/{id}": {"get": {"tags": ["news"], "summary": "Get a news post", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/admin/news": {
            "post": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "tags": ["admin-news"], "summary": "Create a news post", "responses": {"201": {"description": "Created"}}},
            "put": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "tags": ["admin-news"], "summary": "Update a news post", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["admin-news"], "summary": "Delete a news post", "responses": {"200": {"description": "OK"}}}
        },
        "/api/opportunities": {"get": {"tags": ["opportunities"], "summary": "List opportunities", "responses": {"200": {"description": "OK"}}}},
        "/api/opportunities/{id}": {"get": {"tags": ["opportunities"], "summary": "Get an opportunity", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/admin/opportunities": {
            "post": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "tags": ["admin-opportunities"], "summary": "Create an opportunity", "responses": {"201": {"description": "Created"}}},
            "put": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "tags": ["admin-opportunities"], "summary": "Update an opportunity", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["admin-opportunities"], "summary": "Delete an opportunity", "responses": {"200": {"description": "OK"}}}
        },
        "/api/admin/clubs": {
            "get": {"tags": ["clubs"], "summary": "List clubs", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "tags": ["admin-clubs"], "summary": "Create a club", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}},
            "put": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "tags": ["admin-clubs"], "summary": "Update a club", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["admin-clubs"], "summary": "Delete a club", "responses": {"200": {"description": "OK"}}}
        },
        "/api/clubs/stats": {"get": {"tags": ["clubs"], "summary": "Activity summary of every club", "responses": {"200": {"description": "OK"}}}},
        "/api/clubs/{id}": {"get": {"tags": ["clubs"], "summary": "Activity summary of one club", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/user/dashboard": {"get": {"security": [{"BearerAuth": []}], "tags": ["user"], "summary": "Member dashboard", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/user/sync": {"post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "tags": ["user"], "summary": "Save the member profile", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/admin/overview": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Admin console overview", "responses": {"200": {"description": "OK"}}}},
        "/api/admin/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List members", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Delete a member", "responses": {"200": {"description": "OK"}}}
        },
        "/api/admin/users/role": {"put": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Change a member's role", "responses": {"200": {"description": "OK"}}}},
        "/api/admin/users/badges": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Grant a badge", "responses": {"200": {"description": "OK"}}}},
        "/health": {"get": {"tags": ["health"], "summary": "Liveness and dependency check", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "UniClub API",
	Description:      "Bilingual university club backend: events, news, opportunities, clubs and member dashboards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
