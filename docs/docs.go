// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/main.go
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Username already exists", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "401": {"description": "Invalid username or password", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/change-password": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Change password",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.ChangePasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List users",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UserPageResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Create a user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.UserResponse"}}}
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get a user",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UserResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update a user",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UserResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Delete a user",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/cards": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["cards"],
                "summary": "List cards",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CardPageResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["cards"],
                "summary": "Issue a card",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateCardRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.CardResponse"}}}
            }
        },
        "/cards/user": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["cards"],
                "summary": "List the cards of a user",
                "parameters": [{"in": "query", "name": "ownerId", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CardPageResponse"}}}
            }
        },
        "/cards/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["cards"],
                "summary": "Get a card",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CardResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["cards"],
                "summary": "Delete a card",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/cards/block/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["cards"],
                "summary": "Block a card",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CardResponse"}}}
            }
        },
        "/cards/{id}/top-up": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["cards"],
                "summary": "Top up a card",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.TopUpRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CardResponse"}}}
            }
        },
        "/transactions/transfer": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Transfer between own cards",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.TransferRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.TransactionResponse"}},
                    "400": {"description": "Transfer rejected", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "Not the card owner", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Card not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions/my": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "List my transactions",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.TransactionPageResponse"}}}
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "List transactions",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.TransactionPageResponse"}}}
            }
        },
        "/transactions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Get a transaction",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.TransactionResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Delete a transaction",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/transactions/user": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "List the transactions of a user",
                "parameters": [{"in": "query", "name": "ownerId", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.TransactionPageResponse"}}}
            }
        },
        "/transactions/card": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "List the transactions of a card",
                "parameters": [{"in": "query", "name": "cardId", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.TransactionPageResponse"}}}
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string", "example": "card not found"}}},
        "handlers.MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "handlers.RegisterRequest": {
            "type": "object",
            "required": ["surname", "name", "birthYear", "username", "password"],
            "properties": {
                "surname": {"type": "string", "example": "Ivanov"},
                "name": {"type": "string", "example": "Ivan"},
                "patronymic": {"type": "string", "example": "Ivanovich"},
                "birthYear": {"type": "integer", "example": 1990},
                "username": {"type": "string", "example": "john_doe"},
                "password": {"type": "string", "example": "secret123"}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.ChangePasswordRequest": {
            "type": "object",
            "required": ["newPassword"],
            "properties": {"newPassword": {"type": "string"}}
        },
        "handlers.AuthResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "username": {"type": "string"},
                "roles": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handlers.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "surname": {"type": "string"},
                "name": {"type": "string"},
                "patronymic": {"type": "string"},
                "birthYear": {"type": "integer"},
                "username": {"type": "string"},
                "roles": {"type": "array", "items": {"type": "string"}},
                "createdAt": {"type": "string"}
            }
        },
        "handlers.UserPageResponse": {
            "type": "object",
            "properties": {
                "content": {"type": "array", "items": {"$ref": "#/definitions/handlers.UserResponse"}},
                "page": {"type": "integer"},
                "size": {"type": "integer"},
                "totalElements": {"type": "integer"}
            }
        },
        "handlers.CardResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "number": {"type": "string", "example": "**** **** **** 3456"},
                "ownerId": {"type": "string"},
                "owner": {"type": "string"},
                "expiryDate": {"type": "string", "example": "2030-12-31"},
                "status": {"type": "string", "example": "ACTIVE"},
                "balance": {"type": "string", "example": "100.00"}
            }
        },
        "handlers.CardPageResponse": {
            "type": "object",
            "properties": {
                "content": {"type": "array", "items": {"$ref": "#/definitions/handlers.CardResponse"}},
                "page": {"type": "integer"},
                "size": {"type": "integer"},
                "totalElements": {"type": "integer"}
            }
        },
        "handlers.CreateCardRequest": {
            "type": "object",
            "required": ["ownerId", "expiryDate"],
            "properties": {"ownerId": {"type": "string"}, "expiryDate": {"type": "string", "example": "2030-12-31"}}
        },
        "handlers.TopUpRequest": {
            "type": "object",
            "required": ["amount", "phoneNumber"],
            "properties": {"amount": {"type": "number", "example": 100}, "phoneNumber": {"type": "string", "example": "8-912-345-67-89"}}
        },
        "handlers.TransferRequest": {
            "type": "object",
            "required": ["fromCardId", "toCardId", "amount"],
            "properties": {"fromCardId": {"type": "string"}, "toCardId": {"type": "string"}, "amount": {"type": "number", "example": 30}}
        },
        "handlers.TransactionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "fromCardId": {"type": "string"},
                "toCardId": {"type": "string"},
                "amount": {"type": "string", "example": "30.00"},
                "status": {"type": "string", "example": "COMPLETED"},
                "createdAt": {"type": "string"}
            }
        },
        "handlers.TransactionPageResponse": {
            "type": "object",
            "properties": {
                "content": {"type": "array", "items": {"$ref": "#/definitions/handlers.TransactionResponse"}},
                "page": {"type": "integer"},
                "size": {"type": "integer"},
                "totalElements": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "gw-bank-cards API",
	Description:      "Bank card management: users, cards and transfers between own cards",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
