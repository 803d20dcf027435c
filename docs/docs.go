// Package docs holds the generated OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Peeka",
            "url": "https://github.com/P-E-E-K-A/peeka"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register",
                "description": "Create a new account and return a token pair",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "email": {"type": "string", "example": "me@example.com"},
                                "password": {"type": "string", "example": "secret123"},
                                "full_name": {"type": "string", "example": "Ada Lovelace"}
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {"description": "Account created"},
                    "400": {"description": "Invalid input"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Login",
                "description": "Login with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "email": {"type": "string", "example": "me@example.com"},
                                "password": {"type": "string", "example": "secret123"}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "Login successful"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh tokens",
                "responses": {
                    "200": {"description": "New token pair"},
                    "401": {"description": "Invalid refresh token"}
                }
            }
        },
        "/lists/{kind}": {
            "get": {
                "tags": ["Lists"],
                "summary": "Load a list",
                "description": "Load tasks, habits or schedules; cached items with degraded=true when the store is down",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "kind", "type": "string", "required": true, "enum": ["tasks", "habits", "schedules"]}
                ],
                "responses": {
                    "200": {"description": "List payload"},
                    "400": {"description": "Unknown list kind"}
                }
            },
            "post": {
                "tags": ["Lists"],
                "summary": "Add an item",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Item created"},
                    "400": {"description": "Empty text or unknown kind"}
                }
            }
        },
        "/lists/{kind}/{id}/toggle": {
            "post": {
                "tags": ["Lists"],
                "summary": "Toggle an item's completed flag",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Item toggled"},
                    "404": {"description": "Item not found"}
                }
            }
        },
        "/notes": {
            "get": {
                "tags": ["Notes"],
                "summary": "Load notes",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Notes payload"}}
            },
            "post": {
                "tags": ["Notes"],
                "summary": "Create a note",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Note created"}}
            }
        },
        "/widgets": {
            "get": {
                "tags": ["Widgets"],
                "summary": "List enabled widgets with their sandbox grants",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Enabled widgets"}}
            },
            "post": {
                "tags": ["Widgets"],
                "summary": "Import an external widget by URL",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Widget imported"},
                    "400": {"description": "Invalid or non-HTTPS URL"}
                }
            }
        },
        "/widgets/{id}": {
            "get": {
                "tags": ["Widgets"],
                "summary": "Get one widget by ID",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Widget with its sandbox grant"},
                    "404": {"description": "Widget not found"}
                }
            }
        },
        "/layouts": {
            "get": {
                "tags": ["Layouts"],
                "summary": "Load the dashboard layout",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Layouts per breakpoint"}}
            },
            "put": {
                "tags": ["Layouts"],
                "summary": "Save the dashboard layout",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Layout saved"},
                    "400": {"description": "Entries below minimum size"}
                }
            }
        },
        "/settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get appearance settings",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Settings payload"}}
            },
            "patch": {
                "tags": ["Settings"],
                "summary": "Patch appearance settings",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Updated settings"},
                    "400": {"description": "Invalid setting value"}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Aggregate first-paint payload",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "All lists, notes and widgets"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type \"Bearer\" followed by a space and JWT token."
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Peeka API",
	Description:      "Personal productivity dashboard backend",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
