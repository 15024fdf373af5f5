// Package docs registra la documentación OpenAPI servida en /swagger/*.
// Mantener sincronizado con las anotaciones @Router de los handlers (swag init -g cmd/api/main.go).
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
                "tags": [
                    "health"
                ],
                "summary": "Liveness",
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/medications": {
            "post": {
                "tags": [
                    "medications"
                ],
                "summary": "Registrar medicamento",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "get": {
                "tags": [
                    "medications"
                ],
                "summary": "Listar medicamentos",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/medications/{medicationID}": {
            "get": {
                "tags": [
                    "medications"
                ],
                "summary": "Obtener medicamento",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    },
                    {
                        "name": "medicationID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "patch": {
                "tags": [
                    "medications"
                ],
                "summary": "Actualizar medicamento",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    },
                    {
                        "name": "medicationID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "delete": {
                "tags": [
                    "medications"
                ],
                "summary": "Eliminar medicamento y sus dosis",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    },
                    {
                        "name": "medicationID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/medications/{medicationID}/status": {
            "get": {
                "tags": [
                    "medications"
                ],
                "summary": "Estado de stock y validez",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    },
                    {
                        "name": "medicationID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/alerts": {
            "get": {
                "tags": [
                    "dashboard"
                ],
                "summary": "Alertas de hoy",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/doses": {
            "get": {
                "tags": [
                    "doses"
                ],
                "summary": "Listar registros de dosis",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    },
                    {
                        "name": "medication_id",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "id del medicamento"
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/doses/toggle": {
            "post": {
                "tags": [
                    "doses"
                ],
                "summary": "Alternar dosis (tomada / pendiente)",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "409": {
                        "description": "Conflict"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/schedule": {
            "get": {
                "tags": [
                    "schedule"
                ],
                "summary": "Agenda del día",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/schedule/range": {
            "get": {
                "tags": [
                    "schedule"
                ],
                "summary": "Agenda por rango",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    },
                    {
                        "name": "from",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    },
                    {
                        "name": "to",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/calendar": {
            "get": {
                "tags": [
                    "schedule"
                ],
                "summary": "Calendario",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    },
                    {
                        "name": "from",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    },
                    {
                        "name": "to",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/appointments": {
            "post": {
                "tags": [
                    "appointments"
                ],
                "summary": "Agendar cita",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "get": {
                "tags": [
                    "appointments"
                ],
                "summary": "Listar citas",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/appointments/upcoming": {
            "get": {
                "tags": [
                    "appointments"
                ],
                "summary": "Próximas citas",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "1..50"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/appointments/{appointmentID}": {
            "get": {
                "tags": [
                    "appointments"
                ],
                "summary": "Obtener cita",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    },
                    {
                        "name": "appointmentID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "patch": {
                "tags": [
                    "appointments"
                ],
                "summary": "Actualizar cita",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    },
                    {
                        "name": "appointmentID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "delete": {
                "tags": [
                    "appointments"
                ],
                "summary": "Eliminar cita",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    },
                    {
                        "name": "appointmentID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/settings": {
            "get": {
                "tags": [
                    "settings"
                ],
                "summary": "Obtener configuración",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "patch": {
                "tags": [
                    "settings"
                ],
                "summary": "Actualizar configuración",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/settings/disclaimer/dismiss": {
            "post": {
                "tags": [
                    "settings"
                ],
                "summary": "Ocultar aviso de atraso",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": [
                    "dashboard"
                ],
                "summary": "Panel del día",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/me/data": {
            "delete": {
                "tags": [
                    "dashboard"
                ],
                "summary": "Borrar todos mis datos",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Solo en modo dev"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "type": "string",
                        "required": false,
                        "description": "Bearer token"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
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
	Title:            "Medication Tracker API",
	Description:      "Agenda de dosis, stock y vencimiento de medicamentos, citas médicas y configuración de alertas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
