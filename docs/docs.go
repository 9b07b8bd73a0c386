// Package docs guarda el documento OpenAPI que se sirve en /swagger.
// Se mantiene a mano junto con las anotaciones @Router de los handlers.
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
        "/animals": {
            "get": {
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Listar animales",
                "parameters": [
                    {"type": "string", "description": "CSV de especies (cattle,goat,sheep)", "name": "species", "in": "query"},
                    {"type": "string", "description": "Texto en caravana/nombre", "name": "q", "in": "query"},
                    {"type": "integer", "description": "Máximo (1-500). Por defecto 100", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/animals.animalResponse"}}},
                    "400": {"description": "especie inválida", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Da de alta un animal. La fecha de nacimiento no puede ser futura. La raza debe estar en el catálogo de la especie (o \"other\").",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Registrar animal",
                "parameters": [
                    {"type": "string", "description": "Quién registra (para el historial)", "name": "X-Actor-ID", "in": "header"},
                    {"description": "Datos del animal; date_of_birth en formato YYYY-MM-DD", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/animals.createAnimalRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/animals.animalResponse"}},
                    "400": {"description": "invalid json / reglas de negocio", "schema": {"type": "string"}}
                }
            }
        },
        "/animals/{animalID}": {
            "get": {
                "description": "Devuelve la ficha con edad en meses y categoría calculadas con la fecha de hoy.",
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Perfil del animal",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/animals.animalResponse"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "description": "PATCH de la ficha. Especie y sexo no se editan.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Actualizar animal",
                "parameters": [
                    {"type": "string", "description": "Quién registra (para el historial)", "name": "X-Actor-ID", "in": "header"},
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"description": "Campos a modificar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/animals.updateAnimalRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/animals.animalResponse"}},
                    "400": {"description": "invalid json / reglas de negocio", "schema": {"type": "string"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}}
                }
            }
        },
        "/animals/{animalID}/activity": {
            "get": {
                "description": "Lista el historial (append-only) del animal, del más reciente al más antiguo. Permite filtrar por tipos, rango de fechas y texto.",
                "produces": ["application/json"],
                "tags": ["activity"],
                "summary": "Historial de un animal",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"type": "integer", "description": "Máximo de entradas (1-200). Por defecto 50", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Lista CSV de tipos (ej: TREATMENT_LOGGED,CHECKUP_RECORDED)", "name": "types", "in": "query"},
                    {"type": "string", "description": "occurred_at mínimo (RFC3339)", "name": "from", "in": "query"},
                    {"type": "string", "description": "occurred_at máximo (RFC3339)", "name": "to", "in": "query"},
                    {"type": "string", "description": "Texto libre en título/notas", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/activity.entryResponse"}}},
                    "400": {"description": "Parámetros de filtro inválidos", "schema": {"type": "string"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/animals/{animalID}/breeding": {
            "get": {
                "description": "Servicios donde el animal es madre o padre, con el estado del tacto calculado hoy.",
                "produces": ["application/json"],
                "tags": ["breeding"],
                "summary": "Servicios del animal",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/breeding.breedingResponse"}}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/animals/{animalID}/treatments": {
            "get": {
                "description": "Lista los tratamientos (más reciente primero) con estado de próxima dosis, retiro vigente y próximo chequeo calculados hoy.",
                "produces": ["application/json"],
                "tags": ["treatments"],
                "summary": "Tratamientos del animal",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/treatments.treatmentResponse"}}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Registra una administración. El fin de retiro se calcula según el tipo; si se envía withdrawal_end_date debe coincidir. Vacunas, vitaminas y desparasitarios proponen la próxima dosis.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["treatments"],
                "summary": "Registrar tratamiento",
                "parameters": [
                    {"type": "string", "description": "Quién registra (para el historial)", "name": "X-Actor-ID", "in": "header"},
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"description": "Tratamiento; fechas en formato YYYY-MM-DD", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/treatments.logTreatmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/treatments.treatmentResponse"}},
                    "400": {"description": "invalid json / reglas de negocio", "schema": {"type": "string"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}},
                    "409": {"description": "fecha anterior al nacimiento", "schema": {"type": "string"}}
                }
            }
        },
        "/animals/{animalID}/treatments/{treatmentID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["treatments"],
                "summary": "Detalle de tratamiento",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"type": "string", "description": "ID del tratamiento", "name": "treatmentID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/treatments.treatmentResponse"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            }
        },
        "/animals/{animalID}/treatments/{treatmentID}/checkups": {
            "post": {
                "description": "Solo antibióticos y antiinflamatorios. El próximo chequeo es el último + 3 días hasta que se registra la recuperación.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["treatments"],
                "summary": "Registrar chequeo",
                "parameters": [
                    {"type": "string", "description": "Quién registra (para el historial)", "name": "X-Actor-ID", "in": "header"},
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"type": "string", "description": "ID del tratamiento", "name": "treatmentID", "in": "path", "required": true},
                    {"description": "Chequeo; checked_at en formato YYYY-MM-DD", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/treatments.recordCheckupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/treatments.treatmentResponse"}},
                    "400": {"description": "invalid json / reglas de negocio", "schema": {"type": "string"}},
                    "404": {"description": "not found", "schema": {"type": "string"}},
                    "409": {"description": "chequeo fuera de orden", "schema": {"type": "string"}}
                }
            }
        },
        "/breeding": {
            "post": {
                "description": "Registra un servicio. La madre debe ser hembra; el padre (opcional) macho de la misma especie. Marca a la madre como servida y calcula la fecha de tacto (servicio + 3 meses).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["breeding"],
                "summary": "Registrar servicio",
                "parameters": [
                    {"type": "string", "description": "Quién registra (para el historial)", "name": "X-Actor-ID", "in": "header"},
                    {"description": "Servicio; breeding_date en formato YYYY-MM-DD", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/breeding.recordBreedingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/breeding.breedingResponse"}},
                    "400": {"description": "invalid json / reglas de negocio", "schema": {"type": "string"}},
                    "409": {"description": "servicio anterior al nacimiento", "schema": {"type": "string"}}
                }
            }
        },
        "/engine/classify": {
            "post": {
                "description": "Calcula la categoría para especie, sexo, edad (o fecha de nacimiento) e historial de servicio.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["engine"],
                "summary": "Clasificar",
                "parameters": [
                    {"description": "Datos a clasificar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/lifecycle.classifyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/lifecycle.classifyResponse"}},
                    "400": {"description": "invalid json / reglas de negocio", "schema": {"type": "string"}}
                }
            }
        },
        "/engine/pregnancy-check": {
            "post": {
                "description": "Fecha de tacto (servicio + 3 meses) y su estado hoy.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["engine"],
                "summary": "Ventana de tacto",
                "parameters": [
                    {"description": "Fecha de servicio", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/lifecycle.pregnancyCheckRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/lifecycle.pregnancyCheckResponse"}},
                    "400": {"description": "invalid json / reglas de negocio", "schema": {"type": "string"}}
                }
            }
        },
        "/engine/withdrawal": {
            "post": {
                "description": "Fin de retiro y próxima dosis propuesta para un tipo y fecha de administración.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["engine"],
                "summary": "Calcular retiro",
                "parameters": [
                    {"description": "Tipo y fecha de administración", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/lifecycle.withdrawalRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/lifecycle.withdrawalResponse"}},
                    "400": {"description": "invalid json / reglas de negocio", "schema": {"type": "string"}}
                }
            }
        },
        "/policy": {
            "get": {
                "description": "Cortes de edad, días de retiro, intervalos y catálogo de razas en uso.",
                "produces": ["application/json"],
                "tags": ["engine"],
                "summary": "Política vigente",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/lifecycle.Policy"}}
                }
            }
        },
        "/reminders": {
            "get": {
                "description": "Próximas dosis (banda de 30 días), chequeos abiertos y tactos (banda de 7 días) que están por vencer o vencidos.",
                "produces": ["application/json"],
                "tags": ["reminders"],
                "summary": "Pendientes del rodeo",
                "parameters": [
                    {"type": "string", "description": "Fecha de referencia YYYY-MM-DD (por defecto hoy)", "name": "date", "in": "query"},
                    {"type": "string", "description": "routine_treatment | checkup | pregnancy_check", "name": "kind", "in": "query"},
                    {"type": "string", "description": "due_soon | overdue", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/reminders.reminderResponse"}}},
                    "400": {"description": "parámetros inválidos", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "activity.entryResponse": {
            "type": "object",
            "properties": {
                "actor_id": {"type": "string"},
                "animal_id": {"type": "string"},
                "id": {"type": "string"},
                "notes": {"type": "string"},
                "occurred_at": {"type": "string"},
                "recorded_at": {"type": "string"},
                "ref_id": {"type": "string"},
                "title": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "animals.animalResponse": {
            "type": "object",
            "properties": {
                "age_months": {"type": "integer"},
                "breed": {"type": "string"},
                "castrated": {"type": "boolean"},
                "category": {"type": "string"},
                "created_at": {"type": "string"},
                "dam_id": {"type": "string"},
                "date_of_birth": {"type": "string"},
                "has_bred": {"type": "boolean"},
                "id": {"type": "string"},
                "is_newborn": {"type": "boolean"},
                "name": {"type": "string"},
                "notes": {"type": "string"},
                "sex": {"type": "string"},
                "sire_id": {"type": "string"},
                "species": {"type": "string"},
                "tag": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "animals.createAnimalRequest": {
            "type": "object",
            "properties": {
                "breed": {"type": "string"},
                "castrated": {"type": "boolean"},
                "dam_id": {"type": "string"},
                "date_of_birth": {"type": "string"},
                "has_bred": {"type": "boolean"},
                "is_newborn": {"type": "boolean"},
                "name": {"type": "string"},
                "notes": {"type": "string"},
                "sex": {"type": "string", "enum": ["male", "female"]},
                "sire_id": {"type": "string"},
                "species": {"type": "string", "enum": ["cattle", "goat", "sheep"]},
                "tag": {"type": "string"}
            }
        },
        "animals.updateAnimalRequest": {
            "type": "object",
            "properties": {
                "breed": {"type": "string"},
                "castrated": {"type": "boolean"},
                "date_of_birth": {"type": "string"},
                "has_bred": {"type": "boolean"},
                "is_newborn": {"type": "boolean"},
                "name": {"type": "string"},
                "notes": {"type": "string"},
                "tag": {"type": "string"}
            }
        },
        "breeding.breedingResponse": {
            "type": "object",
            "properties": {
                "breeding_date": {"type": "string"},
                "dam_id": {"type": "string"},
                "id": {"type": "string"},
                "method": {"type": "string"},
                "notes": {"type": "string"},
                "pregnancy_check_due": {"type": "string"},
                "pregnancy_check_due_soon_from": {"type": "string"},
                "pregnancy_check_status": {"type": "string"},
                "recorded_at": {"type": "string"},
                "recorded_by": {"type": "string"},
                "sire_id": {"type": "string"},
                "species": {"type": "string"}
            }
        },
        "breeding.recordBreedingRequest": {
            "type": "object",
            "properties": {
                "breeding_date": {"type": "string"},
                "dam_id": {"type": "string"},
                "method": {"type": "string", "enum": ["natural", "artificial"]},
                "notes": {"type": "string"},
                "sire_id": {"type": "string"}
            }
        },
        "lifecycle.Policy": {
            "type": "object",
            "properties": {
                "breeds": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
                "checkup_interval_days": {"type": "integer"},
                "juvenile_cutoff_months": {"type": "object", "additionalProperties": {"type": "integer"}},
                "pregnancy_check": {"type": "object", "properties": {"after_months": {"type": "integer"}, "due_soon_days": {"type": "integer"}}},
                "routine_due_soon_days": {"type": "integer"},
                "treatments": {"type": "object", "additionalProperties": {"type": "object"}},
                "version": {"type": "string"},
                "young_male_cutoff_months": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "lifecycle.classifyRequest": {
            "type": "object",
            "properties": {
                "age_months": {"type": "integer"},
                "castrated": {"type": "boolean"},
                "date_of_birth": {"type": "string"},
                "has_bred": {"type": "boolean"},
                "is_newborn": {"type": "boolean"},
                "sex": {"type": "string", "enum": ["male", "female"]},
                "species": {"type": "string", "enum": ["cattle", "goat", "sheep"]}
            }
        },
        "lifecycle.classifyResponse": {
            "type": "object",
            "properties": {
                "age_months": {"type": "integer"},
                "category": {"type": "string"},
                "juvenile": {"type": "boolean"},
                "sex": {"type": "string"},
                "species": {"type": "string"}
            }
        },
        "lifecycle.pregnancyCheckRequest": {
            "type": "object",
            "properties": {
                "breeding_date": {"type": "string"}
            }
        },
        "lifecycle.pregnancyCheckResponse": {
            "type": "object",
            "properties": {
                "breeding_date": {"type": "string"},
                "check_due_date": {"type": "string"},
                "due_soon_from": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "lifecycle.withdrawalRequest": {
            "type": "object",
            "properties": {
                "administered_at": {"type": "string"},
                "type": {"type": "string", "enum": ["VACCINE", "VITAMINS", "ANTIBIOTICS", "ANTI_INFLAMMATORY", "DEWORMER"]}
            }
        },
        "lifecycle.withdrawalResponse": {
            "type": "object",
            "properties": {
                "administered_on": {"type": "string"},
                "auto_next_due": {"type": "string"},
                "checkups": {"type": "boolean"},
                "in_withdrawal": {"type": "boolean"},
                "next_due_status": {"type": "string"},
                "type": {"type": "string"},
                "withdrawal_days": {"type": "integer"},
                "withdrawal_end_date": {"type": "string"}
            }
        },
        "reminders.reminderResponse": {
            "type": "object",
            "properties": {
                "animal_id": {"type": "string"},
                "animal_tag": {"type": "string"},
                "due_date": {"type": "string"},
                "kind": {"type": "string"},
                "ref_id": {"type": "string"},
                "species": {"type": "string"},
                "status": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "treatments.checkupResponse": {
            "type": "object",
            "properties": {
                "checked_at": {"type": "string"},
                "id": {"type": "string"},
                "notes": {"type": "string"},
                "recorded_at": {"type": "string"},
                "recorded_by": {"type": "string"},
                "recovered": {"type": "boolean"}
            }
        },
        "treatments.logTreatmentRequest": {
            "type": "object",
            "properties": {
                "administered_at": {"type": "string"},
                "dose": {"type": "string"},
                "next_due_date": {"type": "string"},
                "notes": {"type": "string"},
                "product": {"type": "string"},
                "type": {"type": "string", "enum": ["VACCINE", "VITAMINS", "ANTIBIOTICS", "ANTI_INFLAMMATORY", "DEWORMER"]},
                "withdrawal_end_date": {"type": "string"}
            }
        },
        "treatments.recordCheckupRequest": {
            "type": "object",
            "properties": {
                "checked_at": {"type": "string"},
                "notes": {"type": "string"},
                "recovered": {"type": "boolean"}
            }
        },
        "treatments.treatmentResponse": {
            "type": "object",
            "properties": {
                "administered_at": {"type": "string"},
                "animal_id": {"type": "string"},
                "checkups": {"type": "array", "items": {"$ref": "#/definitions/treatments.checkupResponse"}},
                "dose": {"type": "string"},
                "id": {"type": "string"},
                "in_withdrawal": {"type": "boolean"},
                "next_checkup": {"type": "string"},
                "next_due_date": {"type": "string"},
                "next_due_manual": {"type": "boolean"},
                "notes": {"type": "string"},
                "product": {"type": "string"},
                "recorded_at": {"type": "string"},
                "recorded_by": {"type": "string"},
                "recovered": {"type": "boolean"},
                "status": {"type": "string"},
                "type": {"type": "string"},
                "type_label": {"type": "string"},
                "withdrawal_end_date": {"type": "string"}
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
	Title:            "Farm Livestock Records API",
	Description:      "Registro de animales, tratamientos y servicios con clasificación por etapa de vida y calendario de retiros, dosis y tactos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
