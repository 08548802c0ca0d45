package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "University Timetable API",
        "description": "Master schedule management with conflict detection, schedule metrics and club room booking.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "name": "Events",
            "description": "Master schedule events and their lifecycle"
        },
        {
            "name": "Schedule",
            "description": "Conflicts, metrics and reference data"
        },
        {
            "name": "Club bookings",
            "description": "Room booking for club coordinators"
        },
        {
            "name": "Timetables",
            "description": "Candidate ranking and publishing"
        },
        {
            "name": "Exports",
            "description": "Schedule downloads"
        },
        {
            "name": "System",
            "description": "Probes and metrics"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Readiness probe checking the database and cache",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "A dependency is unavailable"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {
                        "description": "Prometheus text format"
                    }
                },
                "produces": [
                    "text/plain"
                ]
            }
        },
        "/api/v1/reference": {
            "get": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Reference tables",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/events": {
            "get": {
                "tags": [
                    "Events"
                ],
                "summary": "List scheduled events",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "day",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Day of week"
                    },
                    {
                        "name": "facultyId",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Faculty"
                    },
                    {
                        "name": "batchId",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Batch"
                    },
                    {
                        "name": "classroomId",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Classroom"
                    },
                    {
                        "name": "clubId",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Club"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "confirmed, cancellation_requested or reschedule_requested"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Page"
                    },
                    {
                        "name": "pageSize",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Page size"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Events"
                ],
                "summary": "Schedule an academic class",
                "responses": {
                    "201": {
                        "description": "Created; conflicts are reported, not rejected",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateEventRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/events/{id}": {
            "get": {
                "tags": [
                    "Events"
                ],
                "summary": "Get an event with its current conflict",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Event ID"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Events"
                ],
                "description": "Faculty cancel their own classes and coordinators their own club bookings.",
                "summary": "Cancel a class or club booking outright",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Event ID"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/events/{id}/status": {
            "patch": {
                "tags": [
                    "Events"
                ],
                "description": "Students may request changes to any class, faculty only to their own.",
                "summary": "Request cancellation or rescheduling of a class",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Event is not confirmed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Event ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateEventStatusRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/events/{id}/cancellation/approve": {
            "post": {
                "tags": [
                    "Events"
                ],
                "summary": "Approve a pending cancellation, removing the class",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Event ID"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/events/{id}/cancellation/reject": {
            "post": {
                "tags": [
                    "Events"
                ],
                "summary": "Reject a pending cancellation",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Event ID"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/events/{id}/reschedule/reject": {
            "post": {
                "tags": [
                    "Events"
                ],
                "summary": "Reject a pending reschedule request",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Event ID"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/events/{id}/reschedule/commit": {
            "post": {
                "tags": [
                    "Events"
                ],
                "summary": "Move a class to a suggested slot",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Event ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/RescheduleSuggestion"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/schedule/conflicts": {
            "get": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Conflicts in the master schedule",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "type",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "double-booking or workload"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/schedule/metrics": {
            "get": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Quality metrics of the master schedule",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/slots/bookable": {
            "get": {
                "tags": [
                    "Club bookings"
                ],
                "summary": "Check whether a club slot can be booked now",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "day",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "Monday through Saturday"
                    },
                    {
                        "name": "start",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "Start time HH:mm"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/club-bookings/availability": {
            "get": {
                "tags": [
                    "Club bookings"
                ],
                "summary": "Bookability and free classrooms",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "day",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "Monday through Saturday"
                    },
                    {
                        "name": "start",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "Start time HH:mm"
                    },
                    {
                        "name": "duration",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Hours (1 or 2)"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/club-bookings": {
            "post": {
                "tags": [
                    "Club bookings"
                ],
                "summary": "Book a classroom for a club activity (coordinator)",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Room already booked",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "Slot not bookable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ClubBookingRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/timetables/evaluate": {
            "post": {
                "tags": [
                    "Timetables"
                ],
                "summary": "Score and rank candidate timetables (admin)",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/EvaluateTimetablesRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/timetables/publish": {
            "post": {
                "tags": [
                    "Timetables"
                ],
                "summary": "Replace the master schedule with a candidate (admin)",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Candidate has double bookings",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/PublishTimetableRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/exports/schedule": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "summary": "Download the master schedule",
                "responses": {
                    "200": {
                        "description": "File download",
                        "schema": {
                            "type": "file"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "csv (default), pdf or xlsx"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "text/csv",
                    "application/pdf",
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ]
            }
        },
        "/api/v1/system/metrics": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Process counters (admin)",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "definitions": {
        "Event": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "day": {
                    "type": "string",
                    "enum": [
                        "Monday",
                        "Tuesday",
                        "Wednesday",
                        "Thursday",
                        "Friday",
                        "Saturday"
                    ]
                },
                "startTime": {
                    "type": "string",
                    "example": "09:00"
                },
                "endTime": {
                    "type": "string",
                    "example": "10:00"
                },
                "classroomId": {
                    "type": "string"
                },
                "subjectId": {
                    "type": "string"
                },
                "facultyId": {
                    "type": "string"
                },
                "batchId": {
                    "type": "string"
                },
                "clubId": {
                    "type": "string"
                },
                "coordinatorId": {
                    "type": "string"
                },
                "eventName": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "confirmed",
                        "cancellation_requested",
                        "reschedule_requested"
                    ]
                }
            }
        },
        "CreateEventRequest": {
            "type": "object",
            "required": [
                "day",
                "startTime",
                "endTime",
                "classroomId",
                "subjectId",
                "facultyId",
                "batchId"
            ],
            "properties": {
                "day": {
                    "type": "string"
                },
                "startTime": {
                    "type": "string"
                },
                "endTime": {
                    "type": "string"
                },
                "classroomId": {
                    "type": "string"
                },
                "subjectId": {
                    "type": "string"
                },
                "facultyId": {
                    "type": "string"
                },
                "batchId": {
                    "type": "string"
                }
            }
        },
        "UpdateEventStatusRequest": {
            "type": "object",
            "required": [
                "status"
            ],
            "properties": {
                "status": {
                    "type": "string",
                    "enum": [
                        "cancellation_requested",
                        "reschedule_requested"
                    ]
                }
            }
        },
        "RescheduleSuggestion": {
            "type": "object",
            "required": [
                "day",
                "startTime",
                "endTime",
                "classroom"
            ],
            "properties": {
                "day": {
                    "type": "string"
                },
                "startTime": {
                    "type": "string"
                },
                "endTime": {
                    "type": "string"
                },
                "classroom": {
                    "type": "string"
                }
            }
        },
        "ClubBookingRequest": {
            "type": "object",
            "required": [
                "day",
                "startTime",
                "duration",
                "classroomId"
            ],
            "properties": {
                "day": {
                    "type": "string"
                },
                "startTime": {
                    "type": "string"
                },
                "duration": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 2
                },
                "classroomId": {
                    "type": "string"
                },
                "eventName": {
                    "type": "string"
                }
            }
        },
        "GeneratedTimetable": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "reasoning": {
                    "type": "string"
                },
                "schedule": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Event"
                    }
                }
            }
        },
        "EvaluateTimetablesRequest": {
            "type": "object",
            "required": [
                "candidates"
            ],
            "properties": {
                "goal": {
                    "type": "string",
                    "enum": [
                        "faculty_balance",
                        "room_utilization",
                        "student_wellbeing",
                        "balanced"
                    ]
                },
                "candidates": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/GeneratedTimetable"
                    }
                }
            }
        },
        "PublishTimetableRequest": {
            "type": "object",
            "required": [
                "schedule"
            ],
            "properties": {
                "name": {
                    "type": "string"
                },
                "allowConflicts": {
                    "type": "boolean"
                },
                "schedule": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Event"
                    }
                }
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "total_count": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "pagination": {
                    "$ref": "#/definitions/Pagination"
                },
                "meta": {
                    "type": "object"
                }
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
