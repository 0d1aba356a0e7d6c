package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Administration API",
        "description": "Multi-tenant school administration API",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Accounts, tokens and profiles"},
        {"name": "Schools", "description": "School management, superadmin only for mutations"},
        {"name": "Classrooms", "description": "Classroom management within a school"},
        {"name": "Students", "description": "Student management, enrollment and transfer"}
    ],
    "paths": {
        "/user/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register an account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/user/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/user/getProfile": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current user profile",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/user/createSchoolAdmin": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Create school administrator",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSchoolAdminRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/user/createSessionToken": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Exchange account token for a session token",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/school/createSchool": {
            "post": {
                "tags": ["Schools"],
                "summary": "Create school",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSchoolRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/school/getSchool": {
            "get": {
                "tags": ["Schools"],
                "summary": "Get school",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "schoolId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/school/getAllSchools": {
            "get": {
                "tags": ["Schools"],
                "summary": "List schools",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/school/updateSchool": {
            "put": {
                "tags": ["Schools"],
                "summary": "Update school",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSchoolRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/school/deleteSchool": {
            "delete": {
                "tags": ["Schools"],
                "summary": "Delete school",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "schoolId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classroom/createClassroom": {
            "post": {
                "tags": ["Classrooms"],
                "summary": "Create classroom",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassroomRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classroom/getClassroom": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "Get classroom",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "classroomId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classroom/getClassrooms": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "List classrooms",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "schoolId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classroom/updateClassroom": {
            "put": {
                "tags": ["Classrooms"],
                "summary": "Update classroom",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateClassroomRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classroom/deleteClassroom": {
            "delete": {
                "tags": ["Classrooms"],
                "summary": "Delete classroom",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "classroomId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/createStudent": {
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/getStudent": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "studentId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/getStudents": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "schoolId", "in": "query", "type": "string"},
                    {"name": "classroomId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/updateStudent": {
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/deleteStudent": {
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "studentId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/enrollStudent": {
            "post": {
                "tags": ["Students"],
                "summary": "Enroll student",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/transferStudent": {
            "post": {
                "tags": ["Students"],
                "summary": "Transfer student",
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TransferStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/exportStudents": {
            "get": {
                "tags": ["Students"],
                "summary": "Export student roster",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "token", "in": "header", "required": true, "type": "string"},
                    {"name": "schoolId", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string"}
            },
            "required": ["username", "email", "password"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "CreateSchoolAdminRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "schoolId": {"type": "string"}
            },
            "required": ["username", "email", "password", "schoolId"]
        },
        "CreateSchoolRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "address": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"}
            },
            "required": ["name", "address", "email"]
        },
        "UpdateSchoolRequest": {
            "type": "object",
            "properties": {
                "schoolId": {"type": "string"},
                "name": {"type": "string"},
                "address": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"}
            },
            "required": ["schoolId"]
        },
        "CreateClassroomRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "capacity": {"type": "integer"},
                "resources": {"type": "array", "items": {"type": "string"}},
                "schoolId": {"type": "string"}
            },
            "required": ["name"]
        },
        "UpdateClassroomRequest": {
            "type": "object",
            "properties": {
                "classroomId": {"type": "string"},
                "name": {"type": "string"},
                "capacity": {"type": "integer"},
                "resources": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["classroomId"]
        },
        "CreateStudentRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "dateOfBirth": {"type": "string"},
                "schoolId": {"type": "string"},
                "classroomId": {"type": "string"}
            },
            "required": ["firstName", "lastName", "email"]
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "dateOfBirth": {"type": "string"}
            },
            "required": ["studentId"]
        },
        "EnrollStudentRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"},
                "classroomId": {"type": "string"}
            },
            "required": ["studentId", "classroomId"]
        },
        "TransferStudentRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"},
                "schoolId": {"type": "string"},
                "classroomId": {"type": "string"}
            },
            "required": ["studentId", "schoolId"]
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "data": {"type": "object"},
                "errors": {"type": "object"}
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
