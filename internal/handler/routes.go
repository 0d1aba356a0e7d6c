package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/service"
)

// AuthMode selects which guard protects a route.
type AuthMode string

const (
	// AuthNone leaves the route public.
	AuthNone AuthMode = "none"
	// AuthSession requires a valid session token.
	AuthSession AuthMode = "session"
	// AuthAccount requires a valid account token.
	AuthAccount AuthMode = "account"
)

// Route is one entry in the API surface, mounted at /api/{entity}/{operation}.
type Route struct {
	Method    string
	Entity    string
	Operation string
	Auth      AuthMode
	Handler   gin.HandlerFunc
}

// Path returns the mount point for the route.
func (r Route) Path() string {
	return fmt.Sprintf("/api/%s/%s", r.Entity, r.Operation)
}

// Handlers bundles every handler the route table needs.
type Handlers struct {
	Auth      *AuthHandler
	School    *SchoolHandler
	Classroom *ClassroomHandler
	Student   *StudentHandler
	Export    *ExportHandler
}

// BuildRoutes returns the full route table. Every exposed operation is listed
// here explicitly so the surface can be reviewed and diffed in one place.
func BuildRoutes(h Handlers) []Route {
	return []Route{
		{Method: http.MethodPost, Entity: "user", Operation: "register", Auth: AuthNone, Handler: h.Auth.Register},
		{Method: http.MethodPost, Entity: "user", Operation: "login", Auth: AuthNone, Handler: h.Auth.Login},
		{Method: http.MethodGet, Entity: "user", Operation: "getProfile", Auth: AuthSession, Handler: h.Auth.GetProfile},
		{Method: http.MethodPost, Entity: "user", Operation: "createSchoolAdmin", Auth: AuthSession, Handler: h.Auth.CreateSchoolAdmin},
		{Method: http.MethodPost, Entity: "user", Operation: "createSessionToken", Auth: AuthAccount, Handler: h.Auth.CreateSessionToken},

		{Method: http.MethodPost, Entity: "school", Operation: "createSchool", Auth: AuthSession, Handler: h.School.CreateSchool},
		{Method: http.MethodGet, Entity: "school", Operation: "getSchool", Auth: AuthSession, Handler: h.School.GetSchool},
		{Method: http.MethodGet, Entity: "school", Operation: "getAllSchools", Auth: AuthSession, Handler: h.School.GetSchools},
		{Method: http.MethodPut, Entity: "school", Operation: "updateSchool", Auth: AuthSession, Handler: h.School.UpdateSchool},
		{Method: http.MethodDelete, Entity: "school", Operation: "deleteSchool", Auth: AuthSession, Handler: h.School.DeleteSchool},

		{Method: http.MethodPost, Entity: "classroom", Operation: "createClassroom", Auth: AuthSession, Handler: h.Classroom.CreateClassroom},
		{Method: http.MethodGet, Entity: "classroom", Operation: "getClassroom", Auth: AuthSession, Handler: h.Classroom.GetClassroom},
		{Method: http.MethodGet, Entity: "classroom", Operation: "getClassrooms", Auth: AuthSession, Handler: h.Classroom.GetClassrooms},
		{Method: http.MethodPut, Entity: "classroom", Operation: "updateClassroom", Auth: AuthSession, Handler: h.Classroom.UpdateClassroom},
		{Method: http.MethodDelete, Entity: "classroom", Operation: "deleteClassroom", Auth: AuthSession, Handler: h.Classroom.DeleteClassroom},

		{Method: http.MethodPost, Entity: "student", Operation: "createStudent", Auth: AuthSession, Handler: h.Student.CreateStudent},
		{Method: http.MethodGet, Entity: "student", Operation: "getStudent", Auth: AuthSession, Handler: h.Student.GetStudent},
		{Method: http.MethodGet, Entity: "student", Operation: "getStudents", Auth: AuthSession, Handler: h.Student.GetStudents},
		{Method: http.MethodPut, Entity: "student", Operation: "updateStudent", Auth: AuthSession, Handler: h.Student.UpdateStudent},
		{Method: http.MethodDelete, Entity: "student", Operation: "deleteStudent", Auth: AuthSession, Handler: h.Student.DeleteStudent},
		{Method: http.MethodPost, Entity: "student", Operation: "enrollStudent", Auth: AuthSession, Handler: h.Student.EnrollStudent},
		{Method: http.MethodPost, Entity: "student", Operation: "transferStudent", Auth: AuthSession, Handler: h.Student.TransferStudent},
		{Method: http.MethodGet, Entity: "student", Operation: "exportStudents", Auth: AuthSession, Handler: h.Export.ExportStudents},
	}
}

// requiredOperations is the minimum surface Register refuses to start
// without, keyed entity/operation.
var requiredOperations = []string{
	"user/register", "user/login", "user/getProfile", "user/createSchoolAdmin", "user/createSessionToken",
	"school/createSchool", "school/getSchool", "school/getAllSchools", "school/updateSchool", "school/deleteSchool",
	"classroom/createClassroom", "classroom/getClassroom", "classroom/getClassrooms", "classroom/updateClassroom", "classroom/deleteClassroom",
	"student/createStudent", "student/getStudent", "student/getStudents", "student/updateStudent", "student/deleteStudent",
	"student/enrollStudent", "student/transferStudent",
}

// Register validates the route table and mounts it. A missing handler, a
// duplicate mount, an unknown auth mode or an absent required operation is a
// startup error rather than a silent gap.
func Register(r gin.IRouter, tokens *service.TokenService, routes []Route) error {
	seen := make(map[string]bool, len(routes))
	ops := make(map[string]bool, len(routes))

	for _, route := range routes {
		if route.Handler == nil {
			return fmt.Errorf("route %s %s: nil handler", route.Method, route.Path())
		}
		if route.Entity == "" || route.Operation == "" {
			return fmt.Errorf("route %s %s: entity and operation are required", route.Method, route.Path())
		}

		key := route.Method + " " + route.Path()
		if seen[key] {
			return fmt.Errorf("route %s registered twice", key)
		}
		seen[key] = true
		ops[route.Entity+"/"+route.Operation] = true

		var guards []gin.HandlerFunc
		switch route.Auth {
		case AuthNone:
		case AuthSession:
			guards = append(guards, middleware.Session(tokens))
		case AuthAccount:
			guards = append(guards, middleware.Account(tokens))
		default:
			return fmt.Errorf("route %s: unknown auth mode %q", key, route.Auth)
		}

		r.Handle(route.Method, route.Path(), append(guards, route.Handler)...)
	}

	for _, op := range requiredOperations {
		if !ops[op] {
			return fmt.Errorf("route table is missing required operation %s", op)
		}
	}
	return nil
}
