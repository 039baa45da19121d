/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the browser clients

ROUTE GROUPS:
  Devotional portal:
    /api/surahs, /api/verses              Quran
    /api/hadith-collections, /api/hadiths Hadith
    /api/courses                          Course catalog
    /api/topics, /api/discussions         Community
    /api/users                            Accounts
    /api/prayer-times                     Prayer time lookup
  HR console:
    /api/departments, /api/positions, /api/employees
    /api/attendance, /api/leave-types, /api/leave-requests
    /api/payroll, /api/performance-reviews
    /api/training-programs, /api/employee-training
    /api/job-postings, /api/job-applications
    /api/dashboard
  /healthz                                Liveness

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler context and helpers
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured. allowedOrigins
// feeds the CORS policy.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", h.Healthz)

	r.Route("/api", func(r chi.Router) {
		// Quran
		r.Route("/surahs", func(r chi.Router) {
			r.Get("/", h.ListSurahs)
			r.Post("/", h.CreateSurah)
			r.Get("/{id}", h.GetSurah)
			r.Get("/{id}/verses", h.ListVerses)
			r.Post("/{id}/verses", h.CreateVerse)
		})
		r.Get("/verses/{id}", h.GetVerse)

		// Hadith
		r.Route("/hadith-collections", func(r chi.Router) {
			r.Get("/", h.ListHadithCollections)
			r.Post("/", h.CreateHadithCollection)
			r.Get("/{id}", h.GetHadithCollection)
			r.Get("/{id}/hadiths", h.ListHadiths)
			r.Post("/{id}/hadiths", h.CreateHadith)
		})
		r.Get("/hadiths/{id}", h.GetHadith)

		// Courses
		r.Route("/courses", func(r chi.Router) {
			r.Get("/", h.ListCourses)
			r.Post("/", h.CreateCourse)
			r.Get("/{id}", h.GetCourse)
		})

		// Community
		r.Route("/topics", func(r chi.Router) {
			r.Get("/", h.ListTopics)
			r.Post("/", h.CreateTopic)
			r.Get("/{id}", h.GetTopic)
			r.Get("/{id}/discussions", h.ListTopicDiscussions)
		})
		r.Route("/discussions", func(r chi.Router) {
			r.Get("/", h.ListRecentDiscussions)
			r.Post("/", h.CreateDiscussion)
			r.Get("/{id}", h.GetDiscussion)
			r.Delete("/{id}", h.DeleteDiscussion)
		})

		// Users
		r.Post("/users", h.CreateUser)
		r.Get("/users/{id}", h.GetUser)

		// Prayer times
		r.Get("/prayer-times", h.GetPrayerTimes)
		r.Put("/prayer-times", h.SavePrayerTimes)

		// Organization
		r.Route("/departments", func(r chi.Router) {
			r.Get("/", h.ListDepartments)
			r.Post("/", h.CreateDepartment)
			r.Get("/{id}", h.GetDepartment)
			r.Put("/{id}", h.UpdateDepartment)
			r.Delete("/{id}", h.DeleteDepartment)
		})
		r.Route("/positions", func(r chi.Router) {
			r.Get("/", h.ListPositions)
			r.Post("/", h.CreatePosition)
			r.Get("/{id}", h.GetPosition)
		})
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Put("/{id}", h.UpdateEmployee)
			r.Delete("/{id}", h.DeleteEmployee)
		})

		// Attendance
		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.ListAttendance)
			r.Post("/", h.ClockIn)
			r.Get("/{id}", h.GetAttendance)
			r.Put("/{id}", h.ClockOut)
		})

		// Leave
		r.Route("/leave-types", func(r chi.Router) {
			r.Get("/", h.ListLeaveTypes)
			r.Post("/", h.CreateLeaveType)
		})
		r.Route("/leave-requests", func(r chi.Router) {
			r.Get("/", h.ListLeaveRequests)
			r.Post("/", h.CreateLeaveRequest)
			r.Get("/{id}", h.GetLeaveRequest)
			r.Put("/{id}", h.UpdateLeaveRequest)
			r.Post("/{id}/approve", h.ApproveLeaveRequest)
			r.Post("/{id}/reject", h.RejectLeaveRequest)
		})

		// Payroll
		r.Route("/payroll", func(r chi.Router) {
			r.Get("/", h.ListPayroll)
			r.Post("/", h.CreatePayroll)
			r.Get("/{id}", h.GetPayroll)
			r.Put("/{id}", h.UpdatePayroll)
		})

		// Reviews
		r.Route("/performance-reviews", func(r chi.Router) {
			r.Get("/", h.ListPerformanceReviews)
			r.Post("/", h.CreatePerformanceReview)
			r.Get("/{id}", h.GetPerformanceReview)
			r.Put("/{id}", h.UpdatePerformanceReview)
		})

		// Training
		r.Route("/training-programs", func(r chi.Router) {
			r.Get("/", h.ListTrainingPrograms)
			r.Post("/", h.CreateTrainingProgram)
			r.Get("/{id}", h.GetTrainingProgram)
		})
		r.Route("/employee-training", func(r chi.Router) {
			r.Get("/", h.ListEmployeeTrainings)
			r.Post("/", h.EnrollEmployee)
			r.Get("/{id}", h.GetEmployeeTraining)
			r.Put("/{id}", h.UpdateEmployeeTraining)
		})

		// Recruitment
		r.Route("/job-postings", func(r chi.Router) {
			r.Get("/", h.ListJobPostings)
			r.Post("/", h.CreateJobPosting)
			r.Get("/{id}", h.GetJobPosting)
			r.Put("/{id}", h.UpdateJobPosting)
		})
		r.Route("/job-applications", func(r chi.Router) {
			r.Get("/", h.ListJobApplications)
			r.Post("/", h.CreateJobApplication)
			r.Get("/{id}", h.GetJobApplication)
			r.Put("/{id}", h.UpdateJobApplication)
		})

		// Dashboard
		r.Get("/dashboard", h.Dashboard)
		r.Get("/dashboard/stats", h.DashboardStats)
	})

	return r
}
