package endpoints

import (
	"github.com/jackzampolin/timetable/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	// MaxUploadBytes caps the multipart body of a schedule upload.
	MaxUploadBytes int64
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},

		// Schedule endpoints
		&UploadScheduleEndpoint{MaxBytes: cfg.MaxUploadBytes},
		&GetScheduleEndpoint{},
		&ResetScheduleEndpoint{},

		// Teacher endpoints
		&ListTeachersEndpoint{},
		&TeacherGridEndpoint{},

		// Class endpoints
		&ListClassesEndpoint{},
		&ClassGridEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{},
	}
}
