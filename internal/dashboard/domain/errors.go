package domain

import (
	"fmt"

	sharedDomain "github.com/felixgeelhaar/eventboard/internal/shared/domain"
)

var (
	ErrMissingCategory   = fmt.Errorf("%w: category id is required", sharedDomain.ErrValidation)
	ErrUnknownCategory   = fmt.Errorf("%w: category does not exist", sharedDomain.ErrValidation)
	ErrInvalidStatus     = fmt.Errorf("%w: unknown status", sharedDomain.ErrValidation)
	ErrInvalidPhase      = fmt.Errorf("%w: unknown phase", sharedDomain.ErrValidation)
	ErrInvalidPriority   = fmt.Errorf("%w: unknown priority", sharedDomain.ErrValidation)
	ErrInvalidRole       = fmt.Errorf("%w: unknown role", sharedDomain.ErrValidation)
	ErrInvalidRSVP       = fmt.Errorf("%w: unknown rsvp state", sharedDomain.ErrValidation)
	ErrCompletedProgress = fmt.Errorf("%w: a task at 100%% progress can only be completed", sharedDomain.ErrValidation)
	ErrMissingActor      = fmt.Errorf("%w: acting user is required", sharedDomain.ErrValidation)
	ErrEmptyTitle        = fmt.Errorf("%w: title cannot be empty", sharedDomain.ErrValidation)
	ErrEmptyName         = fmt.Errorf("%w: name cannot be empty", sharedDomain.ErrValidation)
	ErrInvalidTimeRange  = fmt.Errorf("%w: session must end after it starts", sharedDomain.ErrValidation)
	ErrMissingURL        = fmt.Errorf("%w: photo url is required", sharedDomain.ErrValidation)

	ErrSuperAdminRequired = fmt.Errorf("%w: super-admin role required", sharedDomain.ErrAuthorization)
	ErrInvalidCredentials = fmt.Errorf("%w: unknown email or access code", sharedDomain.ErrAuthorization)
	ErrNotSignedIn        = fmt.Errorf("%w: no user is signed in", sharedDomain.ErrAuthorization)

	ErrTaskNotFound     = fmt.Errorf("task %w", sharedDomain.ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", sharedDomain.ErrNotFound)
	ErrSessionNotFound  = fmt.Errorf("session %w", sharedDomain.ErrNotFound)
	ErrAttendeeNotFound = fmt.Errorf("attendee %w", sharedDomain.ErrNotFound)
	ErrPhotoNotFound    = fmt.Errorf("photo %w", sharedDomain.ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", sharedDomain.ErrNotFound)
)
