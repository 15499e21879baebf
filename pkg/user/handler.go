package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/meetcal/meetcal/internal/rest"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Uid         string      `json:"uid"`
	Username    string      `json:"username"`
	DisplayName string      `json:"displayName"`
	Cohort      string      `json:"cohort"`
	Group       string      `json:"group"`
	Settings    SettingsDTO `json:"settings"`
}

type SettingsDTO struct {
	Timezone         string     `json:"timezone"`
	GoogleCalendarId string     `json:"googleCalendarId"`
	IcsUrl           string     `json:"icsUrl"`
	LastSyncedAt     *time.Time `json:"lastSyncedAt,omitempty"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{userService: userService}
}

// CreateUser godoc
// @Summary Create a new user
// @Tags User
// @Accept json
// @Produce json
// @Param user body UserDTO true "User"
// @Success 201 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/user [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating user")

	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	if dto.Username == "" {
		rest.WriteError(w, http.StatusBadRequest, "Username is required", "")
		return
	}
	if dto.DisplayName == "" {
		rest.WriteError(w, http.StatusBadRequest, "Display name is required", "")
		return
	}

	created, err := h.userService.CreateUser(r.Context(), dtoToUser(dto))
	if err != nil {
		if errors.Is(err, ErrUserDataInvalid) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid user data", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Tracef("Created user: %+v", created)
	rest.WriteJSON(w, http.StatusCreated, userToDTO(created))
}

// CurrentUser godoc
// @Summary Get current user
// @Tags User
// @Produce json
// @Success 200 {object} UserDTO
// @Failure 403 {string} string "User not found"
// @Router /api/user/current [get]
// @Security XUserId
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting current user")

	current, err := h.userService.GetCurrentUser(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoUser) {
			http.Error(w, "user not found", http.StatusForbidden)
			return
		}
		if errors.Is(err, ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, userToDTO(current))
}

// UpdateUser godoc
// @Summary Update current user
// @Tags User
// @Accept json
// @Produce json
// @Param user body UserDTO true "User"
// @Success 200 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/user/current [put]
// @Security XUserId
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log.Trace("Updating user")

	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	if dto.DisplayName == "" {
		rest.WriteError(w, http.StatusBadRequest, "Display name is required", "")
		return
	}

	updated, err := h.userService.UpdateUser(r.Context(), dtoToUser(dto))
	if err != nil {
		switch {
		case errors.Is(err, ErrNoUser):
			http.Error(w, "user not found", http.StatusForbidden)
		case errors.Is(err, ErrUserDataInvalid):
			rest.WriteError(w, http.StatusBadRequest, "Invalid user data", err.Error())
		case errors.Is(err, ErrUserNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	log.Debugf("Updated user: %s", updated.Uid)
	rest.WriteJSON(w, http.StatusOK, userToDTO(updated))
}

// IsUsernameAvailable godoc
// @Summary Check username availability
// @Tags User
// @Produce json
// @Param username query string true "Username to check"
// @Success 200 {object} object{available=bool}
// @Router /api/user/name-availability [get]
func (h *Handler) IsUsernameAvailable(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		rest.WriteError(w, http.StatusBadRequest, "Username is required", "")
		return
	}
	available, err := h.userService.IsUsernameAvailable(r.Context(), username)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]bool{"available": available})
}

func userToDTO(u User) UserDTO {
	dto := UserDTO{
		Uid:         u.Uid,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Cohort:      u.Cohort,
		Group:       u.Group,
		Settings: SettingsDTO{
			Timezone:         u.Settings.Timezone,
			GoogleCalendarId: u.Settings.GoogleCalendarId,
			IcsUrl:           u.Settings.IcsUrl,
		},
	}
	if !u.Settings.LastSyncedAt.IsZero() {
		syncedAt := u.Settings.LastSyncedAt
		dto.Settings.LastSyncedAt = &syncedAt
	}
	return dto
}

func dtoToUser(dto UserDTO) User {
	return User{
		Uid:         dto.Uid,
		Username:    dto.Username,
		DisplayName: dto.DisplayName,
		Cohort:      dto.Cohort,
		Group:       dto.Group,
		Settings: Settings{
			Timezone:         dto.Settings.Timezone,
			GoogleCalendarId: dto.Settings.GoogleCalendarId,
			IcsUrl:           dto.Settings.IcsUrl,
		},
	}
}
