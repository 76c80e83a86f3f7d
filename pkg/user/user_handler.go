package user

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/timeplan/timeplan/internal/rest"
)

type UserDTO struct {
	Uid         string      `json:"uid"`
	Username    string      `json:"username"`
	DisplayName string      `json:"displayName"`
	Role        Role        `json:"role,omitempty"`
	Settings    SettingsDTO `json:"settings"`
}

type SettingsDTO struct {
	Timezone          string `json:"timezone"`
	ActivityTrackerId string `json:"activityTrackerId,omitempty"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{
		userService: userService,
	}
}

// CreateUser godoc
// @Summary Create a new user
// @Description Register a new user in the system
// @Tags User
// @Accept json
// @Produce json
// @Param user body UserDTO true "User"
// @Success 201 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/user [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating user")

	var userDTO UserDTO
	if err := json.NewDecoder(r.Body).Decode(&userDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	log.Tracef("Creating new user: %+v", userDTO)

	createdUser, err := h.userService.CreateUser(r.Context(), dtoToUser(userDTO))
	if err != nil {
		if errors.Is(err, ErrUserDataInvalid) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid user data", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, userToDTO(createdUser))
}

// CurrentUser godoc
// @Summary Get current user
// @Description Retrieve the currently authenticated user's information
// @Tags User
// @Produce json
// @Success 200 {object} UserDTO
// @Failure 403 {string} string "User not found"
// @Router /api/user/current [get]
// @Security XUserId
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting current user")

	currentUser, err := h.userService.GetCurrentUser(r.Context())
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

	rest.WriteJSON(w, http.StatusOK, userToDTO(currentUser))
}

// UpdateUser godoc
// @Summary Update current user
// @Description Update display name and settings of the current user
// @Tags User
// @Accept json
// @Produce json
// @Param user body UserDTO true "User"
// @Success 200 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 403 {string} string "User not found"
// @Router /api/user/current [put]
// @Security XUserId
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating current user")

	var userDTO UserDTO
	if err := json.NewDecoder(r.Body).Decode(&userDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	if userDTO.DisplayName == "" {
		rest.WriteError(w, http.StatusBadRequest, "Display name is required", "")
		return
	}

	updated, err := h.userService.UpdateUser(r.Context(), dtoToUser(userDTO))
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

	rest.WriteJSON(w, http.StatusOK, userToDTO(updated))
}

// GetAvailableUsers godoc
// @Summary List users
// @Description List all registered users
// @Tags User
// @Produce json
// @Success 200 {array} UserDTO
// @Router /api/user [get]
func (h *Handler) GetAvailableUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAllUsers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	usersDTO := make([]UserDTO, 0, len(users))
	for _, u := range users {
		usersDTO = append(usersDTO, userToDTO(u))
	}
	rest.WriteJSON(w, http.StatusOK, usersDTO)
}

func userToDTO(user User) UserDTO {
	return UserDTO{
		Uid:         user.Uid,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		Settings: SettingsDTO{
			Timezone:          user.Settings.Timezone,
			ActivityTrackerId: user.Settings.ActivityTrackerId,
		},
	}
}

func dtoToUser(dto UserDTO) User {
	return User{
		Uid:         dto.Uid,
		Username:    dto.Username,
		DisplayName: dto.DisplayName,
		Role:        dto.Role,
		Settings: Settings{
			Timezone:          dto.Settings.Timezone,
			ActivityTrackerId: dto.Settings.ActivityTrackerId,
		},
	}
}
