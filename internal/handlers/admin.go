package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/moneyquest/backend/internal/auth"
	"example.com/moneyquest/backend/internal/challenges"
	"example.com/moneyquest/backend/internal/models"
	"example.com/moneyquest/backend/internal/repository"
)

type AdminHandler struct {
	Repo       *repository.AdminRepository
	Challenges *challenges.Engine
}

// NewAdminHandler создает обработчик админских эндпоинтов.
func NewAdminHandler(repo *repository.AdminRepository, challengeEngine *challenges.Engine) *AdminHandler {
	return &AdminHandler{Repo: repo, Challenges: challengeEngine}
}

type AdminUserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

type AdminUsersResponse struct {
	Total int                 `json:"total"`
	Users []AdminUserResponse `json:"users"`
}

type AdminUsageDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type AdminUsageResponse struct {
	Users             int             `json:"users"`
	Transactions      int             `json:"transactions"`
	Goals             int             `json:"goals"`
	ActiveChallenges  int             `json:"active_challenges"`
	AlertsUnread      int             `json:"alerts_unread"`
	TransactionsByDay []AdminUsageDay `json:"transactions_by_day"`
}

type RotateChallengesResponse struct {
	Rotations []challenges.RotationResult `json:"rotations"`
}

// ListUsers возвращает список пользователей для админки.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	limit, offset, err := parsePagination(c, 50, 200)
	if err != nil {
		return badRequest(c, err.Error())
	}

	users, err := h.Repo.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return serverError(c)
	}

	total, err := h.Repo.CountUsers(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	response := make([]AdminUserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, AdminUserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			CreatedAt: user.CreatedAt.Format(timeLayout),
			UpdatedAt: user.UpdatedAt.Format(timeLayout),
		})
	}

	return c.JSON(http.StatusOK, AdminUsersResponse{
		Total: total,
		Users: response,
	})
}

// Usage возвращает агрегированную статистику использования.
func (h *AdminHandler) Usage(c echo.Context) error {
	days := 7
	if raw := strings.TrimSpace(c.QueryParam("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return badRequest(c, "invalid days")
		}
		if parsed > 30 {
			parsed = 30
		}
		days = parsed
	}

	stats, err := h.Repo.Usage(c.Request().Context(), days)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid days")
		}
		return serverError(c)
	}

	daysResponse := make([]AdminUsageDay, 0, len(stats.TransactionsByDay))
	for _, day := range stats.TransactionsByDay {
		daysResponse = append(daysResponse, AdminUsageDay{
			Date:  day.Day.Format("2006-01-02"),
			Count: day.Count,
		})
	}

	return c.JSON(http.StatusOK, AdminUsageResponse{
		Users:             stats.Users,
		Transactions:      stats.Transactions,
		Goals:             stats.Goals,
		ActiveChallenges:  stats.ActiveChallenges,
		AlertsUnread:      stats.AlertsUnread,
		TransactionsByDay: daysResponse,
	})
}

// RotateChallenges открывает окна челленджей текущей недели и месяца.
// Параметр period сужает ротацию до одного периода.
// Повторный вызов внутри того же окна ничего не создает.
func (h *AdminHandler) RotateChallenges(c echo.Context) error {
	ctx := c.Request().Context()
	now := time.Now()

	periods := []models.BudgetPeriod{models.PeriodWeekly, models.PeriodMonthly}
	if raw := strings.TrimSpace(c.QueryParam("period")); raw != "" {
		if raw != string(models.PeriodWeekly) && raw != string(models.PeriodMonthly) {
			return badRequest(c, "invalid period")
		}
		periods = []models.BudgetPeriod{models.BudgetPeriod(raw)}
	}

	rotations := make([]challenges.RotationResult, 0, len(periods))
	for _, period := range periods {
		result, err := h.Challenges.Rotate(ctx, period, now)
		if err != nil {
			return serverError(c)
		}
		rotations = append(rotations, result)
	}

	return c.JSON(http.StatusOK, RotateChallengesResponse{Rotations: rotations})
}

// AdminMiddleware ограничивает доступ к админским роутам по email.
func AdminMiddleware(users *repository.UserRepository, emails []string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		trimmed := strings.ToLower(strings.TrimSpace(email))
		if trimmed == "" {
			continue
		}
		allowed[trimmed] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := auth.UserIDFromContext(c)
			if !ok {
				return unauthorized(c)
			}

			if len(allowed) == 0 {
				return forbidden(c)
			}

			user, err := users.GetByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return forbidden(c)
				}
				return serverError(c)
			}

			email := strings.ToLower(strings.TrimSpace(user.Email))
			if _, ok := allowed[email]; !ok {
				return forbidden(c)
			}

			return next(c)
		}
	}
}

func parsePagination(c echo.Context, defaultLimit, maxLimit int) (int, int, error) {
	limit := defaultLimit
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return 0, 0, errors.New("invalid limit")
		}
		if parsed > maxLimit {
			parsed = maxLimit
		}
		limit = parsed
	}

	offset := 0
	if raw := strings.TrimSpace(c.QueryParam("offset")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return 0, 0, errors.New("invalid offset")
		}
		offset = parsed
	}

	return limit, offset, nil
}
