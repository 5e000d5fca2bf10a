package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/model"
	"spendlog/internal/service"
	"spendlog/internal/session"
)

// ExpenseHandler handles the dashboard, expense mutations and chart data.
type ExpenseHandler struct {
	expenseService service.ExpenseService
	flashes        session.StoreInterface
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenseService service.ExpenseService, flashes session.StoreInterface) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, flashes: flashes}
}

// ExpenseRow is a display-ready expense in the dashboard list.
type ExpenseRow struct {
	ID       uint
	Title    string
	Amount   string
	Category string
	Date     string
	Note     string
}

// SummaryRow is a display-ready aggregate line.
type SummaryRow struct {
	Name   string
	Amount string
}

// DashboardView is the data passed to the dashboard template.
type DashboardView struct {
	Username   string
	Expenses   []ExpenseRow
	Total      string
	ByCategory []SummaryRow
	Monthly    []SummaryRow
	Flash      *session.Flash
}

// CategoryAmount is a chart-data row for one category.
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// MonthAmount is a chart-data row for one YYYY-MM month.
type MonthAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// ChartDataResponse is the JSON payload served to the client-side charts.
type ChartDataResponse struct {
	ByCategory []CategoryAmount `json:"by_category"`
	Monthly    []MonthAmount    `json:"monthly"`
}

// Dashboard renders the expense list with totals and summaries.
func (h *ExpenseHandler) Dashboard(c echo.Context) error {
	user := currentUser(c)

	expenses, total, err := h.expenseService.Overview(c.Request().Context(), user)
	if err != nil {
		logrus.WithError(err).Error("dashboard overview failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	summary, err := h.expenseService.Summary(c.Request().Context(), user)
	if err != nil {
		logrus.WithError(err).Error("dashboard summary failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	view := DashboardView{
		Username: user.Username,
		Total:    total.StringFixed(2),
	}
	for _, e := range expenses {
		view.Expenses = append(view.Expenses, ExpenseRow{
			ID:       e.ID,
			Title:    e.Title,
			Amount:   e.Amount.StringFixed(2),
			Category: e.Category,
			Date:     e.Date.Format("2006-01-02"),
			Note:     e.Note,
		})
	}
	for _, row := range summary.ByCategory {
		view.ByCategory = append(view.ByCategory, SummaryRow{Name: row.Category, Amount: row.Amount.StringFixed(2)})
	}
	for _, row := range summary.Monthly {
		view.Monthly = append(view.Monthly, SummaryRow{Name: row.Month, Amount: row.Amount.StringFixed(2)})
	}

	if flash, err := h.flashes.PopFlash(c.Request().Context(), sessionID(c)); err == nil {
		view.Flash = flash
	}

	return c.Render(http.StatusOK, "dashboard.html", view)
}

// AddExpense handles the dashboard form submission. Validation problems become
// a flash message and the request redirects back to the dashboard either way.
func (h *ExpenseHandler) AddExpense(c echo.Context) error {
	user := currentUser(c)

	input := service.AddExpenseInput{
		Title:    c.FormValue("title"),
		Amount:   c.FormValue("amount"),
		Category: c.FormValue("category"),
		Date:     c.FormValue("date"),
		Note:     c.FormValue("note"),
	}

	if _, err := h.expenseService.Add(c.Request().Context(), user, input); err != nil {
		switch err {
		case apperrors.ErrMissingFields, apperrors.ErrInvalidAmount:
			h.flash(c, "danger", err.Error())
		default:
			logrus.WithError(err).Error("add expense failed")
			h.flash(c, "danger", "An error occurred. Please try again.")
		}
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	h.flash(c, "success", "Expense added")
	return c.Redirect(http.StatusFound, "/dashboard")
}

// DeleteExpense deletes an owned expense. Unknown ids are a plain 404;
// foreign expenses flash an error and leave the row untouched.
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	user := currentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrExpenseNotFound)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.expenseService.Delete(c.Request().Context(), uint(id), user); err != nil {
		switch err {
		case apperrors.ErrExpenseNotFound:
			httpErr := apperrors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		case apperrors.ErrNotOwner:
			h.flash(c, "danger", err.Error())
			return c.Redirect(http.StatusFound, "/dashboard")
		default:
			logrus.WithError(err).Error("delete expense failed")
			h.flash(c, "danger", "An error occurred. Please try again.")
			return c.Redirect(http.StatusFound, "/dashboard")
		}
	}

	h.flash(c, "success", "Deleted")
	return c.Redirect(http.StatusFound, "/dashboard")
}

// ChartData serves the aggregates as JSON for client-side charting.
func (h *ExpenseHandler) ChartData(c echo.Context) error {
	user := currentUser(c)

	summary, err := h.expenseService.Summary(c.Request().Context(), user)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := ChartDataResponse{
		ByCategory: make([]CategoryAmount, 0, len(summary.ByCategory)),
		Monthly:    make([]MonthAmount, 0, len(summary.Monthly)),
	}
	for _, row := range summary.ByCategory {
		resp.ByCategory = append(resp.ByCategory, CategoryAmount{Category: row.Category, Amount: row.Amount.InexactFloat64()})
	}
	for _, row := range summary.Monthly {
		resp.Monthly = append(resp.Monthly, MonthAmount{Month: row.Month, Amount: row.Amount.InexactFloat64()})
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *ExpenseHandler) flash(c echo.Context, kind, message string) {
	if err := h.flashes.PushFlash(c.Request().Context(), sessionID(c), session.Flash{Message: message, Kind: kind}); err != nil {
		logrus.WithError(err).Warn("push flash failed")
	}
}

func currentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextUserKey).(*model.User)
	return user
}

func sessionID(c echo.Context) string {
	id, _ := c.Get(ContextSessionKey).(string)
	return id
}
