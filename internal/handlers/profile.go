package handlers

import (
	"errors"
	"net/http"

	"finhub/internal/apperrors"
	"finhub/internal/auth"
	"finhub/internal/forms"
	"finhub/internal/models"
	"finhub/internal/report"
)

// DashboardViewModel is the data passed to the dashboard template. The page
// embeds one entry form per transaction kind.
type DashboardViewModel struct {
	User         *models.User
	Incomes      []models.Income
	Outcomes     []models.Outcome
	Summary      report.Summary
	IncomeTypes  []models.IncomeType
	OutcomeTypes []models.OutcomeType
	IncomeError  string
	OutcomeError string
	IncomeForm   *forms.TransactionForm
	OutcomeForm  *forms.TransactionForm
}

// EditUserViewModel is the data passed to the profile edit template.
type EditUserViewModel struct {
	User  *models.User
	Error string
	Form  *forms.EditUserForm
}

// DeleteUserViewModel is the data passed to the deletion confirmation page.
type DeleteUserViewModel struct {
	User *models.User
}

// Dashboard renders the authenticated landing page: both transaction lists,
// the running totals, and the freshly rendered comparison chart.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := h.requireOwner(w, r)
	if user == nil {
		return
	}
	h.renderDashboard(w, r, &DashboardViewModel{User: user})
}

// renderDashboard loads the transaction lists and totals, regenerates the
// chart, and renders the dashboard. Callers may pre-populate form state on vm
// for failed-validation re-renders.
func (h *Handlers) renderDashboard(w http.ResponseWriter, r *http.Request, vm *DashboardViewModel) {
	user := vm.User

	incomes, err := h.db.ListIncomes(user.ID)
	if err != nil {
		h.log.Errorw("failed to list incomes", "user", user.Username, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	outcomes, err := h.db.ListOutcomes(user.ID)
	if err != nil {
		h.log.Errorw("failed to list outcomes", "user", user.Username, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	summary, err := report.Summarize(h.db, user.ID)
	if err != nil {
		h.log.Errorw("failed to compute totals", "user", user.Username, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// The chart path is shared between users; last writer wins.
	if err := report.RenderChart(summary, h.chartPath); err != nil {
		h.log.Errorw("failed to render chart", "error", err)
	}

	vm.Incomes = incomes
	vm.Outcomes = outcomes
	vm.Summary = summary
	vm.IncomeTypes = models.IncomeTypes()
	vm.OutcomeTypes = models.OutcomeTypes()
	if vm.IncomeForm == nil {
		vm.IncomeForm = &forms.TransactionForm{}
	}
	if vm.OutcomeForm == nil {
		vm.OutcomeForm = &forms.TransactionForm{}
	}
	h.render(w, r, "dashboard.html", vm)
}

// DashboardSubmit handles the POST of either embedded entry form. The two
// forms share the route, so the submitted button name picks the form to
// validate.
func (h *Handlers) DashboardSubmit(w http.ResponseWriter, r *http.Request) {
	user := h.requireOwner(w, r)
	if user == nil {
		return
	}
	if err := r.ParseForm(); err != nil {
		setFlash(w, flashError, "Invalid form submission")
		http.Redirect(w, r, "/"+user.Username, http.StatusFound)
		return
	}

	switch {
	case r.Form.Has("add_income"):
		form := forms.NewTransactionForm(models.KindIncome, r.Form)
		if err := form.Validate(); err != nil {
			h.renderDashboard(w, r, &DashboardViewModel{User: user, IncomeError: err.Error(), IncomeForm: form})
			return
		}
		if _, err := h.db.CreateIncome(user.ID, form.Amount, models.IncomeType(form.Type), form.Description, form.Date); err != nil {
			h.log.Errorw("failed to create income", "user", user.Username, "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		setFlash(w, flashSuccess, "Income added")
	case r.Form.Has("add_outcome"):
		form := forms.NewTransactionForm(models.KindOutcome, r.Form)
		if err := form.Validate(); err != nil {
			h.renderDashboard(w, r, &DashboardViewModel{User: user, OutcomeError: err.Error(), OutcomeForm: form})
			return
		}
		if _, err := h.db.CreateOutcome(user.ID, form.Amount, models.OutcomeType(form.Type), form.Description, form.Date); err != nil {
			h.log.Errorw("failed to create outcome", "user", user.Username, "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		setFlash(w, flashSuccess, "Outcome added")
	default:
		setFlash(w, flashError, "Unknown form submission")
	}
	http.Redirect(w, r, "/"+user.Username, http.StatusFound)
}

// EditProfileForm renders the profile edit page pre-filled with the current
// values.
func (h *Handlers) EditProfileForm(w http.ResponseWriter, r *http.Request) {
	user := h.requireOwner(w, r)
	if user == nil {
		return
	}
	form := &forms.EditUserForm{Username: user.Username, Name: user.Name}
	h.render(w, r, "edit_user.html", EditUserViewModel{User: user, Form: form})
}

// EditProfile applies a partial profile update. Fields left empty keep their
// prior values; a supplied password is hashed before storage.
func (h *Handlers) EditProfile(w http.ResponseWriter, r *http.Request) {
	user := h.requireOwner(w, r)
	if user == nil {
		return
	}
	if err := r.ParseForm(); err != nil {
		setFlash(w, flashError, "Invalid form submission")
		http.Redirect(w, r, "/edit/"+user.Username, http.StatusFound)
		return
	}

	form := forms.NewEditUserForm(r.Form)
	if err := form.Validate(); err != nil {
		h.render(w, r, "edit_user.html", EditUserViewModel{User: user, Error: err.Error(), Form: form})
		return
	}

	if form.Username != "" {
		user.Username = form.Username
	}
	if form.Name != "" {
		user.Name = form.Name
	}
	if form.Password != "" {
		hash, err := auth.HashPassword(form.Password)
		if err != nil {
			h.log.Errorw("failed to hash password", "error", err)
			h.render(w, r, "edit_user.html", EditUserViewModel{User: user, Error: "An error occurred. Please try again.", Form: form})
			return
		}
		user.Password = hash
	}

	if err := h.db.UpdateUser(user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUsername) {
			h.render(w, r, "edit_user.html", EditUserViewModel{User: user, Error: "Username already taken", Form: form})
			return
		}
		h.log.Errorw("failed to update user", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setFlash(w, flashSuccess, "Profile updated")
	http.Redirect(w, r, "/"+user.Username, http.StatusFound)
}

// DeleteProfileForm renders the deletion confirmation page.
func (h *Handlers) DeleteProfileForm(w http.ResponseWriter, r *http.Request) {
	user := h.requireOwner(w, r)
	if user == nil {
		return
	}
	h.render(w, r, "delete_user.html", DeleteUserViewModel{User: user})
}

// DeleteProfile handles the confirm/cancel submission. Confirming removes
// the account and cascades to all owned transactions and sessions.
func (h *Handlers) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	user := h.requireOwner(w, r)
	if user == nil {
		return
	}
	if err := r.ParseForm(); err != nil {
		setFlash(w, flashError, "Invalid form submission")
		http.Redirect(w, r, "/delete/"+user.Username, http.StatusFound)
		return
	}

	form := forms.NewDeleteUserForm(r.Form)
	switch {
	case form.Cancelled:
		setFlash(w, flashSuccess, "Deletion cancelled")
		http.Redirect(w, r, "/"+user.Username, http.StatusFound)
	case form.Confirmed:
		if err := h.db.DeleteUser(user.ID); err != nil {
			h.log.Errorw("failed to delete user", "user", user.Username, "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		h.clearSessionCookie(w)
		setFlash(w, flashSuccess, "Account deleted")
		http.Redirect(w, r, "/", http.StatusFound)
	default:
		http.Redirect(w, r, "/delete/"+user.Username, http.StatusFound)
	}
}
