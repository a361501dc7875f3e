package handlers

import (
	"net/http"
	"strconv"

	"finhub/internal/forms"
	"finhub/internal/models"
)

// TransactionViewModel is the data passed to the standalone add/edit
// transaction template.
type TransactionViewModel struct {
	Kind   models.TransactionKind
	IsEdit bool
	ID     uint
	Error  string
	Form   *forms.TransactionForm
	Types  []string
}

// typeOptions returns the category vocabulary for a transaction kind as
// template-friendly strings.
func typeOptions(kind models.TransactionKind) []string {
	if kind == models.KindOutcome {
		types := models.OutcomeTypes()
		options := make([]string, len(types))
		for i, t := range types {
			options[i] = string(t)
		}
		return options
	}
	types := models.IncomeTypes()
	options := make([]string, len(types))
	for i, t := range types {
		options[i] = string(t)
	}
	return options
}

func parseID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// pathKind resolves the {kind} route segment. The zero value means the
// segment was not a known kind.
func pathKind(r *http.Request) (models.TransactionKind, bool) {
	return models.ParseKind(r.PathValue("kind"))
}

// AddIncomeForm renders the standalone income entry form.
func (h *Handlers) AddIncomeForm(w http.ResponseWriter, r *http.Request) {
	h.addTransactionForm(w, r, models.KindIncome)
}

// AddOutcomeForm renders the standalone outcome entry form.
func (h *Handlers) AddOutcomeForm(w http.ResponseWriter, r *http.Request) {
	h.addTransactionForm(w, r, models.KindOutcome)
}

func (h *Handlers) addTransactionForm(w http.ResponseWriter, r *http.Request, kind models.TransactionKind) {
	user := h.requireOwner(w, r)
	if user == nil {
		return
	}
	h.render(w, r, "transaction.html", TransactionViewModel{
		Kind:  kind,
		Form:  &forms.TransactionForm{Kind: kind},
		Types: typeOptions(kind),
	})
}

// AddIncome handles the standalone income form submission.
func (h *Handlers) AddIncome(w http.ResponseWriter, r *http.Request) {
	h.addTransaction(w, r, models.KindIncome)
}

// AddOutcome handles the standalone outcome form submission.
func (h *Handlers) AddOutcome(w http.ResponseWriter, r *http.Request) {
	h.addTransaction(w, r, models.KindOutcome)
}

func (h *Handlers) addTransaction(w http.ResponseWriter, r *http.Request, kind models.TransactionKind) {
	user := h.requireOwner(w, r)
	if user == nil {
		return
	}
	if err := r.ParseForm(); err != nil {
		setFlash(w, flashError, "Invalid form submission")
		http.Redirect(w, r, "/"+user.Username, http.StatusFound)
		return
	}

	form := forms.NewTransactionForm(kind, r.Form)
	if err := form.Validate(); err != nil {
		h.render(w, r, "transaction.html", TransactionViewModel{
			Kind:  kind,
			Error: err.Error(),
			Form:  form,
			Types: typeOptions(kind),
		})
		return
	}

	var err error
	if kind == models.KindOutcome {
		_, err = h.db.CreateOutcome(user.ID, form.Amount, models.OutcomeType(form.Type), form.Description, form.Date)
	} else {
		_, err = h.db.CreateIncome(user.ID, form.Amount, models.IncomeType(form.Type), form.Description, form.Date)
	}
	if err != nil {
		h.log.Errorw("failed to create transaction", "kind", kind, "user", user.Username, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setFlash(w, flashSuccess, "Transaction added")
	http.Redirect(w, r, "/"+user.Username, http.StatusFound)
}

// EditTransactionForm renders the edit form pre-populated from the existing
// record. Unknown ids and kinds redirect back to the dashboard with a notice.
func (h *Handlers) EditTransactionForm(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	if user == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	id, ok := parseID(r)
	if !ok {
		setFlash(w, flashError, "Transaction not found")
		http.Redirect(w, r, "/"+user.Username, http.StatusFound)
		return
	}
	kind, ok := pathKind(r)
	if !ok {
		setFlash(w, flashError, "Unknown transaction kind")
		http.Redirect(w, r, "/"+user.Username, http.StatusFound)
		return
	}

	form := &forms.TransactionForm{Kind: kind}
	if kind == models.KindOutcome {
		outcome, err := h.db.GetOutcome(id, user.ID)
		if err != nil {
			setFlash(w, flashError, "Transaction not found")
			http.Redirect(w, r, "/"+user.Username, http.StatusFound)
			return
		}
		form.Amount = outcome.Amount
		form.Type = string(outcome.Type)
		form.Description = outcome.Description
		form.Date = outcome.Date
	} else {
		income, err := h.db.GetIncome(id, user.ID)
		if err != nil {
			setFlash(w, flashError, "Transaction not found")
			http.Redirect(w, r, "/"+user.Username, http.StatusFound)
			return
		}
		form.Amount = income.Amount
		form.Type = string(income.Type)
		form.Description = income.Description
		form.Date = income.Date
	}

	h.render(w, r, "transaction.html", TransactionViewModel{
		Kind:   kind,
		IsEdit: true,
		ID:     id,
		Form:   form,
		Types:  typeOptions(kind),
	})
}

// EditTransaction applies an edit to an existing transaction.
func (h *Handlers) EditTransaction(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	if user == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	id, ok := parseID(r)
	if !ok {
		setFlash(w, flashError, "Transaction not found")
		http.Redirect(w, r, "/"+user.Username, http.StatusFound)
		return
	}
	kind, ok := pathKind(r)
	if !ok {
		setFlash(w, flashError, "Unknown transaction kind")
		http.Redirect(w, r, "/"+user.Username, http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		setFlash(w, flashError, "Invalid form submission")
		http.Redirect(w, r, "/"+user.Username, http.StatusFound)
		return
	}

	form := forms.NewTransactionForm(kind, r.Form)
	if err := form.Validate(); err != nil {
		h.render(w, r, "transaction.html", TransactionViewModel{
			Kind:   kind,
			IsEdit: true,
			ID:     id,
			Error:  err.Error(),
			Form:   form,
			Types:  typeOptions(kind),
		})
		return
	}

	if kind == models.KindOutcome {
		outcome, err := h.db.GetOutcome(id, user.ID)
		if err != nil {
			setFlash(w, flashError, "Transaction not found")
			http.Redirect(w, r, "/"+user.Username, http.StatusFound)
			return
		}
		outcome.Amount = form.Amount
		outcome.Type = models.OutcomeType(form.Type)
		outcome.Description = form.Description
		if !form.Date.IsZero() {
			outcome.Date = form.Date
		}
		if err := h.db.UpdateOutcome(outcome); err != nil {
			h.log.Errorw("failed to update outcome", "id", id, "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	} else {
		income, err := h.db.GetIncome(id, user.ID)
		if err != nil {
			setFlash(w, flashError, "Transaction not found")
			http.Redirect(w, r, "/"+user.Username, http.StatusFound)
			return
		}
		income.Amount = form.Amount
		income.Type = models.IncomeType(form.Type)
		income.Description = form.Description
		if !form.Date.IsZero() {
			income.Date = form.Date
		}
		if err := h.db.UpdateIncome(income); err != nil {
			h.log.Errorw("failed to update income", "id", id, "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	setFlash(w, flashSuccess, "Transaction updated")
	http.Redirect(w, r, "/"+user.Username, http.StatusFound)
}

// DeleteIncome removes an income record by id.
func (h *Handlers) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	if user == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	id, ok := parseID(r)
	if !ok {
		setFlash(w, flashError, "Transaction not found")
		http.Redirect(w, r, "/"+user.Username, http.StatusFound)
		return
	}

	if err := h.db.DeleteIncome(id, user.ID); err != nil {
		setFlash(w, flashError, "Transaction not found")
	} else {
		setFlash(w, flashSuccess, "Transaction deleted")
	}
	http.Redirect(w, r, "/"+user.Username, http.StatusFound)
}

// DeleteTransaction removes a transaction by id, with the kind taken from
// the route path.
func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	if user == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	id, ok := parseID(r)
	if !ok {
		setFlash(w, flashError, "Transaction not found")
		http.Redirect(w, r, "/"+user.Username, http.StatusFound)
		return
	}
	kind, ok := pathKind(r)
	if !ok {
		setFlash(w, flashError, "Unknown transaction kind")
		http.Redirect(w, r, "/"+user.Username, http.StatusFound)
		return
	}

	var err error
	if kind == models.KindOutcome {
		err = h.db.DeleteOutcome(id, user.ID)
	} else {
		err = h.db.DeleteIncome(id, user.ID)
	}
	if err != nil {
		setFlash(w, flashError, "Transaction not found")
	} else {
		setFlash(w, flashSuccess, "Transaction deleted")
	}
	http.Redirect(w, r, "/"+user.Username, http.StatusFound)
}
