package forms

import (
	"net/url"
	"testing"
	"time"

	"finhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginFormRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		values  url.Values
		wantErr bool
	}{
		{"valid", url.Values{"username": {"alice"}, "password": {"pw123"}}, false},
		{"missing username", url.Values{"password": {"pw123"}}, true},
		{"missing password", url.Values{"username": {"alice"}}, true},
		{"whitespace username", url.Values{"username": {"   "}, "password": {"pw123"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewLoginForm(tt.values).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegisterFormConfirmationMustMatch(t *testing.T) {
	values := url.Values{
		"username":         {"alice"},
		"name":             {"Alice A"},
		"password":         {"pw123"},
		"confirm_password": {"pw124"},
	}
	err := NewRegisterForm(values).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must match")

	values.Set("confirm_password", "pw123")
	assert.NoError(t, NewRegisterForm(values).Validate())
}

func TestRegisterFormAllFieldsRequired(t *testing.T) {
	for _, missing := range []string{"username", "name", "password", "confirm_password"} {
		values := url.Values{
			"username":         {"alice"},
			"name":             {"Alice A"},
			"password":         {"pw123"},
			"confirm_password": {"pw123"},
		}
		values.Del(missing)
		assert.Error(t, NewRegisterForm(values).Validate(), "missing %s should fail", missing)
	}
}

func TestEditUserFormPartialUpdate(t *testing.T) {
	// All fields empty is a valid no-op submission.
	assert.NoError(t, NewEditUserForm(url.Values{}).Validate())

	// Password without matching confirmation fails.
	err := NewEditUserForm(url.Values{"password": {"newpw"}}).Validate()
	assert.Error(t, err)

	assert.NoError(t, NewEditUserForm(url.Values{
		"password":         {"newpw"},
		"confirm_password": {"newpw"},
	}).Validate())
}

func TestDeleteUserFormButtons(t *testing.T) {
	form := NewDeleteUserForm(url.Values{"confirm": {"1"}})
	assert.True(t, form.Confirmed)
	assert.False(t, form.Cancelled)

	form = NewDeleteUserForm(url.Values{"cancel": {"1"}})
	assert.True(t, form.Cancelled)
}

func TestTransactionFormVocabularyBoundPerKind(t *testing.T) {
	values := url.Values{"amount": {"100"}, "type": {"Salary"}, "description": {"paycheck"}}

	assert.NoError(t, NewTransactionForm(models.KindIncome, values).Validate())
	// Salary is not an outcome category.
	assert.Error(t, NewTransactionForm(models.KindOutcome, values).Validate())

	values.Set("type", "Food")
	assert.NoError(t, NewTransactionForm(models.KindOutcome, values).Validate())
	assert.Error(t, NewTransactionForm(models.KindIncome, values).Validate())
}

func TestTransactionFormRejectsUnknownCategory(t *testing.T) {
	values := url.Values{"amount": {"10"}, "type": {"Gambling"}}
	err := NewTransactionForm(models.KindIncome, values).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gambling")
}

func TestTransactionFormAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{"valid", "12.50", false},
		{"missing", "", true},
		{"not a number", "abc", true},
		{"zero", "0", true},
		{"negative", "-5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{"amount": {tt.amount}, "type": {"Salary"}}
			err := NewTransactionForm(models.KindIncome, values).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransactionFormDateParsing(t *testing.T) {
	values := url.Values{"amount": {"10"}, "type": {"Salary"}, "date": {"2025-06-15"}}
	form := NewTransactionForm(models.KindIncome, values)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), form.Date)

	// A malformed date binds as zero and is filled in at creation time.
	values.Set("date", "junk")
	form = NewTransactionForm(models.KindIncome, values)
	assert.True(t, form.Date.IsZero())
}
